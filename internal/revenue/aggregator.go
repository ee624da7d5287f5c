// Package revenue turns class sessions into a per-day revenue series for a
// single calendar month.
//
// Aggregate is a pure function: it never fetches, mutates or persists the
// sessions it is given. Callers fetch a snapshot first and hand it over.
package revenue

import (
	"errors"
	"fmt"
	"time"

	"github.com/enkellaering/admin-backend/internal/model"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-day format used in DailyRevenue.Date.
const DateLayout = "2006-01-02"

// ErrInvalidOptions is returned by Options.Validate.
var ErrInvalidOptions = errors.New("invalid report options")

// Options selects the month to report and how sessions are priced.
type Options struct {
	Year  int
	Month int // 1-12
	// HourlyRate is the currency-per-hour multiplier applied to session length.
	HourlyRate decimal.Decimal
	// Location is the zone whose calendar days sessions are bucketed into.
	Location *time.Location
}

// Validate reports whether the options can produce a report.
func (o Options) Validate() error {
	switch {
	case o.Month < 1 || o.Month > 12:
		return fmt.Errorf("%w: month %d out of range", ErrInvalidOptions, o.Month)
	case o.Year < 1:
		return fmt.Errorf("%w: year %d out of range", ErrInvalidOptions, o.Year)
	case !o.HourlyRate.IsPositive():
		return fmt.Errorf("%w: hourly rate must be positive", ErrInvalidOptions)
	case o.Location == nil:
		return fmt.Errorf("%w: location is required", ErrInvalidOptions)
	}
	return nil
}

// DailyRevenue is the revenue attributed to one calendar day.
type DailyRevenue struct {
	Date    string `json:"date"`
	Revenue int64  `json:"revenue"`
}

// SkippedSession describes a malformed record left out of the report.
type SkippedSession struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Report is the revenue breakdown of one month.
type Report struct {
	Year       int              `json:"year"`
	Month      int              `json:"month"`
	HourlyRate string           `json:"hourly_rate"`
	Timezone   string           `json:"timezone"`
	Days       []DailyRevenue   `json:"days"`
	Total      int64            `json:"total"`
	Sessions   int              `json:"sessions"`
	Skipped    []SkippedSession `json:"skipped"`
}

// DaysIn returns the number of days in the given month, leap years included.
func DaysIn(year, month int) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Aggregate buckets sessions by the calendar day of their start time in
// opts.Location and prices each one at opts.HourlyRate.
//
// Payments are rounded per session, half away from zero, before they are
// summed, so Total always equals the sum of Days. Sessions that start
// outside the month are ignored. Sessions with unparseable timestamps or an
// end before their start are reported in Skipped and contribute nothing.
// Options must be valid; see Options.Validate.
func Aggregate(sessions []model.ClassSession, opts Options) *Report {
	n := DaysIn(opts.Year, opts.Month)
	days := make([]DailyRevenue, n)
	for d := 1; d <= n; d++ {
		days[d-1].Date = time.Date(opts.Year, time.Month(opts.Month), d, 0, 0, 0, 0, opts.Location).Format(DateLayout)
	}

	report := &Report{
		Year:       opts.Year,
		Month:      opts.Month,
		HourlyRate: opts.HourlyRate.String(),
		Timezone:   opts.Location.String(),
		Days:       days,
		Skipped:    []SkippedSession{},
	}

	for i := range sessions {
		start, end, err := sessionSpan(&sessions[i])
		if err != nil {
			report.Skipped = append(report.Skipped, SkippedSession{Index: i, Reason: err.Error()})
			continue
		}

		local := start.In(opts.Location)
		if local.Year() != opts.Year || int(local.Month()) != opts.Month {
			continue
		}

		payment := Payment(end.Sub(start), opts.HourlyRate)
		report.Days[local.Day()-1].Revenue += payment
		report.Total += payment
		report.Sessions++
	}

	return report
}

// millisPerHour keeps the division exact for any whole-millisecond duration.
var millisPerHour = decimal.NewFromInt(int64(time.Hour / time.Millisecond))

// Payment prices a session of length d at rate per hour, rounded to the
// nearest whole unit with halves rounded away from zero.
func Payment(d time.Duration, rate decimal.Decimal) int64 {
	ms := decimal.NewFromInt(d.Milliseconds())
	return rate.Mul(ms).Div(millisPerHour).Round(0).IntPart()
}

func sessionSpan(s *model.ClassSession) (time.Time, time.Time, error) {
	start, err := ParseTimestamp(s.StartedAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("started_at: %w", err)
	}
	end, err := ParseTimestamp(s.EndedAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("ended_at: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrEndBeforeStart
	}
	return start, end, nil
}
