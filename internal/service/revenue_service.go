package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/enkellaering/admin-backend/internal/config"
	"github.com/enkellaering/admin-backend/internal/model"
	"github.com/enkellaering/admin-backend/internal/revenue"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	// ErrFetchFailed means the class sessions could not be fetched, so no
	// report was computed.
	ErrFetchFailed = errors.New("fetch class sessions")
	// ErrSuperseded means a newer report run for the same admin started
	// before this one finished; its result was discarded.
	ErrSuperseded = errors.New("report run superseded")
)

// ClassFetcher lists the class sessions visible to an admin.
type ClassFetcher interface {
	GetAllClasses(ctx context.Context, adminUserID string) ([]model.ClassSession, error)
}

// RateSource resolves the hourly rate reports are priced at.
type RateSource interface {
	HourlyRate(ctx context.Context, fallback decimal.Decimal) decimal.Decimal
}

type reportRun struct {
	cancel context.CancelFunc
}

// RevenueService fetches class sessions and aggregates them into reports.
type RevenueService struct {
	classes      ClassFetcher
	rates        RateSource
	rdb          *redis.Client // optional snapshot cache
	cacheTTL     time.Duration
	fallbackRate decimal.Decimal
	loc          *time.Location
	log          zerolog.Logger

	mu   sync.Mutex
	runs map[string]*reportRun
}

// NewRevenueService creates a new RevenueService. rdb may be nil to disable caching.
func NewRevenueService(
	cfg *config.Config,
	classes ClassFetcher,
	rates RateSource,
	rdb *redis.Client,
	log zerolog.Logger,
) *RevenueService {
	return &RevenueService{
		classes:      classes,
		rates:        rates,
		rdb:          rdb,
		cacheTTL:     cfg.ClassesCacheTTL,
		fallbackRate: cfg.HourlyRate,
		loc:          cfg.Location(),
		log:          log.With().Str("component", "revenue_service").Logger(),
		runs:         make(map[string]*reportRun),
	}
}

// Location is the zone reports are bucketed in.
func (s *RevenueService) Location() *time.Location {
	return s.loc
}

// MonthlyReport builds the report an admin is looking at. Runs are keyed by
// admin only, so switching to another month counts as navigating away:
// starting a new report for the same admin cancels the one still in flight,
// whatever month it was for, and the older call returns ErrSuperseded.
// Other admins are unaffected.
func (s *RevenueService) MonthlyReport(ctx context.Context, adminUserID string, year, month int) (*revenue.Report, error) {
	runCtx, run := s.beginRun(ctx, adminUserID)
	defer s.endRun(adminUserID, run)

	report, err := s.BuildReport(runCtx, adminUserID, year, month)
	if s.superseded(adminUserID, run) {
		s.log.Debug().Str("admin_user_id", adminUserID).Msg("Discarding superseded report run")
		return nil, ErrSuperseded
	}
	return report, err
}

// BuildReport runs the fetch stage and, only if it succeeds, the aggregation
// stage. It does not take part in superseding and is safe for background jobs.
func (s *RevenueService) BuildReport(ctx context.Context, adminUserID string, year, month int) (*revenue.Report, error) {
	opts := revenue.Options{
		Year:       year,
		Month:      month,
		HourlyRate: s.fallbackRate,
		Location:   s.loc,
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	sessions, err := s.fetchClasses(ctx, adminUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	if s.rates != nil {
		opts.HourlyRate = s.rates.HourlyRate(ctx, s.fallbackRate)
	}

	report := revenue.Aggregate(sessions, opts)
	for _, sk := range report.Skipped {
		s.log.Warn().
			Str("admin_user_id", adminUserID).
			Int("index", sk.Index).
			Str("reason", sk.Reason).
			Msg("Skipping malformed class session")
	}

	s.log.Debug().
		Str("admin_user_id", adminUserID).
		Int("year", year).
		Int("month", month).
		Int("sessions", report.Sessions).
		Int64("total", report.Total).
		Msg("Report built")
	return report, nil
}

// Refresh drops the cached class snapshot so the next report refetches.
func (s *RevenueService) Refresh(ctx context.Context, adminUserID string) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, config.CacheKey.AdminClassesKey(adminUserID)).Err()
}

func (s *RevenueService) fetchClasses(ctx context.Context, adminUserID string) ([]model.ClassSession, error) {
	key := config.CacheKey.AdminClassesKey(adminUserID)

	if s.rdb != nil {
		data, err := s.rdb.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var cached []model.ClassSession
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
			s.log.Warn().Str("key", key).Msg("Discarding undecodable class cache entry")
		case !errors.Is(err, redis.Nil):
			s.log.Warn().Err(err).Str("key", key).Msg("Class cache read failed")
		}
	}

	sessions, err := s.classes.GetAllClasses(ctx, adminUserID)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil && s.cacheTTL > 0 {
		if data, err := json.Marshal(sessions); err == nil {
			if err := s.rdb.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Str("key", key).Msg("Class cache write failed")
			}
		}
	}
	return sessions, nil
}

func (s *RevenueService) beginRun(ctx context.Context, key string) (context.Context, *reportRun) {
	runCtx, cancel := context.WithCancel(ctx)
	run := &reportRun{cancel: cancel}

	s.mu.Lock()
	if prev, ok := s.runs[key]; ok {
		prev.cancel()
	}
	s.runs[key] = run
	s.mu.Unlock()

	return runCtx, run
}

func (s *RevenueService) superseded(key string, run *reportRun) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs[key] != run
}

func (s *RevenueService) endRun(key string, run *reportRun) {
	s.mu.Lock()
	if s.runs[key] == run {
		delete(s.runs, key)
	}
	s.mu.Unlock()
	run.cancel()
}
