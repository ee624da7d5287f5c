package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/enkellaering/admin-backend/internal/model"
	"github.com/enkellaering/admin-backend/internal/revenue"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var novemberSessions = []model.ClassSession{
	{StartedAt: "2024-11-05T10:00:00Z", EndedAt: "2024-11-05T11:30:00Z"},
	{StartedAt: "2024-11-05T17:00:00Z", EndedAt: "2024-11-05T17:30:00Z"},
	{StartedAt: "2024-11-07T17:00:00Z", EndedAt: "2024-11-07T16:00:00Z"},
}

func TestMonthlyReport(t *testing.T) {
	classes := &staticClasses{sessions: novemberSessions}
	svc := NewRevenueService(testConfig(), classes, nil, nil, zerolog.Nop())

	report, err := svc.MonthlyReport(context.Background(), "admin-1", 2024, 11)

	require.NoError(t, err)
	assert.Len(t, report.Days, 30)
	assert.Equal(t, int64(1080), report.Days[4].Revenue)
	assert.Equal(t, int64(1080), report.Total)
	assert.Len(t, report.Skipped, 1)
	assert.Equal(t, "540", report.HourlyRate)
	assert.Equal(t, "UTC", report.Timezone)
}

func TestMonthlyReportUsesRateSetting(t *testing.T) {
	classes := &staticClasses{sessions: novemberSessions}
	svc := NewRevenueService(testConfig(), classes, fixedRate{decimal.NewFromInt(600)}, nil, zerolog.Nop())

	report, err := svc.MonthlyReport(context.Background(), "admin-1", 2024, 11)

	require.NoError(t, err)
	assert.Equal(t, int64(1200), report.Total)
	assert.Equal(t, "600", report.HourlyRate)
}

func TestMonthlyReportFetchFailure(t *testing.T) {
	upstream := errors.New("connection refused")
	classes := &staticClasses{err: upstream}
	svc := NewRevenueService(testConfig(), classes, nil, nil, zerolog.Nop())

	report, err := svc.MonthlyReport(context.Background(), "admin-1", 2024, 11)

	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, upstream)
}

func TestMonthlyReportInvalidMonthSkipsFetch(t *testing.T) {
	classes := &staticClasses{}
	svc := NewRevenueService(testConfig(), classes, nil, nil, zerolog.Nop())

	_, err := svc.MonthlyReport(context.Background(), "admin-1", 2024, 13)

	assert.ErrorIs(t, err, revenue.ErrInvalidOptions)
	assert.Zero(t, classes.calls)
}

func TestMonthlyReportEmptyDataset(t *testing.T) {
	svc := NewRevenueService(testConfig(), &staticClasses{sessions: []model.ClassSession{}}, nil, nil, zerolog.Nop())

	report, err := svc.MonthlyReport(context.Background(), "admin-1", 2023, 2)

	require.NoError(t, err)
	assert.Len(t, report.Days, 28)
	assert.Zero(t, report.Total)
}

// blockingClasses parks the first call until its context is cancelled.
type blockingClasses struct {
	entered chan struct{}
	calls   atomic.Int32
}

func (b *blockingClasses) GetAllClasses(ctx context.Context, _ string) ([]model.ClassSession, error) {
	if b.calls.Add(1) == 1 {
		close(b.entered)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return novemberSessions, nil
}

func TestMonthlyReportSupersedesStaleRun(t *testing.T) {
	classes := &blockingClasses{entered: make(chan struct{})}
	svc := NewRevenueService(testConfig(), classes, nil, nil, zerolog.Nop())

	type result struct {
		report *revenue.Report
		err    error
	}
	stale := make(chan result, 1)
	go func() {
		r, err := svc.MonthlyReport(context.Background(), "admin-1", 2024, 10)
		stale <- result{r, err}
	}()

	select {
	case <-classes.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first run never reached the fetch stage")
	}

	fresh, err := svc.MonthlyReport(context.Background(), "admin-1", 2024, 11)
	require.NoError(t, err)
	assert.Equal(t, 11, fresh.Month)

	select {
	case res := <-stale:
		assert.Nil(t, res.report)
		assert.ErrorIs(t, res.err, ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("stale run did not return")
	}
}

func TestMonthlyReportOtherAdminDoesNotSupersede(t *testing.T) {
	classes := &blockingClasses{entered: make(chan struct{})}
	svc := NewRevenueService(testConfig(), classes, nil, nil, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pending := make(chan error, 1)
	go func() {
		_, err := svc.MonthlyReport(ctx, "admin-1", 2024, 11)
		pending <- err
	}()

	select {
	case <-classes.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first run never reached the fetch stage")
	}

	other, err := svc.MonthlyReport(context.Background(), "admin-2", 2024, 11)
	require.NoError(t, err)
	assert.Equal(t, int64(1080), other.Total)

	select {
	case err := <-pending:
		t.Fatalf("admin-1 run ended early: %v", err)
	default:
	}

	cancel()
	select {
	case err := <-pending:
		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled run did not return")
	}
}

func TestRunsForDifferentAdminsAreIndependent(t *testing.T) {
	classes := &staticClasses{sessions: novemberSessions}
	svc := NewRevenueService(testConfig(), classes, nil, nil, zerolog.Nop())

	_, err := svc.MonthlyReport(context.Background(), "admin-1", 2024, 11)
	require.NoError(t, err)
	_, err = svc.MonthlyReport(context.Background(), "admin-2", 2024, 11)
	require.NoError(t, err)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	assert.Empty(t, svc.runs)
}

func TestRefreshWithoutCache(t *testing.T) {
	svc := NewRevenueService(testConfig(), &staticClasses{}, nil, nil, zerolog.Nop())
	assert.NoError(t, svc.Refresh(context.Background(), "admin-1"))
}
