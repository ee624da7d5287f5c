package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/enkellaering/admin-backend/internal/model"
	"github.com/enkellaering/admin-backend/internal/revenue"
	"github.com/rs/zerolog"
)

// ReportBuilder produces a monthly report without superseding other runs.
type ReportBuilder interface {
	BuildReport(ctx context.Context, adminUserID string, year, month int) (*revenue.Report, error)
}

// SnapshotStore persists archived reports.
type SnapshotStore interface {
	Upsert(ctx context.Context, s *model.RevenueSnapshot) error
	ListByAdmin(ctx context.Context, adminUserID string, limit int) ([]model.RevenueSnapshot, error)
}

// ArchiveService freezes monthly reports so later edits to class sessions do
// not rewrite what was reported.
type ArchiveService struct {
	reports   ReportBuilder
	snapshots SnapshotStore
	log       zerolog.Logger
}

// NewArchiveService creates a new ArchiveService.
func NewArchiveService(reports ReportBuilder, snapshots SnapshotStore, log zerolog.Logger) *ArchiveService {
	return &ArchiveService{
		reports:   reports,
		snapshots: snapshots,
		log:       log.With().Str("component", "archive_service").Logger(),
	}
}

// Archive builds the report for year/month and stores it, replacing any
// earlier snapshot of the same month.
func (s *ArchiveService) Archive(ctx context.Context, adminUserID string, year, month int) (*model.RevenueSnapshot, error) {
	report, err := s.reports.BuildReport(ctx, adminUserID, year, month)
	if err != nil {
		return nil, err
	}

	days, err := json.Marshal(report.Days)
	if err != nil {
		return nil, fmt.Errorf("marshal days: %w", err)
	}

	snap := &model.RevenueSnapshot{
		AdminUserID: adminUserID,
		Year:        report.Year,
		Month:       report.Month,
		Total:       report.Total,
		HourlyRate:  report.HourlyRate,
		Timezone:    report.Timezone,
		Sessions:    report.Sessions,
		Skipped:     len(report.Skipped),
		Days:        days,
	}
	if err := s.snapshots.Upsert(ctx, snap); err != nil {
		return nil, fmt.Errorf("store snapshot: %w", err)
	}

	s.log.Info().
		Str("admin_user_id", adminUserID).
		Int("year", year).
		Int("month", month).
		Int64("total", snap.Total).
		Msg("Revenue snapshot archived")
	return snap, nil
}

// History lists archived snapshots, newest month first.
func (s *ArchiveService) History(ctx context.Context, adminUserID string, limit int) ([]model.RevenueSnapshot, error) {
	if limit < 1 || limit > 120 {
		limit = 12
	}
	return s.snapshots.ListByAdmin(ctx, adminUserID, limit)
}
