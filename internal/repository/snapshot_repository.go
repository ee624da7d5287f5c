package repository

import (
	"context"

	"github.com/enkellaering/admin-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SnapshotRepository persists archived monthly revenue reports.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// Upsert stores a snapshot, replacing any earlier archive of the same month.
func (r *SnapshotRepository) Upsert(ctx context.Context, s *model.RevenueSnapshot) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO revenue_snapshots
			(admin_user_id, year, month, total, hourly_rate, timezone, sessions, skipped, days)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (admin_user_id, year, month) DO UPDATE SET
			total = EXCLUDED.total,
			hourly_rate = EXCLUDED.hourly_rate,
			timezone = EXCLUDED.timezone,
			sessions = EXCLUDED.sessions,
			skipped = EXCLUDED.skipped,
			days = EXCLUDED.days,
			updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		s.AdminUserID, s.Year, s.Month, s.Total, s.HourlyRate, s.Timezone, s.Sessions, s.Skipped, s.Days,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// ListByAdmin returns the newest snapshots first.
func (r *SnapshotRepository) ListByAdmin(ctx context.Context, adminUserID string, limit int) ([]model.RevenueSnapshot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, admin_user_id, year, month, total, hourly_rate, timezone, sessions, skipped, days, created_at, updated_at
		 FROM revenue_snapshots
		 WHERE admin_user_id = $1
		 ORDER BY year DESC, month DESC
		 LIMIT $2`,
		adminUserID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := []model.RevenueSnapshot{}
	for rows.Next() {
		var s model.RevenueSnapshot
		if err := rows.Scan(&s.ID, &s.AdminUserID, &s.Year, &s.Month, &s.Total, &s.HourlyRate,
			&s.Timezone, &s.Sessions, &s.Skipped, &s.Days, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}
