package model

import (
	"encoding/json"
	"time"
)

// RevenueSnapshot is an archived monthly revenue report.
type RevenueSnapshot struct {
	ID          int64           `json:"id"`
	AdminUserID string          `json:"admin_user_id"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	Total       int64           `json:"total"`
	HourlyRate  string          `json:"hourly_rate"`
	Timezone    string          `json:"timezone"`
	Sessions    int             `json:"sessions"`
	Skipped     int             `json:"skipped"`
	Days        json.RawMessage `json:"days"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateSnapshotRequest asks for a given month to be archived.
type CreateSnapshotRequest struct {
	Year  int `json:"year" binding:"required,min=2000,max=9999"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// RevenueQuery selects the report month. Zero fields default to the current
// month in the report timezone.
type RevenueQuery struct {
	Year  int `form:"year" binding:"omitempty,min=2000,max=9999"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
}

// HistoryQuery pages through archived snapshots.
type HistoryQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=120"`
}
