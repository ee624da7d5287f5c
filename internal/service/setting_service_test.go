package service

import (
	"context"
	"testing"

	"github.com/enkellaering/admin-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateSettings(t *testing.T) {
	store := &memSettings{values: map[string]string{}}
	svc := NewSettingService(store, zerolog.Nop())

	err := svc.UpdateSettings(context.Background(), map[string]string{model.SettingHourlyRate: " 600.5 "})
	require.NoError(t, err)

	all, err := svc.GetAllSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "600.5", all[model.SettingHourlyRate])
}

func TestUpdateSettingsRejectsWholeBatch(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]string
		wantErr error
	}{
		{"unknown key", map[string]string{"theme": "dark"}, ErrUnknownSetting},
		{"zero rate", map[string]string{model.SettingHourlyRate: "0"}, ErrInvalidSetting},
		{"negative rate", map[string]string{model.SettingHourlyRate: "-10"}, ErrInvalidSetting},
		{"not a number", map[string]string{model.SettingHourlyRate: "mye"}, ErrInvalidSetting},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &memSettings{values: map[string]string{}}
			svc := NewSettingService(store, zerolog.Nop())

			err := svc.UpdateSettings(context.Background(), tc.input)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Zero(t, store.upserts)
		})
	}
}

func TestHourlyRateFallback(t *testing.T) {
	fallback := decimal.NewFromInt(540)
	ctx := context.Background()

	unset := NewSettingService(&memSettings{values: map[string]string{}}, zerolog.Nop())
	assert.True(t, unset.HourlyRate(ctx, fallback).Equal(fallback))

	broken := NewSettingService(&memSettings{values: map[string]string{model.SettingHourlyRate: "abc"}}, zerolog.Nop())
	assert.True(t, broken.HourlyRate(ctx, fallback).Equal(fallback))

	set := NewSettingService(&memSettings{values: map[string]string{model.SettingHourlyRate: "600"}}, zerolog.Nop())
	assert.True(t, set.HourlyRate(ctx, fallback).Equal(decimal.NewFromInt(600)))
}
