package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/enkellaering/admin-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownSetting = errors.New("unknown setting")
	ErrInvalidSetting = errors.New("invalid setting value")
)

// SettingStore is the persistence behind SettingService.
type SettingStore interface {
	GetAll(ctx context.Context) ([]model.AppSetting, error)
	GetByKey(ctx context.Context, key string) (*model.AppSetting, error)
	UpsertAll(ctx context.Context, settings map[string]string) error
}

// settingValidators lists the keys that may be written and how each is checked.
var settingValidators = map[string]func(string) error{
	model.SettingHourlyRate: func(v string) error {
		_, err := parsePositiveDecimal(v)
		return err
	},
}

type SettingService struct {
	settingRepo SettingStore
	log         zerolog.Logger
}

func NewSettingService(settingRepo SettingStore, log zerolog.Logger) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
		log:         log.With().Str("component", "setting_service").Logger(),
	}
}

func (s *SettingService) GetAllSettings(ctx context.Context) (map[string]string, error) {
	settingsList, err := s.settingRepo.GetAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get all settings")
		return nil, err
	}

	settingsMap := make(map[string]string, len(settingsList))
	for _, setting := range settingsList {
		settingsMap[setting.Key] = setting.Value
	}
	return settingsMap, nil
}

// UpdateSettings validates every entry before writing any of them.
func (s *SettingService) UpdateSettings(ctx context.Context, settingsMap map[string]string) error {
	clean := make(map[string]string, len(settingsMap))
	for key, value := range settingsMap {
		validate, ok := settingValidators[key]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
		}
		value = strings.TrimSpace(value)
		if err := validate(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		clean[key] = value
	}

	if err := s.settingRepo.UpsertAll(ctx, clean); err != nil {
		s.log.Error().Err(err).Msg("failed to update settings")
		return err
	}
	return nil
}

// HourlyRate returns the hourly_rate setting, or fallback when it is unset
// or unusable.
func (s *SettingService) HourlyRate(ctx context.Context, fallback decimal.Decimal) decimal.Decimal {
	setting, err := s.settingRepo.GetByKey(ctx, model.SettingHourlyRate)
	if err != nil {
		return fallback
	}
	rate, err := parsePositiveDecimal(setting.Value)
	if err != nil {
		s.log.Warn().Str("value", setting.Value).Msg("ignoring invalid hourly_rate setting")
		return fallback
	}
	return rate
}

func parsePositiveDecimal(v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, ErrInvalidSetting
	}
	return d, nil
}
