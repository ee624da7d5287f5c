package service

import (
	"context"
	"sync"
	"time"

	"github.com/enkellaering/admin-backend/internal/backend"
	"github.com/enkellaering/admin-backend/internal/config"
	"github.com/enkellaering/admin-backend/internal/model"
	"github.com/enkellaering/admin-backend/internal/repository"
	"github.com/shopspring/decimal"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		JWTExpiry:       time.Hour,
		HourlyRate:      decimal.NewFromInt(540),
		ReportTimezone:  "UTC",
		ClassesCacheTTL: time.Minute,
		TeacherCacheTTL: time.Minute,
	}
}

type memSessions struct {
	mu   sync.Mutex
	jtis map[string]string
}

func newMemSessions() *memSessions {
	return &memSessions{jtis: make(map[string]string)}
}

func (m *memSessions) Set(_ context.Context, userID, jti string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jtis[userID] = jti
	return nil
}

func (m *memSessions) Get(_ context.Context, userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	jti, ok := m.jtis[userID]
	if !ok {
		return "", ErrNoSession
	}
	return jti, nil
}

func (m *memSessions) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jtis, userID)
	return nil
}

type staticClasses struct {
	sessions []model.ClassSession
	err      error
	calls    int
}

func (f *staticClasses) GetAllClasses(context.Context, string) ([]model.ClassSession, error) {
	f.calls++
	return f.sessions, f.err
}

type fixedRate struct{ rate decimal.Decimal }

func (f fixedRate) HourlyRate(context.Context, decimal.Decimal) decimal.Decimal { return f.rate }

type memSettings struct {
	values  map[string]string
	upserts int
}

func (m *memSettings) GetAll(context.Context) ([]model.AppSetting, error) {
	out := make([]model.AppSetting, 0, len(m.values))
	for k, v := range m.values {
		out = append(out, model.AppSetting{Key: k, Value: v})
	}
	return out, nil
}

func (m *memSettings) GetByKey(_ context.Context, key string) (*model.AppSetting, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &model.AppSetting{Key: key, Value: v}, nil
}

func (m *memSettings) UpsertAll(_ context.Context, settings map[string]string) error {
	m.upserts++
	for k, v := range settings {
		m.values[k] = v
	}
	return nil
}

type fakeTeacherBackend struct {
	teachers map[string]*model.Teacher
	signups  []*model.SignupTeacherRequest
	deleted  []string
}

// GetTeacher accepts "id-<userID>" as the identity token for every teacher.
func (f *fakeTeacherBackend) GetTeacher(ctx context.Context, userID string) (*model.Teacher, error) {
	if token := backend.BearerFrom(ctx); token != "" && token != "id-"+userID {
		return nil, backend.ErrUnauthorized
	}
	t, ok := f.teachers[userID]
	if !ok {
		return nil, backend.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTeacherBackend) SignupTeacher(_ context.Context, req *model.SignupTeacherRequest) (*model.SignupTeacherResponse, error) {
	f.signups = append(f.signups, req)
	return &model.SignupTeacherResponse{UserID: "new-teacher", Token: "backend-token"}, nil
}

func (f *fakeTeacherBackend) DeleteClass(_ context.Context, teacherUserID, classID string) error {
	f.deleted = append(f.deleted, teacherUserID+"/"+classID)
	return nil
}
