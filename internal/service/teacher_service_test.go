package service

import (
	"context"
	"testing"

	"github.com/enkellaering/admin-backend/internal/backend"
	"github.com/enkellaering/admin-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTeacherFixture() (*TeacherService, *fakeTeacherBackend, *AuthService) {
	backend := &fakeTeacherBackend{teachers: map[string]*model.Teacher{
		"admin-1": {UserID: "admin-1", Firstname: "Kari", Lastname: "Nordmann", Admin: true},
		"t-1":     {UserID: "t-1", Firstname: "Ola", Lastname: "Hansen"},
		"gone":    {UserID: "gone", Resigned: true},
	}}
	cfg := testConfig()
	auth := NewAuthService(cfg, newMemSessions())
	return NewTeacherService(cfg, backend, auth, nil, zerolog.Nop()), backend, auth
}

func TestTeacherLogin(t *testing.T) {
	svc, _, auth := newTeacherFixture()

	resp, err := svc.Login(context.Background(), "admin-1", "id-admin-1")
	require.NoError(t, err)
	assert.Equal(t, "Kari Nordmann", resp.Teacher.FullName())
	assert.Contains(t, resp.Permissions, string(model.PermissionRevenueRead))

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID)
}

func TestTeacherLoginNonAdmin(t *testing.T) {
	svc, _, _ := newTeacherFixture()

	resp, err := svc.Login(context.Background(), "t-1", "id-t-1")
	require.NoError(t, err)
	assert.NotContains(t, resp.Permissions, string(model.PermissionRevenueRead))
	assert.Contains(t, resp.Permissions, string(model.PermissionClassesWrite))
}

func TestTeacherLoginRefused(t *testing.T) {
	svc, _, _ := newTeacherFixture()

	_, err := svc.Login(context.Background(), "gone", "id-gone")
	assert.ErrorIs(t, err, ErrTeacherResigned)

	_, err = svc.Login(context.Background(), "nobody", "id-nobody")
	assert.ErrorIs(t, err, backend.ErrNotFound)
}

func TestTeacherLoginNeedsMatchingIDToken(t *testing.T) {
	svc, _, auth := newTeacherFixture()

	_, err := svc.Login(context.Background(), "admin-1", "  ")
	assert.ErrorIs(t, err, ErrIDTokenRequired)

	_, err = svc.Login(context.Background(), "admin-1", "id-t-1")
	assert.ErrorIs(t, err, backend.ErrUnauthorized)

	err = auth.ValidateSession(context.Background(), "admin-1", "")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSignupNormalizesInput(t *testing.T) {
	svc, backend, _ := newTeacherFixture()

	resp, err := svc.Signup(context.Background(), &model.SignupTeacherRequest{
		Firstname: "  Ola ",
		Lastname:  "Hansen ",
		Email:     " Ola.Hansen@Example.NO ",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-teacher", resp.UserID)
	assert.Equal(t, "backend-token", resp.Token)
	require.Len(t, backend.signups, 1)
	assert.Equal(t, "ola.hansen@example.no", backend.signups[0].Email)
	assert.Equal(t, "Ola", backend.signups[0].Firstname)
	assert.Equal(t, "Hansen", backend.signups[0].Lastname)
}

func TestDeleteClass(t *testing.T) {
	svc, backend, _ := newTeacherFixture()

	require.NoError(t, svc.DeleteClass(context.Background(), "t-1", "class-9"))
	assert.Equal(t, []string{"t-1/class-9"}, backend.deleted)
}
