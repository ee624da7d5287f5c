package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/enkellaering/admin-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second, zerolog.Nop())
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func TestGetAllClasses(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/get-all-classes", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "admin-1", decodeBody(t, r)["admin_user_id"])

		_, _ = w.Write([]byte(`{"classes":[
			{"started_at":"2024-11-05T10:00:00Z","ended_at":"2024-11-05T11:30:00Z","comment":"algebra","invoiced_student":false,"paid_teacher":true}
		]}`))
	})

	classes, err := c.GetAllClasses(WithBearer(context.Background(), "tok"), "admin-1")

	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "2024-11-05T10:00:00Z", classes[0].StartedAt)
	assert.Equal(t, "algebra", classes[0].Comment)
	assert.True(t, classes[0].PaidTeacher)
}

func TestGetAllClassesEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	classes, err := c.GetAllClasses(context.Background(), "admin-1")

	require.NoError(t, err)
	assert.NotNil(t, classes)
	assert.Empty(t, classes)
}

func TestGetTeacher(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get-teacher", r.URL.Path)
		assert.Equal(t, "t-9", decodeBody(t, r)["user_id"])
		_, _ = w.Write([]byte(`{"teacher":{"user_id":"t-9","firstname":"Kari","lastname":"Nordmann","admin":true,"hourly_pay":"250"}}`))
	})

	teacher, err := c.GetTeacher(context.Background(), "t-9")

	require.NoError(t, err)
	assert.Equal(t, "Kari Nordmann", teacher.FullName())
	assert.True(t, teacher.Admin)
	assert.Equal(t, "250", teacher.HourlyPay)
}

func TestGetTeacherMissing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"teacher":null}`))
	})

	_, err := c.GetTeacher(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatusErrors(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, ErrNotFound},
		{http.StatusInternalServerError, ErrUpstream},
		{http.StatusBadGateway, ErrUpstream},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
	}
	for _, tc := range cases {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})

		err := c.DeleteClass(context.Background(), "t-1", "c-1")

		assert.ErrorIs(t, err, tc.want)
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, tc.status, se.StatusCode)
		assert.Equal(t, "delete-class", se.Op)
	}
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := NewClient(srv.URL, 50*time.Millisecond, zerolog.Nop())
	_, err := c.GetAllClasses(context.Background(), "admin-1")

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestSignupTeacherForwardsForm(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/signup-teacher", r.URL.Path)
		assert.Equal(t, "Bearer id-tok", r.Header.Get("Authorization"))
		body := decodeBody(t, r)
		assert.Equal(t, "id-tok", body["id_token"])
		assert.Equal(t, "12345678", body["phone"])
		assert.Equal(t, "0150", body["postal_code"])
		assert.Equal(t, "250", body["hourly_pay"])
		assert.Equal(t, false, body["admin"])
		assert.Equal(t, false, body["resigned"])
		_, hasPassword := body["password"]
		assert.False(t, hasPassword)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"user_id":"new-teacher-9","token":"backend-token"}`))
	})

	ctx := WithBearer(context.Background(), "id-tok")
	resp, err := c.SignupTeacher(ctx, &model.SignupTeacherRequest{
		IDToken:    "id-tok",
		Firstname:  "Ola",
		Lastname:   "Nordmann",
		Email:      "ola@example.no",
		Phone:      "12345678",
		Address:    "Storgata 1",
		PostalCode: "0150",
		Password:   "hemmelig",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-teacher-9", resp.UserID)
	assert.Equal(t, "backend-token", resp.Token)
}

func TestSignupTeacherWithoutUserID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := c.SignupTeacher(context.Background(), &model.SignupTeacherRequest{IDToken: "id-tok"})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestGetTeacherRejectedToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"teacher":{"user_id":"t-9"}}`))
	})

	_, err := c.GetTeacher(WithBearer(context.Background(), "forged"), "t-9")
	assert.ErrorIs(t, err, ErrUnauthorized)

	teacher, err := c.GetTeacher(WithBearer(context.Background(), "good"), "t-9")
	require.NoError(t, err)
	assert.Equal(t, "t-9", teacher.UserID)
}

func TestHideNewStudent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hide-new-student", r.URL.Path)
		body := decodeBody(t, r)
		assert.Equal(t, "admin-1", body["admin_user_id"])
		assert.Equal(t, "ns-4", body["new_student_id"])
	})

	require.NoError(t, c.HideNewStudent(context.Background(), "admin-1", "ns-4"))
}
