// Package backend talks to the external persistence API that owns teachers,
// students and class sessions.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/enkellaering/admin-backend/internal/model"
	"github.com/rs/zerolog"
)

var (
	// ErrUpstream wraps every non-success response from the backend.
	ErrUpstream = errors.New("backend request failed")
	// ErrNotFound is returned when the backend reports a missing record.
	ErrNotFound = errors.New("backend record not found")
	// ErrTimeout is returned when the backend does not answer in time.
	ErrTimeout = errors.New("backend request timed out")
	// ErrUnauthorized is returned when the backend rejects the forwarded identity token.
	ErrUnauthorized = errors.New("backend rejected credentials")
)

// StatusError carries the HTTP status of a failed backend call.
type StatusError struct {
	Op         string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: backend responded %s", e.Op, e.Status)
}

func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	}
	return ErrUpstream
}

type bearerKey struct{}

// WithBearer attaches the caller's identity token so it is forwarded to the
// backend as an Authorization header.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

// BearerFrom returns the identity token attached with WithBearer, if any.
func BearerFrom(ctx context.Context) string {
	token, _ := ctx.Value(bearerKey{}).(string)
	return token
}

// Client is a JSON-over-HTTP client for the backend API.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     zerolog.Logger
}

// NewClient creates a Client. A per-call timeout of zero disables the deadline.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		timeout: timeout,
		log:     log.With().Str("component", "backend_client").Logger(),
	}
}

// GetTeacher fetches a teacher record by user ID.
func (c *Client) GetTeacher(ctx context.Context, userID string) (*model.Teacher, error) {
	var out struct {
		Teacher *model.Teacher `json:"teacher"`
	}
	if err := c.post(ctx, "/get-teacher", map[string]string{"user_id": userID}, &out); err != nil {
		return nil, err
	}
	if out.Teacher == nil {
		return nil, fmt.Errorf("get-teacher: %w", ErrNotFound)
	}
	return out.Teacher, nil
}

// GetAllClasses fetches every class session visible to the given admin.
func (c *Client) GetAllClasses(ctx context.Context, adminUserID string) ([]model.ClassSession, error) {
	var out struct {
		Classes []model.ClassSession `json:"classes"`
	}
	if err := c.post(ctx, "/get-all-classes", map[string]string{"admin_user_id": adminUserID}, &out); err != nil {
		return nil, err
	}
	if out.Classes == nil {
		out.Classes = []model.ClassSession{}
	}
	return out.Classes, nil
}

// SignupTeacher registers a new teacher with the backend. New teachers start
// on the default hourly pay, active and without admin rights.
func (c *Client) SignupTeacher(ctx context.Context, req *model.SignupTeacherRequest) (*model.SignupTeacherResponse, error) {
	body := map[string]any{
		"id_token":            req.IDToken,
		"firstname":           req.Firstname,
		"lastname":            req.Lastname,
		"email":               req.Email,
		"phone":               req.Phone,
		"address":             req.Address,
		"postal_code":         req.PostalCode,
		"additional_comments": req.AdditionalComments,
		"hourly_pay":          model.DefaultTeacherHourlyPay,
		"resigned":            false,
		"admin":               false,
	}

	var out model.SignupTeacherResponse
	if err := c.post(ctx, "/signup-teacher", body, &out); err != nil {
		return nil, err
	}
	if out.UserID == "" {
		return nil, fmt.Errorf("signup-teacher: %w: response without user_id", ErrUpstream)
	}
	return &out, nil
}

// HideNewStudent hides a new-student signup from the admin queue.
func (c *Client) HideNewStudent(ctx context.Context, adminUserID, newStudentID string) error {
	body := map[string]string{
		"admin_user_id":  adminUserID,
		"new_student_id": newStudentID,
	}
	return c.post(ctx, "/hide-new-student", body, nil)
}

// DeleteClass removes one of the teacher's own class sessions.
func (c *Client) DeleteClass(ctx context.Context, teacherUserID, classID string) error {
	body := map[string]string{
		"teacher_user_id": teacherUserID,
		"class_id":        classID,
	}
	return c.post(ctx, "/delete-class", body, nil)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	op := path[1:]

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: marshal request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := BearerFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%s: %w", op, ErrTimeout)
		}
		return fmt.Errorf("%s: %w: %w", op, ErrUpstream, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("op", op).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("Backend call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
