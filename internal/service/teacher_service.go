package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/enkellaering/admin-backend/internal/backend"
	"github.com/enkellaering/admin-backend/internal/config"
	"github.com/enkellaering/admin-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var (
	// ErrTeacherResigned is returned when a resigned teacher tries to log in.
	ErrTeacherResigned = errors.New("teacher has resigned")
	// ErrIDTokenRequired is returned when a login carries no identity token.
	ErrIDTokenRequired = errors.New("identity token required")
)

// TeacherBackend is the part of the backend API that deals with teachers.
type TeacherBackend interface {
	GetTeacher(ctx context.Context, userID string) (*model.Teacher, error)
	SignupTeacher(ctx context.Context, req *model.SignupTeacherRequest) (*model.SignupTeacherResponse, error)
	DeleteClass(ctx context.Context, teacherUserID, classID string) error
}

// TeacherService handles teacher lookups, login and signup.
type TeacherService struct {
	backend  TeacherBackend
	auth     *AuthService
	rdb      *redis.Client // optional
	cacheTTL time.Duration
	log      zerolog.Logger
}

// NewTeacherService creates a new TeacherService. rdb may be nil to disable caching.
func NewTeacherService(
	cfg *config.Config,
	teachers TeacherBackend,
	auth *AuthService,
	rdb *redis.Client,
	log zerolog.Logger,
) *TeacherService {
	return &TeacherService{
		backend:  teachers,
		auth:     auth,
		rdb:      rdb,
		cacheTTL: cfg.TeacherCacheTTL,
		log:      log.With().Str("component", "teacher_service").Logger(),
	}
}

// GetTeacher returns the teacher record, served from cache when possible.
func (s *TeacherService) GetTeacher(ctx context.Context, userID string) (*model.Teacher, error) {
	key := config.CacheKey.TeacherKey(userID)

	if s.rdb != nil {
		if data, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var t model.Teacher
			if json.Unmarshal(data, &t) == nil {
				return &t, nil
			}
		}
	}

	t, err := s.backend.GetTeacher(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil && s.cacheTTL > 0 {
		if data, err := json.Marshal(t); err == nil {
			if err := s.rdb.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Str("user_id", userID).Msg("Teacher cache write failed")
			}
		}
	}
	return t, nil
}

// Login looks the teacher up with the caller's identity token and issues a
// dashboard token. The backend answers with backend.ErrUnauthorized when the
// token does not belong to userID. The record is always read fresh so a
// revoked admin flag takes effect on the next login.
func (s *TeacherService) Login(ctx context.Context, userID, idToken string) (*model.TeacherLoginResponse, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return nil, ErrIDTokenRequired
	}

	t, err := s.backend.GetTeacher(backend.WithBearer(ctx, idToken), userID)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, fmt.Errorf("get-teacher returned %q for %q: %w", t.UserID, userID, backend.ErrUnauthorized)
	}
	if t.Resigned {
		return nil, ErrTeacherResigned
	}

	token, permissions, err := s.auth.IssueTeacherToken(ctx, t)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", t.UserID).Bool("admin", t.Admin).Msg("Teacher logged in")
	return &model.TeacherLoginResponse{Token: token, Teacher: *t, Permissions: permissions}, nil
}

// Signup forwards a validated signup form to the backend and returns the new
// teacher's user ID and backend token.
func (s *TeacherService) Signup(ctx context.Context, req *model.SignupTeacherRequest) (*model.SignupTeacherResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Firstname = strings.TrimSpace(req.Firstname)
	req.Lastname = strings.TrimSpace(req.Lastname)
	resp, err := s.backend.SignupTeacher(ctx, req)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", resp.UserID).Msg("Teacher signed up")
	return resp, nil
}

// DeleteClass removes one of the teacher's own class sessions.
// Cached admin snapshots are not touched; they expire on their own TTL.
func (s *TeacherService) DeleteClass(ctx context.Context, teacherUserID, classID string) error {
	return s.backend.DeleteClass(ctx, teacherUserID, classID)
}
