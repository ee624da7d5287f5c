package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/enkellaering/admin-backend/internal/config"
	"github.com/enkellaering/admin-backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Common auth errors.
var (
	ErrNoSession          = errors.New("no active session")
	ErrSessionInvalidated = errors.New("session invalidated")
)

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string   `json:"user_id"`
	Admin       bool     `json:"admin"`
	Permissions []string `json:"permissions"`
}

// HasPermission reports whether the token grants code.
func (c *Claims) HasPermission(code string) bool {
	for _, p := range c.Permissions {
		if p == code {
			return true
		}
	}
	return false
}

// SessionStore remembers the single active token ID per teacher.
type SessionStore interface {
	Set(ctx context.Context, userID, jti string, ttl time.Duration) error
	// Get returns ErrNoSession when nothing is stored.
	Get(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) error
}

// RedisSessionStore keeps sessions in Redis under config.CacheKey.TeacherSessionKey.
type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func (s *RedisSessionStore) Set(ctx context.Context, userID, jti string, ttl time.Duration) error {
	return s.rdb.Set(ctx, config.CacheKey.TeacherSessionKey(userID), jti, ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, userID string) (string, error) {
	jti, err := s.rdb.Get(ctx, config.CacheKey.TeacherSessionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSession
	}
	return jti, err
}

func (s *RedisSessionStore) Delete(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, config.CacheKey.TeacherSessionKey(userID)).Err()
}

// AuthService issues and checks dashboard tokens.
type AuthService struct {
	secret   []byte
	expiry   time.Duration
	sessions SessionStore
	now      func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, sessions SessionStore) *AuthService {
	return &AuthService{
		secret:   []byte(cfg.JWTSecret),
		expiry:   cfg.JWTExpiry,
		sessions: sessions,
		now:      time.Now,
	}
}

// IssueTeacherToken creates a JWT carrying the teacher's permissions and
// registers it as the teacher's only active session. Any earlier token for
// the same teacher stops validating.
func (s *AuthService) IssueTeacherToken(ctx context.Context, t *model.Teacher) (string, []string, error) {
	jti := uuid.New().String()
	now := s.now()
	permissions := model.PermissionsFor(t)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   t.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
		UserID:      t.UserID,
		Admin:       t.Admin,
		Permissions: permissions,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	if err := s.sessions.Set(ctx, t.UserID, jti, s.expiry); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	return signed, permissions, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// ValidateSession checks that jti is the teacher's active session.
func (s *AuthService) ValidateSession(ctx context.Context, userID, jti string) error {
	stored, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return err
	}
	if stored != jti {
		return ErrSessionInvalidated
	}
	return nil
}

// RevokeSession ends the teacher's active session.
func (s *AuthService) RevokeSession(ctx context.Context, userID string) error {
	return s.sessions.Delete(ctx, userID)
}
