package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/identity-service/internal/auth"
	"github.com/spec-kit/identity-service/internal/config"
	"github.com/spec-kit/identity-service/internal/domain"
	"github.com/spec-kit/identity-service/internal/events"
	"github.com/spec-kit/identity-service/internal/limiter"
	"github.com/spec-kit/identity-service/internal/repository"
	apperrors "github.com/spec-kit/identity-service/pkg/util"
)

// AuthService coordinates the login flow: throttle, credential check
// against the user directory, token issuance.
type AuthService struct {
	users      repository.UserRepository
	codec      *auth.TokenCodec
	attempts   *limiter.LoginLimiter
	dispatcher events.Dispatcher
	tokenTTL   time.Duration
	bcryptCost int
}

// AuthDependencies encapsulates collaborator requirements.
type AuthDependencies struct {
	UserRepo     repository.UserRepository
	LoginLimiter *limiter.LoginLimiter
	Dispatcher   events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		codec:      auth.NewTokenCodec(cfg.Auth.JWTSecret),
		attempts:   deps.LoginLimiter,
		dispatcher: deps.Dispatcher,
		tokenTTL:   cfg.Auth.TokenTTL(),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// TokenCodec exposes the codec for the authentication middleware.
func (s *AuthService) TokenCodec() *auth.TokenCodec {
	return s.codec
}

// Login authenticates an account and returns a fresh bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	if !s.attempts.Allow(ctx, email) {
		return nil, "", time.Time{}, apperrors.NewTooManyRequests("too many login attempts")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.publish(ctx, events.EventLoginFailed, email, "unknown account")
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if !user.Active {
		s.publish(ctx, events.EventLoginFailed, email, "account inactive")
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.publish(ctx, events.EventLoginFailed, email, "bad password")
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.codec.Issue(user.Email, user.ID, user.Role, s.tokenTTL)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.attempts.Reset(ctx, email)
	s.publish(ctx, events.EventLoginSucceeded, email, "")
	return user, token, expiresAt, nil
}

// SeedAdmin creates a bootstrap admin account when the store is empty.
func (s *AuthService) SeedAdmin(ctx context.Context, cfg config.SeedConfig) (*domain.User, error) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil, nil
	}

	count, err := s.users.Count(ctx)
	if err != nil || count > 0 {
		return nil, err
	}

	hash, err := auth.HashPassword(cfg.AdminPassword, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         "Administrator",
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, subject, reason string) {
	if s.dispatcher == nil {
		return
	}
	payload := map[string]any{}
	if reason != "" {
		payload["reason"] = reason
	}
	_ = s.dispatcher.Publish(ctx, events.NewEvent(eventType, subject, payload))
}
