package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ucetportal/campus-api/internal/api/metrics"
	"github.com/ucetportal/campus-api/internal/core/domain"
	"github.com/ucetportal/campus-api/internal/core/ports"
	"github.com/ucetportal/campus-api/internal/core/token"
)

// AuthService implements registration, login, and account listing.
type AuthService struct {
	repo   ports.UserRepository
	tokens *token.Issuer
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *token.Issuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, log: log}
}

// Register creates a new identity plus its default role profile and returns
// the new id. The duplicate pre-check is advisory: two concurrent
// registrations racing on the same username or email are settled by the
// store's unique indexes, which the repository surfaces as ErrUserExists.
func (s *AuthService) Register(ctx context.Context, username, email, password, role string) (string, error) {
	if username == "" || email == "" || password == "" {
		return "", domain.ErrMissingFields
	}
	parsedRole, err := domain.ParseRole(role)
	if err != nil {
		return "", err
	}

	for _, identifier := range []string{username, email} {
		if _, err := s.repo.FindByIdentifier(ctx, identifier); err == nil {
			return "", domain.ErrUserExists
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return "", fmt.Errorf("register: duplicate check: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         parsedRole,
		CreatedAt:    now,
	}
	created, err := s.repo.Create(ctx, user, domain.DefaultProfile("", parsedRole, now))
	if err != nil {
		return "", err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(parsedRole)).Inc()
	s.log.Info().Str("user_id", created.ID).Str("role", string(parsedRole)).Msg("user registered")

	return created.ID, nil
}

// Login authenticates identifier (username or email) + password and issues a
// token. Unknown identifier and wrong password are indistinguishable to the
// caller; a wrong asserted role is reported separately.
func (s *AuthService) Login(ctx context.Context, identifier, password, assertedRole string) (*ports.LoginResult, error) {
	if identifier == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	user, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			s.log.Debug().Str("identifier", identifier).Msg("login for unknown identifier")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: lookup: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if assertedRole != "" && domain.Role(assertedRole) != user.Role {
		metrics.LoginsTotal.WithLabelValues("role_mismatch").Inc()
		return nil, domain.ErrRoleMismatch
	}

	signed, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")

	return &ports.LoginResult{
		Token:    signed,
		Role:     user.Role,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// ListUsers returns hash-free summaries of every account, newest first.
func (s *AuthService) ListUsers(ctx context.Context) ([]ports.UserSummary, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	summaries := make([]ports.UserSummary, len(users))
	for i, u := range users {
		summaries[i] = ports.UserSummary{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		}
	}
	return summaries, nil
}
