package services

import (
	"context"
	"fmt"

	"github.com/sangamlabs/sangam/internal/common"
	"github.com/sangamlabs/sangam/internal/server/auth"
	"github.com/sangamlabs/sangam/internal/server/config"
	"github.com/sangamlabs/sangam/internal/server/models"
	"github.com/sangamlabs/sangam/internal/server/repositories/users"
)

// Limitation describes the per-day quotas that apply to an account.
// Zero means unlimited.
type Limitation struct {
	InterestsPerDay int `json:"interests_per_day"`
	MessagesPerDay  int `json:"messages_per_day"`
}

// UserService implements registration, login and profile lookup.
type UserService struct {
	repo   users.Repository
	tokens *auth.TokenManager
	config *config.Config
}

func NewUserService(repo users.Repository, tokens *auth.TokenManager, cfg *config.Config) *UserService {
	return &UserService{repo: repo, tokens: tokens, config: cfg}
}

// LimitationFor returns the quotas for a membership package.
func (s *UserService) LimitationFor(pkg string) Limitation {
	if pkg == models.PackagePremium {
		return Limitation{}
	}
	return Limitation{
		InterestsPerDay: s.config.Limits.InterestsPerDay,
		MessagesPerDay:  s.config.Limits.MessagesPerDay,
	}
}

// Register creates an account and issues an access token.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: name, email and password are required", common.ErrorValidation)
	}

	hash, err := auth.HashPassword(password, s.config.Auth.BcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Package:      models.PackageFree,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, _, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// Login verifies credentials and issues an access token.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if err == common.ErrorNotFound {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", common.ErrorUnauthorized
	}

	token, _, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// Details returns the account for an authenticated user.
func (s *UserService) Details(ctx context.Context, userID int64) (*models.User, error) {
	return s.repo.GetByID(ctx, userID)
}
