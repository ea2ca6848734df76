package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/michellexliu/journly/internal/model"
	"github.com/michellexliu/journly/internal/repo"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("missing required fields")
)

type RegisterInput struct {
	Username  string
	FirstName string
	LastName  string
	Password  string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
	FindOrCreateGoogleUser(ctx context.Context, googleID, firstName, lastName string) (*model.User, error)
}

type authService struct {
	users  repo.UserRepository
	logger *zap.Logger
}

func NewAuthService(users repo.UserRepository, logger *zap.Logger) AuthService {
	return &authService{
		users:  users,
		logger: logger,
	}
}

// Register hashes the password and creates the account. Uniqueness is
// enforced by the storage layer's unique index, not a pre-check, so two
// concurrent registrations of the same username cannot both succeed.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	if input.Username == "" || input.Password == "" {
		return nil, ErrMissingFields
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &model.User{
		Username:     input.Username,
		PasswordHash: string(hashed),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.logger.Info("user registered", zap.String("username", user.Username))
	return user, nil
}

// Login verifies the username and password. Both unknown-user and
// wrong-password collapse into ErrInvalidCredentials so the response
// never reveals which accounts exist.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == "" {
		// OAuth-only account, no local credential path.
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// FindOrCreateGoogleUser resolves a Google profile id to a local account,
// creating one on first login. At most one account is ever created per
// google id: a lost race against a concurrent first login surfaces as a
// duplicate-key conflict and resolves to a re-read.
func (s *authService) FindOrCreateGoogleUser(ctx context.Context, googleID, firstName, lastName string) (*model.User, error) {
	if googleID == "" {
		return nil, ErrMissingFields
	}

	user, err := s.users.FindByGoogleID(ctx, googleID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repo.ErrUserNotFound) {
		return nil, err
	}

	user, err = s.users.Create(ctx, &model.User{
		Username:  "google-" + googleID,
		GoogleID:  googleID,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateGoogleID) {
			return s.users.FindByGoogleID(ctx, googleID)
		}
		return nil, err
	}

	s.logger.Info("google user created", zap.String("username", user.Username))
	return user, nil
}
