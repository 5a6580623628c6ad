package service

import (
	"context"
	"errors"

	"github.com/ecommercio/storefront-backend/internal/app/model"
	"github.com/ecommercio/storefront-backend/internal/app/repository"
	"github.com/ecommercio/storefront-backend/internal/session"
	"github.com/ecommercio/storefront-backend/pkg/logger"
	"github.com/ecommercio/storefront-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrAccountBanned         = errors.New("account is banned")
	ErrUserNotFound          = errors.New("user not found")
)

type AuthService interface {
	Register(ctx context.Context, username, password, requestedRole string) (*model.User, string, error)
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo repository.UserRepository
	sessions session.Store
}

func NewAuthService(userRepo repository.UserRepository, sessions session.Store) AuthService {
	return &authService{
		userRepo: userRepo,
		sessions: sessions,
	}
}

// Register creates the account and signs it in, returning the new session
// token. requestedRole is honored only for the literal value "admin",
// anything else falls back to a regular user. On a fresh install with no
// admin yet, the first account is promoted regardless so the store is
// never left without one.
func (s *authService) Register(ctx context.Context, username, password, requestedRole string) (*model.User, string, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"username": username,
	})

	existingUser, err := s.userRepo.FindByUsername(username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"username": username,
		})
		return nil, "", err
	}
	if existingUser != nil {
		logger.Warn("Registration failed: username already exists", map[string]interface{}{
			"username": username,
		})
		return nil, "", ErrUsernameAlreadyExists
	}

	role := model.RoleUser
	if requestedRole == string(model.RoleAdmin) {
		role = model.RoleAdmin
	}

	hasAdmin, err := s.userRepo.HasAdmin()
	if err != nil {
		logger.Error("Failed to check for existing admin", err)
		return nil, "", err
	}
	if !hasAdmin {
		role = model.RoleAdmin
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"username": username,
		})
		return nil, "", err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.sessions.Create(ctx, user.Identity())
	if err != nil {
		logger.Error("Failed to create session", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, "", err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id":  user.ID,
		"username": username,
		"role":     user.Role,
	})

	return user, token, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"username": username,
	})

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"username": username,
			})
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"username": username,
			"user_id":  user.ID,
		})
		return nil, "", ErrInvalidCredentials
	}

	// Checked after the password so a ban probe still needs valid
	// credentials.
	if user.Banned {
		logger.Warn("Login failed: account banned", map[string]interface{}{
			"username": username,
			"user_id":  user.ID,
		})
		return nil, "", ErrAccountBanned
	}

	token, err := s.sessions.Create(ctx, user.Identity())
	if err != nil {
		logger.Error("Failed to create session", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, "", err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id":  user.ID,
		"username": username,
		"role":     user.Role,
	})

	return user, token, nil
}

// Logout discards the session. An already-expired or unknown token is not
// an error, the end state is the same.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	err := s.sessions.Delete(ctx, token)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		logger.Error("Failed to delete session", err)
		return err
	}
	return nil
}
