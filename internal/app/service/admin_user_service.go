package service

import (
	"errors"

	"github.com/ecommercio/storefront-backend/internal/app/model"
	"github.com/ecommercio/storefront-backend/internal/app/repository"
	"github.com/ecommercio/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrLastAdmin   = errors.New("the last remaining admin cannot be removed")
	ErrInvalidRole = errors.New("invalid role")
)

type AdminUserService interface {
	ListUsers() ([]model.User, error)
	SetBanned(id uint, banned bool) (*model.User, error)
	SetRole(id uint, role model.UserRole) (*model.User, error)
}

type adminUserService struct {
	userRepo repository.UserRepository
}

func NewAdminUserService(userRepo repository.UserRepository) AdminUserService {
	return &adminUserService{userRepo: userRepo}
}

func (s *adminUserService) ListUsers() ([]model.User, error) {
	return s.userRepo.FindAll()
}

// SetBanned bans or unbans an account. Banning the last usable admin is
// refused, the store must always keep one admin who can sign in.
func (s *adminUserService) SetBanned(id uint, banned bool) (*model.User, error) {
	user, err := s.findUser(id)
	if err != nil {
		return nil, err
	}

	if user.Banned == banned {
		return user, nil
	}

	if banned && user.Role == model.RoleAdmin {
		if err := s.ensureNotLastAdmin(); err != nil {
			return nil, err
		}
	}

	user.Banned = banned
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	logger.Info("User ban state changed", map[string]interface{}{
		"user_id": user.ID,
		"banned":  banned,
	})
	return user, nil
}

// SetRole changes an account's role. Demoting the last usable admin is
// refused.
func (s *adminUserService) SetRole(id uint, role model.UserRole) (*model.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	user, err := s.findUser(id)
	if err != nil {
		return nil, err
	}

	if user.Role == role {
		return user, nil
	}

	if user.Role == model.RoleAdmin && !user.Banned {
		if err := s.ensureNotLastAdmin(); err != nil {
			return nil, err
		}
	}

	user.Role = role
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	logger.Info("User role changed", map[string]interface{}{
		"user_id": user.ID,
		"role":    role,
	})
	return user, nil
}

func (s *adminUserService) findUser(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *adminUserService) ensureNotLastAdmin() error {
	count, err := s.userRepo.CountAdmins()
	if err != nil {
		return err
	}
	if count <= 1 {
		return ErrLastAdmin
	}
	return nil
}
