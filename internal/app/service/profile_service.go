package service

import (
	"errors"

	"github.com/ecommercio/storefront-backend/internal/app/model"
	"github.com/ecommercio/storefront-backend/internal/app/repository"
	"github.com/ecommercio/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

// ProfileInput carries the editable profile fields. All of them are
// optional free text, the frontend owns any stricter formatting.
type ProfileInput struct {
	FirstName       string
	LastName        string
	BirthDate       string
	ShippingAddress string
	ShippingZip     string
	BillingAddress  string
	BillingZip      string
}

type ProfileService interface {
	GetProfile(userID uint) (*model.Profile, error)
	SaveProfile(userID uint, input ProfileInput) (*model.Profile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// GetProfile returns the stored profile, or an empty one if the user has
// never saved anything. A missing row is a normal state, not an error.
func (s *profileService) GetProfile(userID uint) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.Profile{UserID: userID}, nil
		}
		logger.Error("Failed to fetch profile", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return profile, nil
}

func (s *profileService) SaveProfile(userID uint, input ProfileInput) (*model.Profile, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	profile := &model.Profile{
		UserID:          userID,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		BirthDate:       input.BirthDate,
		ShippingAddress: input.ShippingAddress,
		ShippingZip:     input.ShippingZip,
		BillingAddress:  input.BillingAddress,
		BillingZip:      input.BillingZip,
	}

	if err := s.profileRepo.Upsert(profile); err != nil {
		logger.Error("Failed to save profile", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Profile saved", map[string]interface{}{
		"user_id": userID,
	})
	return profile, nil
}
