package repository

import (
	"errors"

	"github.com/ecommercio/storefront-backend/internal/app/model"
	"github.com/ecommercio/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	FindByUserID(userID uint) (*model.Profile, error)
	Upsert(profile *model.Profile) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByUserID(userID uint) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert creates the profile on first save and updates it afterwards,
// keyed by user ID. Runs in a transaction so the lookup and write are
// atomic.
func (r *profileRepository) Upsert(profile *model.Profile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Profile
		err := tx.Where("user_id = ?", profile.UserID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Create(profile).Error; err != nil {
				logger.Error("Failed to create profile in database", err, map[string]interface{}{
					"user_id": profile.UserID,
				})
				return err
			}
			return nil
		}
		if err != nil {
			return err
		}

		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		if err := tx.Save(profile).Error; err != nil {
			logger.Error("Failed to update profile in database", err, map[string]interface{}{
				"user_id": profile.UserID,
			})
			return err
		}
		return nil
	})
}
