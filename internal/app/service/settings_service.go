package service

import (
	"errors"
	"strings"

	"github.com/ecommercio/storefront-backend/internal/app/model"
	"github.com/ecommercio/storefront-backend/internal/app/repository"
	"github.com/ecommercio/storefront-backend/pkg/logger"
)

var (
	ErrSiteNameBlank = errors.New("siteName must not be blank")
	ErrInvalidLayout = errors.New("homeLayout is not a valid layout")
)

// SettingsInput updates only the keys whose pointers are non-nil, so a
// partial save never clobbers the other settings.
type SettingsInput struct {
	SiteName     *string
	HeroTitle    *string
	HeroSubtitle *string
	AboutText    *string
	ContactText  *string
	FooterText   *string
	HomeLayout   *string
}

type SettingsService interface {
	GetSettings() (map[string]string, error)
	UpdateSettings(input SettingsInput) (map[string]string, error)
}

type settingsService struct {
	settingRepo repository.SettingRepository
	layouts     LayoutService
}

func NewSettingsService(settingRepo repository.SettingRepository, layouts LayoutService) SettingsService {
	return &settingsService{
		settingRepo: settingRepo,
		layouts:     layouts,
	}
}

func (s *settingsService) GetSettings() (map[string]string, error) {
	return s.settingRepo.GetAll()
}

func (s *settingsService) UpdateSettings(input SettingsInput) (map[string]string, error) {
	values := make(map[string]string)

	if input.SiteName != nil {
		name := strings.TrimSpace(*input.SiteName)
		if name == "" {
			return nil, ErrSiteNameBlank
		}
		values[model.SettingSiteName] = name
	}
	if input.HeroTitle != nil {
		values[model.SettingHeroTitle] = *input.HeroTitle
	}
	if input.HeroSubtitle != nil {
		values[model.SettingHeroSubtitle] = *input.HeroSubtitle
	}
	if input.AboutText != nil {
		values[model.SettingAboutText] = *input.AboutText
	}
	if input.ContactText != nil {
		values[model.SettingContactText] = *input.ContactText
	}
	if input.FooterText != nil {
		values[model.SettingFooterText] = *input.FooterText
	}
	if input.HomeLayout != nil {
		if err := s.layouts.ValidateLayout(*input.HomeLayout); err != nil {
			return nil, ErrInvalidLayout
		}
		values[model.SettingHomeLayout] = *input.HomeLayout
	}

	if len(values) == 0 {
		return s.settingRepo.GetAll()
	}

	if err := s.settingRepo.SetAll(values); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	logger.Info("Settings updated", map[string]interface{}{
		"keys": keys,
	})

	return s.settingRepo.GetAll()
}
