package service

import (
	"testing"

	"github.com/ecommercio/storefront-backend/internal/app/model"
	"github.com/ecommercio/storefront-backend/internal/app/repository"
	"github.com/ecommercio/storefront-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func setupSettingsServiceTest(t *testing.T) (SettingsService, repository.SettingRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	categoryRepo := repository.NewCategoryRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	settingRepo := repository.NewSettingRepository(testDB)
	layoutService := NewLayoutService(productRepo, categoryRepo, settingRepo)

	return NewSettingsService(settingRepo, layoutService), settingRepo
}

func TestSettingsService_UpdateSettings_PartialUpdate(t *testing.T) {
	settingsService, settingRepo := setupSettingsServiceTest(t)

	require.NoError(t, settingRepo.Set(model.SettingFooterText, "Original footer"))

	settings, err := settingsService.UpdateSettings(SettingsInput{
		SiteName:  strPtr("  My Shop  "),
		HeroTitle: strPtr("Welcome"),
	})
	require.NoError(t, err)

	assert.Equal(t, "My Shop", settings[model.SettingSiteName])
	assert.Equal(t, "Welcome", settings[model.SettingHeroTitle])
	// Keys not in the payload are untouched
	assert.Equal(t, "Original footer", settings[model.SettingFooterText])
}

func TestSettingsService_UpdateSettings_BlankSiteName(t *testing.T) {
	settingsService, _ := setupSettingsServiceTest(t)

	_, err := settingsService.UpdateSettings(SettingsInput{
		SiteName: strPtr("   "),
	})
	assert.ErrorIs(t, err, ErrSiteNameBlank)
}

func TestSettingsService_UpdateSettings_HomeLayout(t *testing.T) {
	settingsService, settingRepo := setupSettingsServiceTest(t)

	_, err := settingsService.UpdateSettings(SettingsInput{
		HomeLayout: strPtr("not json"),
	})
	assert.ErrorIs(t, err, ErrInvalidLayout)

	layout := `[{"category_id":1,"product_ids":[2,3]}]`
	settings, err := settingsService.UpdateSettings(SettingsInput{
		HomeLayout: strPtr(layout),
	})
	require.NoError(t, err)
	assert.Equal(t, layout, settings[model.SettingHomeLayout])

	// The empty string clears the layout
	_, err = settingsService.UpdateSettings(SettingsInput{
		HomeLayout: strPtr(""),
	})
	require.NoError(t, err)

	stored, err := settingRepo.Get(model.SettingHomeLayout)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSettingsService_UpdateSettings_NoFields(t *testing.T) {
	settingsService, settingRepo := setupSettingsServiceTest(t)

	require.NoError(t, settingRepo.Set(model.SettingSiteName, "My Shop"))

	settings, err := settingsService.UpdateSettings(SettingsInput{})
	require.NoError(t, err)
	assert.Equal(t, "My Shop", settings[model.SettingSiteName])
}
