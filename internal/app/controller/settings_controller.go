package controller

import (
	"errors"
	"net/http"

	"github.com/ecommercio/storefront-backend/internal/app/service"
	apperrors "github.com/ecommercio/storefront-backend/internal/errors"
	"github.com/ecommercio/storefront-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	settingsService service.SettingsService
}

func NewSettingsController(settingsService service.SettingsService) *SettingsController {
	return &SettingsController{settingsService: settingsService}
}

// UpdateSettingsRequest updates only the keys that are present in the
// payload. Absent keys keep their stored values.
type UpdateSettingsRequest struct {
	SiteName     *string `json:"siteName"`
	HeroTitle    *string `json:"heroTitle"`
	HeroSubtitle *string `json:"heroSubtitle"`
	AboutText    *string `json:"aboutText"`
	ContactText  *string `json:"contactText"`
	FooterText   *string `json:"footerText"`
	HomeLayout   *string `json:"homeLayout"`
}

// GetSettings returns every setting as a flat key/value object
// GET /api/settings
func (ctrl *SettingsController) GetSettings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	settings, err := ctrl.settingsService.GetSettings()
	if err != nil {
		log.Error("Failed to load settings", err, nil)
		apperrors.InternalError(c, "Failed to load settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings saves the provided settings keys
// POST /api/settings (admin)
func (ctrl *SettingsController) UpdateSettings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid settings request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid settings payload")
		return
	}

	settings, err := ctrl.settingsService.UpdateSettings(service.SettingsInput{
		SiteName:     req.SiteName,
		HeroTitle:    req.HeroTitle,
		HeroSubtitle: req.HeroSubtitle,
		AboutText:    req.AboutText,
		ContactText:  req.ContactText,
		FooterText:   req.FooterText,
		HomeLayout:   req.HomeLayout,
	})
	if err != nil {
		if errors.Is(err, service.ErrSiteNameBlank) {
			apperrors.BadRequest(c, apperrors.ValidationRequired, "Invalid siteName")
			return
		}
		if errors.Is(err, service.ErrInvalidLayout) {
			apperrors.BadRequest(c, apperrors.SettingsInvalidLayout, "homeLayout is not a valid layout")
			return
		}
		log.Error("Failed to save settings", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "save settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}
