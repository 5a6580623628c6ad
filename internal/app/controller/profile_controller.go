package controller

import (
	"errors"
	"net/http"

	"github.com/ecommercio/storefront-backend/internal/app/service"
	apperrors "github.com/ecommercio/storefront-backend/internal/errors"
	"github.com/ecommercio/storefront-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	profileService service.ProfileService
}

func NewProfileController(profileService service.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

type ProfileRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	BirthDate       string `json:"birth_date"`
	ShippingAddress string `json:"shipping_address"`
	ShippingZip     string `json:"shipping_zip"`
	BillingAddress  string `json:"billing_address"`
	BillingZip      string `json:"billing_zip"`
}

// GetProfile returns the signed-in user's profile
// GET /api/profile
func (ctrl *ProfileController) GetProfile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	profile, err := ctrl.profileService.GetProfile(userID)
	if err != nil {
		log.Error("Failed to load profile", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// SaveProfile creates or updates the signed-in user's profile
// POST /api/profile
func (ctrl *ProfileController) SaveProfile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid profile payload")
		return
	}

	profile, err := ctrl.profileService.SaveProfile(userID, service.ProfileInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		BirthDate:       req.BirthDate,
		ShippingAddress: req.ShippingAddress,
		ShippingZip:     req.ShippingZip,
		BillingAddress:  req.BillingAddress,
		BillingZip:      req.BillingZip,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		log.Error("Failed to save profile", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "save profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}
