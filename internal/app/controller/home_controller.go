package controller

import (
	"net/http"

	"github.com/ecommercio/storefront-backend/internal/app/service"
	apperrors "github.com/ecommercio/storefront-backend/internal/errors"
	"github.com/ecommercio/storefront-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type HomeController struct {
	layoutService service.LayoutService
}

func NewHomeController(layoutService service.LayoutService) *HomeController {
	return &HomeController{layoutService: layoutService}
}

// GetHome returns the composed homepage
// GET /api/home
func (ctrl *HomeController) GetHome(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	page, err := ctrl.layoutService.ComposeHome()
	if err != nil {
		log.Error("Failed to compose homepage", err, nil)
		apperrors.InternalError(c, "Failed to load the homepage")
		return
	}

	c.JSON(http.StatusOK, page)
}
