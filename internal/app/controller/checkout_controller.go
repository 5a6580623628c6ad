package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ecommercio/storefront-backend/internal/app/service"
	apperrors "github.com/ecommercio/storefront-backend/internal/errors"
	"github.com/ecommercio/storefront-backend/internal/middleware"
	"github.com/ecommercio/storefront-backend/pkg/payment/stripe"
	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	checkoutService service.CheckoutService

	// Optional overrides; when empty the URLs are derived from the
	// request host.
	successURL string
	cancelURL  string
}

func NewCheckoutController(checkoutService service.CheckoutService, successURL, cancelURL string) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
		successURL:      successURL,
		cancelURL:       cancelURL,
	}
}

type CheckoutItemRequest struct {
	ID       uint `json:"id" binding:"required"`
	Quantity int  `json:"quantity"`
}

type CheckoutRequest struct {
	Items []CheckoutItemRequest `json:"items"`
}

// CreateCheckoutSession re-prices the cart and responds with the hosted
// payment page URL
// POST /api/create-checkout-session
func (ctrl *CheckoutController) CreateCheckoutSession(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid checkout payload")
		return
	}
	if len(req.Items) == 0 {
		apperrors.BadRequest(c, apperrors.CheckoutEmptyCart, "Cart is empty")
		return
	}

	items := make([]service.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CartItem{
			ProductID: item.ID,
			Quantity:  item.Quantity,
		})
	}

	successURL, cancelURL := ctrl.redirectURLs(c)

	url, err := ctrl.checkoutService.CreateCheckoutSession(c.Request.Context(), items, successURL, cancelURL)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			apperrors.BadRequest(c, apperrors.CheckoutEmptyCart, "Cart is empty")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "A product in the cart no longer exists")
		case errors.Is(err, stripe.ErrNotConfigured):
			apperrors.InternalError(c, "Payments are not configured")
		default:
			log.Error("Checkout failed", err, map[string]interface{}{
				"items": len(items),
			})
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.CheckoutGatewayFailure, "Error creating checkout session")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// redirectURLs builds the post-payment redirect targets, preferring the
// configured URLs over ones derived from the request host.
func (ctrl *CheckoutController) redirectURLs(c *gin.Context) (string, string) {
	if ctrl.successURL != "" && ctrl.cancelURL != "" {
		return ctrl.successURL, ctrl.cancelURL
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	base := fmt.Sprintf("%s://%s", scheme, c.Request.Host)

	return base + "/success.html?session_id={CHECKOUT_SESSION_ID}", base + "/cancel.html"
}
