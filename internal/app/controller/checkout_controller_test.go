package controller

import (
	"context"
	"net/http"
	"testing"

	"github.com/ecommercio/storefront-backend/internal/app/model"
	"github.com/ecommercio/storefront-backend/internal/app/repository"
	"github.com/ecommercio/storefront-backend/internal/app/service"
	"github.com/ecommercio/storefront-backend/internal/db"
	"github.com/ecommercio/storefront-backend/pkg/payment/stripe"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	lastReq stripe.CheckoutSessionRequest
}

func (g *stubGateway) CreateCheckoutSession(_ context.Context, req stripe.CheckoutSessionRequest) (*stripe.CheckoutSessionResponse, error) {
	g.lastReq = req
	return &stripe.CheckoutSessionResponse{ID: "cs_test_1", URL: "https://checkout.stripe.test/pay"}, nil
}

func setupCheckoutControllerTest(t *testing.T, successURL, cancelURL string) (*gin.Engine, *stubGateway, repository.ProductRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	productRepo := repository.NewProductRepository(testDB)
	settingRepo := repository.NewSettingRepository(testDB)
	gateway := &stubGateway{}
	checkoutService := service.NewCheckoutService(productRepo, settingRepo, gateway)
	checkoutController := NewCheckoutController(checkoutService, successURL, cancelURL)

	engine := gin.New()
	engine.POST("/api/create-checkout-session", checkoutController.CreateCheckoutSession)
	return engine, gateway, productRepo
}

func TestCheckoutController_CreateCheckoutSession(t *testing.T) {
	engine, gateway, productRepo := setupCheckoutControllerTest(t, "", "")

	product := &model.Product{Title: "Runner", PriceCents: 5900}
	require.NoError(t, productRepo.Create(product))

	w := postJSON(t, engine, "/api/create-checkout-session", gin.H{
		"items": []gin.H{{"id": product.ID, "quantity": 2}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"url":"https://checkout.stripe.test/pay"`)

	// Redirects are derived from the request host
	assert.Equal(t, "http://example.com/success.html?session_id={CHECKOUT_SESSION_ID}", gateway.lastReq.SuccessURL)
	assert.Equal(t, "http://example.com/cancel.html", gateway.lastReq.CancelURL)
}

func TestCheckoutController_ConfiguredRedirects(t *testing.T) {
	engine, gateway, productRepo := setupCheckoutControllerTest(t, "https://shop.example/thanks", "https://shop.example/back")

	product := &model.Product{Title: "Runner", PriceCents: 5900}
	require.NoError(t, productRepo.Create(product))

	w := postJSON(t, engine, "/api/create-checkout-session", gin.H{
		"items": []gin.H{{"id": product.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://shop.example/thanks", gateway.lastReq.SuccessURL)
	assert.Equal(t, "https://shop.example/back", gateway.lastReq.CancelURL)
}

func TestCheckoutController_EmptyCart(t *testing.T) {
	engine, _, _ := setupCheckoutControllerTest(t, "", "")

	w := postJSON(t, engine, "/api/create-checkout-session", gin.H{"items": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cart is empty")
}

func TestCheckoutController_UnknownProduct(t *testing.T) {
	engine, _, _ := setupCheckoutControllerTest(t, "", "")

	w := postJSON(t, engine, "/api/create-checkout-session", gin.H{
		"items": []gin.H{{"id": 9999, "quantity": 1}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
