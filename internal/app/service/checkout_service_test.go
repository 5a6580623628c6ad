package service

import (
	"context"
	"testing"

	"github.com/ecommercio/storefront-backend/internal/app/model"
	"github.com/ecommercio/storefront-backend/internal/app/repository"
	"github.com/ecommercio/storefront-backend/internal/db"
	"github.com/ecommercio/storefront-backend/pkg/payment/stripe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	calls   int
	lastReq stripe.CheckoutSessionRequest
	url     string
	err     error
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, req stripe.CheckoutSessionRequest) (*stripe.CheckoutSessionResponse, error) {
	g.calls++
	g.lastReq = req
	if g.err != nil {
		return nil, g.err
	}
	return &stripe.CheckoutSessionResponse{
		ID:  "cs_test_123",
		URL: g.url,
	}, nil
}

func setupCheckoutServiceTest(t *testing.T) (CheckoutService, *fakeGateway, repository.ProductRepository, repository.SettingRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	productRepo := repository.NewProductRepository(testDB)
	settingRepo := repository.NewSettingRepository(testDB)
	gateway := &fakeGateway{url: "https://checkout.stripe.test/session"}

	return NewCheckoutService(productRepo, settingRepo, gateway), gateway, productRepo, settingRepo
}

func TestCheckoutService_EmptyCartFailsBeforeGateway(t *testing.T) {
	checkoutService, gateway, _, _ := setupCheckoutServiceTest(t)

	_, err := checkoutService.CreateCheckoutSession(context.Background(), nil, "https://shop/success", "https://shop/cancel")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, gateway.calls)
}

func TestCheckoutService_UnknownProductAbortsBeforeGateway(t *testing.T) {
	checkoutService, gateway, productRepo, _ := setupCheckoutServiceTest(t)

	product := &model.Product{Title: "Runner", PriceCents: 5900}
	require.NoError(t, productRepo.Create(product))

	items := []CartItem{
		{ProductID: product.ID, Quantity: 1},
		{ProductID: 9999, Quantity: 1},
	}

	_, err := checkoutService.CreateCheckoutSession(context.Background(), items, "https://shop/success", "https://shop/cancel")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Zero(t, gateway.calls)
}

func TestCheckoutService_RepricesFromCatalog(t *testing.T) {
	checkoutService, gateway, productRepo, settingRepo := setupCheckoutServiceTest(t)

	runner := &model.Product{Title: "Runner", Description: "Light running shoe", PriceCents: 5900}
	boot := &model.Product{Title: "Boot", PriceCents: 12900}
	require.NoError(t, productRepo.Create(runner))
	require.NoError(t, productRepo.Create(boot))
	require.NoError(t, settingRepo.Set(model.SettingSiteName, "Test Shop"))

	items := []CartItem{
		{ProductID: runner.ID, Quantity: 2},
		{ProductID: boot.ID, Quantity: 0},    // clamped to 1
		{ProductID: runner.ID, Quantity: -5}, // clamped to 1
	}

	url, err := checkoutService.CreateCheckoutSession(context.Background(), items, "https://shop/success", "https://shop/cancel")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.test/session", url)
	assert.Equal(t, 1, gateway.calls)

	req := gateway.lastReq
	require.Len(t, req.LineItems, 3)

	// Prices and titles come from the catalog, never from the client
	assert.Equal(t, "Runner", req.LineItems[0].Name)
	assert.Equal(t, "Light running shoe", req.LineItems[0].Description)
	assert.Equal(t, int64(5900), req.LineItems[0].UnitAmount)
	assert.Equal(t, "eur", req.LineItems[0].Currency)
	assert.Equal(t, 2, req.LineItems[0].Quantity)

	assert.Equal(t, int64(12900), req.LineItems[1].UnitAmount)
	assert.Equal(t, 1, req.LineItems[1].Quantity)
	assert.Equal(t, 1, req.LineItems[2].Quantity)

	assert.Equal(t, "https://shop/success", req.SuccessURL)
	assert.Equal(t, "https://shop/cancel", req.CancelURL)
	assert.Equal(t, "Test Shop", req.Metadata["siteName"])
}

func TestCheckoutService_SiteNameDefaultsWhenUnset(t *testing.T) {
	checkoutService, gateway, productRepo, _ := setupCheckoutServiceTest(t)

	product := &model.Product{Title: "Runner", PriceCents: 5900}
	require.NoError(t, productRepo.Create(product))

	_, err := checkoutService.CreateCheckoutSession(
		context.Background(),
		[]CartItem{{ProductID: product.ID, Quantity: 1}},
		"https://shop/success", "https://shop/cancel",
	)
	require.NoError(t, err)
	assert.Equal(t, "Ecommercio", gateway.lastReq.Metadata["siteName"])
}

func TestCheckoutService_NilGateway(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	productRepo := repository.NewProductRepository(testDB)
	settingRepo := repository.NewSettingRepository(testDB)
	checkoutService := NewCheckoutService(productRepo, settingRepo, nil)

	_, err = checkoutService.CreateCheckoutSession(
		context.Background(),
		[]CartItem{{ProductID: 1, Quantity: 1}},
		"https://shop/success", "https://shop/cancel",
	)
	assert.ErrorIs(t, err, stripe.ErrNotConfigured)
}
