package service

import (
	"context"
	"errors"

	"github.com/ecommercio/storefront-backend/internal/app/model"
	"github.com/ecommercio/storefront-backend/internal/app/repository"
	"github.com/ecommercio/storefront-backend/pkg/logger"
	"github.com/ecommercio/storefront-backend/pkg/payment/stripe"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
)

const checkoutCurrency = "eur"

// CartItem is one line of the client-side cart. Only the product ID and
// quantity are taken from the client, prices always come from the
// catalog.
type CartItem struct {
	ProductID uint
	Quantity  int
}

// CheckoutGateway abstracts the hosted-payment provider. *stripe.Client
// satisfies it.
type CheckoutGateway interface {
	CreateCheckoutSession(ctx context.Context, req stripe.CheckoutSessionRequest) (*stripe.CheckoutSessionResponse, error)
}

type CheckoutService interface {
	CreateCheckoutSession(ctx context.Context, items []CartItem, successURL, cancelURL string) (string, error)
}

type checkoutService struct {
	productRepo repository.ProductRepository
	settingRepo repository.SettingRepository
	gateway     CheckoutGateway
}

func NewCheckoutService(
	productRepo repository.ProductRepository,
	settingRepo repository.SettingRepository,
	gateway CheckoutGateway,
) CheckoutService {
	return &checkoutService{
		productRepo: productRepo,
		settingRepo: settingRepo,
		gateway:     gateway,
	}
}

// CreateCheckoutSession re-prices the cart from the catalog and delegates
// payment to the gateway, returning the hosted payment page URL. Any
// product ID that no longer exists aborts the whole checkout before the
// gateway is contacted.
func (s *checkoutService) CreateCheckoutSession(ctx context.Context, items []CartItem, successURL, cancelURL string) (string, error) {
	if s.gateway == nil {
		return "", stripe.ErrNotConfigured
	}
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ids)
	if err != nil {
		return "", err
	}

	byID := make(map[uint]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lineItems := make([]stripe.LineItem, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			logger.Warn("Checkout aborted: unknown product in cart", map[string]interface{}{
				"product_id": item.ProductID,
			})
			return "", ErrProductNotFound
		}

		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}

		lineItems = append(lineItems, stripe.LineItem{
			Name:        product.Title,
			Description: product.Description,
			Currency:    checkoutCurrency,
			UnitAmount:  product.PriceCents,
			Quantity:    quantity,
		})
	}

	siteName, err := s.settingRepo.Get(model.SettingSiteName)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
		siteName = "Ecommercio"
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, stripe.CheckoutSessionRequest{
		LineItems:  lineItems,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		Metadata:   map[string]string{"siteName": siteName},
	})
	if err != nil {
		logger.Error("Checkout session creation failed", err, map[string]interface{}{
			"line_items": len(lineItems),
		})
		return "", err
	}

	logger.Info("Checkout session created", map[string]interface{}{
		"session_id": session.ID,
		"line_items": len(lineItems),
	})
	return session.URL, nil
}
