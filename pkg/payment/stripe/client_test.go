package stripe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		SecretKey: "sk_test_123",
		BaseURL:   server.URL,
	})
	require.NoError(t, err)
	return client
}

func checkoutRequest() CheckoutSessionRequest {
	return CheckoutSessionRequest{
		LineItems: []LineItem{
			{Name: "Runner", Description: "Light running shoe", Currency: "eur", UnitAmount: 5900, Quantity: 2},
			{Name: "Boot", Currency: "eur", UnitAmount: 12900, Quantity: 1},
		},
		SuccessURL: "https://shop/success.html?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  "https://shop/cancel.html",
		Metadata:   map[string]string{"siteName": "Test Shop"},
	}
}

func TestClient_CreateCheckoutSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "card", r.PostForm.Get("payment_method_types[0]"))
		assert.Equal(t, "eur", r.PostForm.Get("line_items[0][price_data][currency]"))
		assert.Equal(t, "5900", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "Runner", r.PostForm.Get("line_items[0][price_data][product_data][name]"))
		assert.Equal(t, "Light running shoe", r.PostForm.Get("line_items[0][price_data][product_data][description]"))
		assert.Equal(t, "2", r.PostForm.Get("line_items[0][quantity]"))
		assert.Equal(t, "12900", r.PostForm.Get("line_items[1][price_data][unit_amount]"))
		// No description key when the product has none
		assert.Empty(t, r.PostForm.Get("line_items[1][price_data][product_data][description]"))
		assert.Equal(t, "Test Shop", r.PostForm.Get("metadata[siteName]"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_test_123","url":"https://checkout.stripe.com/pay/cs_test_123","status":"open"}`))
	})

	session, err := client.CreateCheckoutSession(context.Background(), checkoutRequest())
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_123", session.URL)
}

func TestClient_CreateCheckoutSession_Validation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.CreateCheckoutSession(context.Background(), CheckoutSessionRequest{
		SuccessURL: "https://shop/success",
		CancelURL:  "https://shop/cancel",
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	req := checkoutRequest()
	req.SuccessURL = ""
	_, err = client.CreateCheckoutSession(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestClient_CreateCheckoutSession_APIErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "bad api key",
			status:  http.StatusUnauthorized,
			body:    `{"error":{"type":"invalid_request_error","message":"Invalid API Key provided"}}`,
			wantErr: ErrUnauthorized,
		},
		{
			name:    "invalid parameters",
			status:  http.StatusBadRequest,
			body:    `{"error":{"type":"invalid_request_error","code":"parameter_missing","message":"Missing required param"}}`,
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "stripe is down",
			status:  http.StatusInternalServerError,
			body:    `{"error":{"type":"api_error","message":"Something went wrong"}}`,
			wantErr: ErrGatewayFailure,
		},
		{
			name:    "unparseable error body",
			status:  http.StatusBadGateway,
			body:    `<html>bad gateway</html>`,
			wantErr: ErrGatewayFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.CreateCheckoutSession(context.Background(), checkoutRequest())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewClient_ConfigValidation(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "https://api.stripe.com/v1"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewClient(Config{SecretKey: "sk_test_123"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
