package stripe

// LineItem is a single priced line of a Checkout Session. UnitAmount is in
// minor currency units and Quantity is at least 1; both are set server-side
// from the catalog, never from client input.
type LineItem struct {
	Name        string
	Description string
	Currency    string
	UnitAmount  int64
	Quantity    int
}

// CheckoutSessionRequest represents the parameters for creating a Checkout
// Session in payment mode.
type CheckoutSessionRequest struct {
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// CheckoutSessionResponse is the subset of the Checkout Session object the
// storefront needs: the hosted payment page URL to redirect the buyer to.
type CheckoutSessionResponse struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

// apiError mirrors Stripe's error envelope.
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
