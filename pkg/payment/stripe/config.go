package stripe

// Config represents the configuration for the Stripe client
type Config struct {
	// SecretKey is the Stripe secret API key
	SecretKey string

	// BaseURL is the Stripe API base URL
	BaseURL string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return ErrNotConfigured
	}
	if c.BaseURL == "" {
		return ErrInvalidRequest
	}
	return nil
}
