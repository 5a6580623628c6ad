package errors

// Error code constants, shaped CATEGORY_SPECIFIC_DETAIL. The storefront
// client maps these codes to the inline messages it renders next to forms.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // no valid session
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong username/password
	AuthSessionExpired     = "AUTH_SESSION_EXPIRED"     // session token expired
	AuthAccountBanned      = "AUTH_ACCOUNT_BANNED"      // banned account
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"     // duplicate username

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"  // not allowed
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY" // admin role required
	AuthzLastAdmin = "AUTHZ_LAST_ADMIN" // would leave zero admins

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed payload
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // malformed id
	ValidationInvalidPrice = "VALIDATION_INVALID_PRICE" // negative price
	ValidationRequired     = "VALIDATION_REQUIRED"      // missing field

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // entity missing
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // unique conflict

	// ==================== Catalog (CATALOG_) ====================
	CategoryNotFound   = "CATALOG_CATEGORY_NOT_FOUND"
	CategoryNameExists = "CATALOG_CATEGORY_NAME_EXISTS"
	ProductNotFound    = "CATALOG_PRODUCT_NOT_FOUND"

	// ==================== Checkout (CHECKOUT_) ====================
	CheckoutEmptyCart      = "CHECKOUT_EMPTY_CART"      // no lines submitted
	CheckoutGatewayFailure = "CHECKOUT_GATEWAY_FAILURE" // payment gateway error

	// ==================== Settings (SETTINGS_) ====================
	SettingsInvalidLayout = "SETTINGS_INVALID_LAYOUT" // malformed homeLayout

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
