package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyItemNotFound indicates an unknown flavor id.
	ErrKeyItemNotFound = "error.item_not_found"
	// ErrKeyShopUnavailable indicates the shop API could not be reached.
	ErrKeyShopUnavailable = "error.shop_unavailable"
	// ErrKeyCheckoutRetry is the generic prompt shown after a failed order.
	ErrKeyCheckoutRetry = "error.checkout.retry"
	// ErrKeyCheckoutInFlight indicates an order is already being submitted.
	ErrKeyCheckoutInFlight = "error.checkout.in_flight"
	// ErrKeySimulatorRunning indicates a simulated session is already active.
	ErrKeySimulatorRunning = "error.simulator.already_running"
)

// Validation message translation keys, one per checkout field.
const (
	ErrKeyValidationFailed       = "error.validation.failed"
	ErrKeyValidationName         = "error.validation.name"
	ErrKeyValidationEmail        = "error.validation.email"
	ErrKeyValidationAddress      = "error.validation.address"
	ErrKeyValidationPaymentToken = "error.validation.payment_token"
	ErrKeyValidationCartEmpty    = "error.validation.cart_empty"
	ErrKeyValidationQuantity     = "error.validation.quantity"
)

// SuccessKeySimulatorStarted indicates simulated sessions were started.
const SuccessKeySimulatorStarted = "success.simulator_started"
