// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAccessDenied           = "auth.access_denied"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Users
	KeyUserNotFound       = "user.not_found"
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserSuspended      = "user.suspended"

	// Clients
	KeyClientCreated  = "client.created"
	KeyClientUpdated  = "client.updated"
	KeyClientDeleted  = "client.deleted"
	KeyClientNotFound = "client.not_found"

	// Vehicles
	KeyVehicleCreated  = "vehicle.created"
	KeyVehicleUpdated  = "vehicle.updated"
	KeyVehicleDeleted  = "vehicle.deleted"
	KeyVehicleNotFound = "vehicle.not_found"

	// F&I requests
	KeyFIRequestCreated   = "fi_request.created"
	KeyFIRequestSubmitted = "fi_request.submitted"
	KeyFIRequestReviewed  = "fi_request.reviewed"
	KeyFIRequestNotFound  = "fi_request.not_found"

	// Notifications
	KeyNotificationRead     = "notification.read"
	KeyNotificationNotFound = "notification.not_found"

	// Billing
	KeyBillingCheckoutCreated = "billing.checkout_created"
	KeyBillingNotConfigured   = "billing.not_configured"
)
