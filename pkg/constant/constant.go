package constant

const (
	// Cookie names shared between issuance and clearing. Deletion must use
	// the same attribute set they were written with.
	AccessTokenCookie  = "auth_token"
	RefreshTokenCookie = "refresh_token"

	// DeviceIDHeader identifies which device's refresh token is being rotated.
	DeviceIDHeader = "X-Device-Id"

	// ClaimName is the display-name claim carried alongside the registered
	// sub/jti claims in access tokens.
	ClaimName = "name"

	// LocalsEmail is the Fiber locals key the session middleware stores the
	// authenticated email under.
	LocalsEmail = "auth_email"

	DefaultRole = "customer"

	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)
