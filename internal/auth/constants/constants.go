package constants

const (
	// TokenType for Bearer authentication
	TokenType = "Bearer"

	// AuthHeaderName is the name of the Authorization header
	AuthHeaderName = "Authorization"

	// AuthHeaderPrefix is the prefix for the Authorization header value
	AuthHeaderPrefix = "Bearer "

	// GrantTypeAuthorizationCode is the only grant the proxy performs
	GrantTypeAuthorizationCode = "authorization_code"

	// ResponseTypeCode is requested at the authorization endpoint
	ResponseTypeCode = "code"

	// StatePrefix marks state values generated by this application
	StatePrefix = "linkedin_oauth_"
)

// API routes, all rooted at APIPrefix.
const (
	APIPrefix     = "/api/linkedin"
	ConfigPath    = APIPrefix + "/config"
	TokenPath     = APIPrefix + "/token"
	ProfilePath   = APIPrefix + "/profile"
	MetricsPath   = "/metrics"
	HealthzPath   = "/healthz"
	StaticPattern = "/*"
)

// Messages returned to callers. Provider details are never included.
const (
	MsgCodeRequired       = "Authorization code is required"
	MsgInvalidBody        = "Invalid request body"
	MsgExchangeFailed     = "Failed to exchange code for token"
	MsgAuthHeaderRequired = "Authorization header required"
	MsgProfileFailed      = "Failed to fetch profile data"
)
