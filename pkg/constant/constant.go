package constant

const (
	// Cookie names for the token pair set on login/refresh.
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"

	// Fiber locals keys populated by the auth guard.
	UserLocalsKey   = "user"
	UserIDLocalsKey = "userID"

	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
)
