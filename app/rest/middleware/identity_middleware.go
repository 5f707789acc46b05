package middleware

import (
	"github.com/labstack/echo/v4"

	"willvault-auth/app/domain"
)

// Trusted identity headers, injected by the edge proxy after it has
// already validated the session. When present they let us skip the
// whoami round trip.
const (
	HeaderUserID    = "X-Willvault-User-Id"
	HeaderEmail     = "X-Willvault-Email"
	HeaderFirstName = "X-Willvault-First-Name"
	HeaderLastName  = "X-Willvault-Last-Name"
	HeaderRole      = "X-Willvault-Role"
)

// SessionCookieName is the Kratos session cookie forwarded by browsers.
const SessionCookieName = "ory_kratos_session"

// identityContextKey is the echo context key the extracted identity is
// stored under.
const identityContextKey = "request_identity"

// IdentityContext extracts the caller's identity attributes from the
// request and stores them on the echo context for handlers to use.
func IdentityContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(identityContextKey, ExtractRequestIdentity(c))
			return next(c)
		}
	}
}

// ExtractRequestIdentity reads the trusted headers and session cookie
// off the request. The trusted path requires both the user ID and the
// email header; partial header sets fall back to cookie resolution.
func ExtractRequestIdentity(c echo.Context) domain.RequestIdentity {
	req := c.Request()

	identity := domain.RequestIdentity{
		UserID:    req.Header.Get(HeaderUserID),
		Email:     req.Header.Get(HeaderEmail),
		FirstName: req.Header.Get(HeaderFirstName),
		LastName:  req.Header.Get(HeaderLastName),
		Role:      req.Header.Get(HeaderRole),
	}
	identity.Trusted = identity.UserID != "" && identity.Email != ""

	if cookie, err := req.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		identity.SessionCookie = cookie.Name + "=" + cookie.Value
	}

	return identity
}

// RequestIdentityFrom returns the identity stored by IdentityContext.
// A zero value is returned when the middleware did not run.
func RequestIdentityFrom(c echo.Context) domain.RequestIdentity {
	if v, ok := c.Get(identityContextKey).(domain.RequestIdentity); ok {
		return v
	}
	return domain.RequestIdentity{}
}
