package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"willvault-auth/app/cache"
	"willvault-auth/app/domain"
	"willvault-auth/app/rest/middleware"
)

// SessionHandler serves the cached session identity
type SessionHandler struct {
	registry *cache.Registry
	logger   *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(registry *cache.Registry, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		registry: registry,
		logger:   logger.With("component", "session_handler"),
	}
}

// SessionResponse is the response body for session endpoints
type SessionResponse struct {
	Authenticated bool                    `json:"authenticated"`
	User          *domain.SessionIdentity `json:"user,omitempty"`
}

// Me handles GET /v1/session/me. Concurrent requests for the same
// session share one resolution.
func (h *SessionHandler) Me(c echo.Context) error {
	ctx := c.Request().Context()
	request := middleware.RequestIdentityFrom(c)

	identity, err := h.registry.For(request).FetchUser(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "session resolution failed", "error", err)
		return writeDomainError(c, err)
	}

	if identity == nil {
		return c.JSON(http.StatusOK, SessionResponse{Authenticated: false})
	}
	return c.JSON(http.StatusOK, SessionResponse{
		Authenticated: true,
		User:          identity,
	})
}

// Refresh handles POST /v1/session/refresh. The cache is invalidated
// and the identity resolved again even if a value was already cached.
func (h *SessionHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	request := middleware.RequestIdentityFrom(c)

	identity, err := h.registry.For(request).RefreshUser(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "session refresh failed", "error", err)
		return writeDomainError(c, err)
	}

	if identity == nil {
		return c.JSON(http.StatusOK, SessionResponse{Authenticated: false})
	}
	return c.JSON(http.StatusOK, SessionResponse{
		Authenticated: true,
		User:          identity,
	})
}
