package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"willvault-auth/app/cache"
	"willvault-auth/app/port"
	"willvault-auth/app/rest/middleware"
	"willvault-auth/app/utils/validator"
)

// AuthHandler handles passcode issuance, verification and sign-out
type AuthHandler struct {
	passcodes port.PasscodeUsecase
	registry  *cache.Registry
	validator *validator.Validator
	logger    *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(passcodes port.PasscodeUsecase, registry *cache.Registry, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		passcodes: passcodes,
		registry:  registry,
		validator: validator.New(),
		logger:    logger.With("component", "auth_handler"),
	}
}

// IssuePasscodeRequest is the request body for passcode issuance
type IssuePasscodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyPasscodeRequest is the request body for passcode verification
type VerifyPasscodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,passcode"`
}

// IssuePasscode handles POST /v1/auth/passcode
func (h *AuthHandler) IssuePasscode(c echo.Context) error {
	var req IssuePasscodeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := h.validator.Validate(&req); err != nil {
		return writeDomainError(c, err)
	}

	ctx := c.Request().Context()
	if err := h.passcodes.Issue(ctx, req.Email); err != nil {
		h.logger.ErrorContext(ctx, "passcode issuance failed", "error", err)
		return writeDomainError(c, err)
	}

	h.logger.InfoContext(ctx, "passcode issued")
	return c.JSON(http.StatusAccepted, MessageResponse{
		Message: "Verification code sent",
	})
}

// VerifyPasscode handles POST /v1/auth/passcode/verify
func (h *AuthHandler) VerifyPasscode(c echo.Context) error {
	var req VerifyPasscodeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := h.validator.Validate(&req); err != nil {
		return writeDomainError(c, err)
	}

	ctx := c.Request().Context()
	if err := h.passcodes.Verify(ctx, req.Email, req.Code); err != nil {
		h.logger.WarnContext(ctx, "passcode verification rejected", "error", err)
		return writeDomainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Logout handles POST /v1/auth/logout. The provider session is revoked
// first; the cached identity survives a failed revocation.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	request := middleware.RequestIdentityFrom(c)

	sessionCache := h.registry.For(request)
	if err := sessionCache.SignOut(ctx); err != nil {
		h.logger.ErrorContext(ctx, "sign-out failed", "error", err)
		return writeDomainError(c, err)
	}

	h.registry.Drop(request)
	return c.JSON(http.StatusOK, MessageResponse{
		Message: "Signed out",
	})
}
