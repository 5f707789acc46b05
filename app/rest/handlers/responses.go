package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"willvault-auth/app/domain"
	apperrors "willvault-auth/app/utils/errors"
	"willvault-auth/app/utils/validator"
)

// ErrorResponse is the standard error envelope
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// MessageResponse is the standard success envelope for operations that
// return no payload
type MessageResponse struct {
	Message string `json:"message"`
}

// writeDomainError maps a domain error to its HTTP status and stable
// error code. Verification failures get distinct codes so a client can
// tell an expired code from a consumed one.
func writeDomainError(c echo.Context, err error) error {
	var validationErr *validator.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Validation failed",
			Code:    "VALIDATION_FAILED",
			Details: validationErr.Errors,
		})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidEmail), errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request",
			Code:  "INVALID_REQUEST",
		})
	case errors.Is(err, domain.ErrAccountNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "No account registered for this email",
			Code:  "ACCOUNT_NOT_FOUND",
		})
	case errors.Is(err, domain.ErrPasscodeNotFound):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "Verification code is incorrect",
			Code:  "PASSCODE_NOT_FOUND",
		})
	case errors.Is(err, domain.ErrPasscodeExpired):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "Verification code has expired",
			Code:  "PASSCODE_EXPIRED",
		})
	case errors.Is(err, domain.ErrPasscodeAlreadyUsed):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "Verification code has already been used",
			Code:  "PASSCODE_ALREADY_USED",
		})
	case errors.Is(err, domain.ErrPasscodeDelivery):
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: "Could not deliver the verification code",
			Code:  "PASSCODE_DELIVERY_FAILED",
		})
	case errors.Is(err, domain.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "Authentication required",
			Code:  "UNAUTHENTICATED",
		})
	case errors.Is(err, domain.ErrProfileMissing):
		return c.JSON(http.StatusForbidden, ErrorResponse{
			Error: "Authenticated session has no registered profile",
			Code:  "PROFILE_MISSING",
		})
	case errors.Is(err, domain.ErrSessionRefresh):
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: "Session could not be resolved",
			Code:  "SESSION_RESOLUTION_FAILED",
		})
	case errors.Is(err, domain.ErrSignOutFailed):
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: "Sign-out did not complete",
			Code:  "SIGN_OUT_FAILED",
		})
	case errors.Is(err, domain.ErrRateLimitExceeded):
		return c.JSON(http.StatusTooManyRequests, ErrorResponse{
			Error: "Rate limit exceeded",
			Code:  "RATE_LIMIT_EXCEEDED",
		})
	default:
		if appErr, ok := apperrors.AsAppError(err); ok {
			return c.JSON(appErr.StatusCode, ErrorResponse{
				Error: appErr.Message,
				Code:  string(appErr.Code),
			})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Internal server error",
			Code:  "INTERNAL_ERROR",
		})
	}
}
