package kratos

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"willvault-auth/app/domain"
	"willvault-auth/app/port"
	apperrors "willvault-auth/app/utils/errors"
)

// SessionProvider implements port.SessionProvider against Ory Kratos
type SessionProvider struct {
	client *Client
	logger *slog.Logger
}

// NewSessionProvider creates a Kratos-backed session provider
func NewSessionProvider(client *Client, logger *slog.Logger) port.SessionProvider {
	return &SessionProvider{
		client: client,
		logger: logger.With("component", "kratos_session_provider"),
	}
}

// GetCurrentSession validates the session cookie via whoami and maps
// the Kratos session to the domain shape.
func (p *SessionProvider) GetCurrentSession(ctx context.Context, cookieHeader string) (*domain.AuthSession, error) {
	if cookieHeader == "" {
		return nil, domain.ErrUnauthenticated
	}

	session, resp, err := p.client.API().FrontendAPI.ToSession(ctx).Cookie(cookieHeader).Execute()
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return nil, domain.ErrUnauthenticated
		}
		p.logger.ErrorContext(ctx, "whoami call failed", "error", err)
		return nil, apperrors.Wrap(apperrors.ErrCodeKratosError, "failed to call kratos whoami", err)
	}

	if session.Active != nil && !*session.Active {
		return nil, domain.ErrUnauthenticated
	}
	if session.Identity == nil {
		return nil, fmt.Errorf("missing identity in kratos session")
	}

	var expiresAt time.Time
	if session.ExpiresAt != nil {
		expiresAt = *session.ExpiresAt
	}

	return &domain.AuthSession{
		ID:         session.Id,
		IdentityID: session.Identity.Id,
		Email:      emailFromTraits(session.Identity.Traits),
		Active:     session.Active == nil || *session.Active,
		ExpiresAt:  expiresAt,
	}, nil
}

// SignOut revokes the session behind the cookie using the browser
// logout flow. Failure is surfaced to the caller; nothing is cleared
// locally here.
func (p *SessionProvider) SignOut(ctx context.Context, cookieHeader string) error {
	if cookieHeader == "" {
		return domain.ErrUnauthenticated
	}

	flow, resp, err := p.client.API().FrontendAPI.CreateBrowserLogoutFlow(ctx).Cookie(cookieHeader).Execute()
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return domain.ErrUnauthenticated
		}
		p.logger.ErrorContext(ctx, "failed to create logout flow", "error", err)
		return apperrors.Wrap(apperrors.ErrCodeKratosError, "failed to create logout flow", err)
	}

	_, err = p.client.API().FrontendAPI.UpdateLogoutFlow(ctx).
		Token(flow.LogoutToken).
		Cookie(cookieHeader).
		Execute()
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to complete logout flow", "error", err)
		return apperrors.Wrap(apperrors.ErrCodeKratosError, "failed to complete logout flow", err)
	}

	p.logger.InfoContext(ctx, "session revoked")
	return nil
}

func emailFromTraits(traits interface{}) string {
	m, ok := traits.(map[string]interface{})
	if !ok {
		return ""
	}
	email, _ := m["email"].(string)
	return email
}
