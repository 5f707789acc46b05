package port

//go:generate mockgen -source=session_port.go -destination=../mocks/mock_session_port.go

import (
	"context"

	"willvault-auth/app/domain"
)

// SessionProvider defines the identity-provider session operations the
// core consumes. Backed by Ory Kratos in production.
type SessionProvider interface {
	// GetCurrentSession resolves the session behind the given cookie
	// header. Returns domain.ErrUnauthenticated when no valid session
	// exists.
	GetCurrentSession(ctx context.Context, cookieHeader string) (*domain.AuthSession, error)

	// SignOut invalidates the underlying session.
	SignOut(ctx context.Context, cookieHeader string) error
}

// IdentityResolver resolves the authenticated identity for a request,
// either from pre-validated attributes or by falling back to the
// session provider plus the user store.
type IdentityResolver interface {
	Resolve(ctx context.Context, req domain.RequestIdentity) (*domain.SessionIdentity, error)
}
