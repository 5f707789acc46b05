package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"willvault-auth/app/domain"
	"willvault-auth/app/port"

	"github.com/google/uuid"
)

// ResolveIdentityUseCase produces the normalized SessionIdentity for a
// request. When an upstream gate already validated the session and
// attached identity attributes, those are trusted directly; otherwise
// the session provider is consulted and the profile loaded from the
// user store.
type ResolveIdentityUseCase struct {
	sessions port.SessionProvider
	users    port.UserRepository
	logger   *slog.Logger
}

// NewResolveIdentityUseCase creates a new ResolveIdentityUseCase instance
func NewResolveIdentityUseCase(sessions port.SessionProvider, users port.UserRepository, logger *slog.Logger) *ResolveIdentityUseCase {
	return &ResolveIdentityUseCase{
		sessions: sessions,
		users:    users,
		logger:   logger.With("component", "resolve_identity"),
	}
}

// Resolve returns the identity for the request, or
// domain.ErrUnauthenticated when no valid session exists.
func (uc *ResolveIdentityUseCase) Resolve(ctx context.Context, req domain.RequestIdentity) (*domain.SessionIdentity, error) {
	if req.Trusted {
		return uc.fromTrustedAttributes(req)
	}

	if req.SessionCookie == "" {
		return nil, domain.ErrUnauthenticated
	}

	session, err := uc.sessions.GetCurrentSession(ctx, req.SessionCookie)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	userID, err := uuid.Parse(session.IdentityID)
	if err != nil {
		return nil, fmt.Errorf("invalid identity id in session: %w", err)
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// A live session pointing at no profile row is a data
			// integrity problem, not an ordinary logged-out state.
			uc.logger.ErrorContext(ctx, "session references missing profile", "user_id", session.IdentityID)
			return nil, fmt.Errorf("%w: user %s", domain.ErrProfileMissing, session.IdentityID)
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	return domain.IdentityFromUser(user), nil
}

func (uc *ResolveIdentityUseCase) fromTrustedAttributes(req domain.RequestIdentity) (*domain.SessionIdentity, error) {
	id, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in trusted attributes: %w", err)
	}
	return domain.NewSessionIdentity(id, req.Email, req.FirstName, req.LastName, domain.ParseUserRole(req.Role)), nil
}
