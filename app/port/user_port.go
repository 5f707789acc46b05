package port

//go:generate mockgen -source=user_port.go -destination=../mocks/mock_user_port.go

import (
	"context"

	"github.com/google/uuid"

	"willvault-auth/app/domain"
)

// UserRepository defines read access to registered accounts. The auth
// core never creates or mutates users; account management lives in the
// registry service.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}
