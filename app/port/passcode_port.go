package port

//go:generate mockgen -source=passcode_port.go -destination=../mocks/mock_passcode_port.go

import (
	"context"

	"willvault-auth/app/domain"
)

// PasscodeUsecase defines the one-time passcode business logic interface
type PasscodeUsecase interface {
	// Issue generates, persists and dispatches a fresh passcode for the
	// account registered under email. Any previously issued codes for
	// that email are invalidated.
	Issue(ctx context.Context, email string) error

	// Verify checks a submitted code and consumes it on success so it
	// can never be accepted twice.
	Verify(ctx context.Context, email, code string) error
}

// PasscodeRepository defines passcode data access interface
type PasscodeRepository interface {
	Create(ctx context.Context, passcode *domain.Passcode) error
	GetByEmailAndCode(ctx context.Context, email, code string) (*domain.Passcode, error)
	DeleteByEmail(ctx context.Context, email string) error

	// MarkUsed flips used to true only if it is still false, returning
	// whether this caller won the update. Concurrent verification
	// attempts on the same code race on this conditional write.
	MarkUsed(ctx context.Context, email, code string) (bool, error)
}
