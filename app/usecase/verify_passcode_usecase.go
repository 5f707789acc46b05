package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"willvault-auth/app/domain"
	"willvault-auth/app/port"
)

// VerifyPasscodeUseCase validates a submitted code against the store
// and consumes it on success. Each rejection reason maps to a distinct
// error so callers can give precise feedback.
type VerifyPasscodeUseCase struct {
	passcodes port.PasscodeRepository
	logger    *slog.Logger
	now       func() time.Time
}

// NewVerifyPasscodeUseCase creates a new VerifyPasscodeUseCase instance
func NewVerifyPasscodeUseCase(passcodes port.PasscodeRepository, logger *slog.Logger) *VerifyPasscodeUseCase {
	return &VerifyPasscodeUseCase{
		passcodes: passcodes,
		logger:    logger.With("component", "verify_passcode"),
		now:       time.Now,
	}
}

// Verify checks the (email, code) pair: the record must exist, be
// unexpired and unused. The used flag is flipped with a conditional
// write so only one of two racing verification attempts succeeds.
func (uc *VerifyPasscodeUseCase) Verify(ctx context.Context, email, code string) error {
	normalized, err := domain.NormalizeEmail(email)
	if err != nil {
		return err
	}

	passcode, err := uc.passcodes.GetByEmailAndCode(ctx, normalized, code)
	if err != nil {
		if errors.Is(err, domain.ErrPasscodeNotFound) {
			uc.logger.InfoContext(ctx, "passcode verification failed", "email", normalized, "reason", "not_found")
			return domain.ErrPasscodeNotFound
		}
		return fmt.Errorf("failed to look up passcode: %w", err)
	}

	if passcode.IsExpired(uc.now()) {
		uc.logger.InfoContext(ctx, "passcode verification failed", "email", normalized, "reason", "expired")
		return domain.ErrPasscodeExpired
	}

	if passcode.Used {
		uc.logger.InfoContext(ctx, "passcode verification failed", "email", normalized, "reason", "already_used")
		return domain.ErrPasscodeAlreadyUsed
	}

	won, err := uc.passcodes.MarkUsed(ctx, normalized, code)
	if err != nil {
		return fmt.Errorf("failed to consume passcode: %w", err)
	}
	if !won {
		// A concurrent verification of the same code got there first.
		uc.logger.WarnContext(ctx, "lost consume race for passcode", "email", normalized)
		return domain.ErrPasscodeAlreadyUsed
	}

	uc.logger.InfoContext(ctx, "passcode verified", "email", normalized)
	return nil
}
