package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"willvault-auth/app/domain"
	"willvault-auth/app/port"
)

const passcodeEmailSubject = "Your WillVault verification code"

// IssuePasscodeUseCase generates, persists and dispatches one-time
// passcodes. Issuing a new code invalidates all prior codes for the
// same email, so only the most recent issuance verifies.
type IssuePasscodeUseCase struct {
	passcodes port.PasscodeRepository
	users     port.UserRepository
	mailer    port.EmailSender
	logger    *slog.Logger
}

// NewIssuePasscodeUseCase creates a new IssuePasscodeUseCase instance
func NewIssuePasscodeUseCase(passcodes port.PasscodeRepository, users port.UserRepository, mailer port.EmailSender, logger *slog.Logger) *IssuePasscodeUseCase {
	return &IssuePasscodeUseCase{
		passcodes: passcodes,
		users:     users,
		mailer:    mailer,
		logger:    logger.With("component", "issue_passcode"),
	}
}

// Issue runs the issuance sequence: account check, deletion of prior
// codes, persistence of the new record, then email dispatch. A failed
// dispatch rolls the record back so a code the user never received can
// never verify.
func (uc *IssuePasscodeUseCase) Issue(ctx context.Context, email string) error {
	normalized, err := domain.NormalizeEmail(email)
	if err != nil {
		return err
	}

	user, err := uc.users.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrAccountNotFound
		}
		return fmt.Errorf("failed to look up account: %w", err)
	}

	// Invalidate prior codes first. A deletion failure is logged but
	// not fatal: the new record still supersedes lookups by code.
	if err := uc.passcodes.DeleteByEmail(ctx, normalized); err != nil {
		uc.logger.WarnContext(ctx, "failed to delete prior passcodes", "email", normalized, "error", err)
	}

	passcode, err := domain.NewPasscode(normalized)
	if err != nil {
		return err
	}

	if err := uc.passcodes.Create(ctx, passcode); err != nil {
		uc.logger.ErrorContext(ctx, "failed to persist passcode", "email", normalized, "error", err)
		return fmt.Errorf("%w: %w", domain.ErrPasscodeStorage, err)
	}

	if err := uc.mailer.Send(ctx, user.Email, passcodeEmailSubject, passcodeEmailBody(passcode)); err != nil {
		// Compensating delete: a stored code that was never delivered
		// must not stay verifiable.
		if delErr := uc.passcodes.DeleteByEmail(ctx, normalized); delErr != nil {
			uc.logger.ErrorContext(ctx, "failed to roll back undelivered passcode", "email", normalized, "error", delErr)
		}
		uc.logger.ErrorContext(ctx, "failed to dispatch passcode email", "email", normalized, "error", err)
		return fmt.Errorf("%w: %w", domain.ErrPasscodeDelivery, err)
	}

	uc.logger.InfoContext(ctx, "passcode issued", "email", normalized, "expires_at", passcode.ExpiresAt)
	return nil
}

func passcodeEmailBody(p *domain.Passcode) string {
	return fmt.Sprintf(`<html><body>
<p>Use this code to sign in to WillVault:</p>
<p style="font-size:24px;font-weight:bold;letter-spacing:4px">%s</p>
<p>The code expires in %d minutes. If you did not request it, you can ignore this email.</p>
</body></html>`, p.Code, int(domain.PasscodeTTL.Minutes()))
}
