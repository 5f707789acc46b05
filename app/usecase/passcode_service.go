package usecase

import (
	"context"
	"log/slog"

	"willvault-auth/app/port"
)

// PasscodeService bundles issuance and verification behind the single
// passcode interface the REST layer consumes.
type PasscodeService struct {
	issue  *IssuePasscodeUseCase
	verify *VerifyPasscodeUseCase
}

// NewPasscodeService creates a new PasscodeService instance
func NewPasscodeService(passcodes port.PasscodeRepository, users port.UserRepository, mailer port.EmailSender, logger *slog.Logger) *PasscodeService {
	return &PasscodeService{
		issue:  NewIssuePasscodeUseCase(passcodes, users, mailer, logger),
		verify: NewVerifyPasscodeUseCase(passcodes, logger),
	}
}

// Issue delegates to the issuance use case
func (s *PasscodeService) Issue(ctx context.Context, email string) error {
	return s.issue.Issue(ctx, email)
}

// Verify delegates to the verification use case
func (s *PasscodeService) Verify(ctx context.Context, email, code string) error {
	return s.verify.Verify(ctx, email, code)
}
