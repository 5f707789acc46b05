package postgres

import (
	"context"
	"errors"
	"log/slog"

	"willvault-auth/app/domain"
	"willvault-auth/app/port"
	apperrors "willvault-auth/app/utils/errors"

	"github.com/jackc/pgx/v5"
)

// PasscodeRepository implements port.PasscodeRepository for PostgreSQL
type PasscodeRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewPasscodeRepository creates a new PostgreSQL passcode repository
func NewPasscodeRepository(db DatabaseIface, logger *slog.Logger) port.PasscodeRepository {
	return &PasscodeRepository{
		db:     db,
		logger: logger.With("component", "passcode_repository"),
	}
}

// Create inserts a new passcode record
func (r *PasscodeRepository) Create(ctx context.Context, passcode *domain.Passcode) error {
	query := `
		INSERT INTO passcodes (
			id, email, code, issued_at, expires_at, used
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)`

	_, err := r.db.Exec(ctx, query,
		passcode.ID,
		passcode.Email,
		passcode.Code,
		passcode.IssuedAt,
		passcode.ExpiresAt,
		passcode.Used,
	)
	if err != nil {
		r.logger.Error("failed to insert passcode", "email", passcode.Email, "error", err)
		return apperrors.Wrap(apperrors.ErrCodeDatabaseError, "failed to insert passcode", err)
	}

	return nil
}

// GetByEmailAndCode retrieves the passcode matching the email/code pair
func (r *PasscodeRepository) GetByEmailAndCode(ctx context.Context, email, code string) (*domain.Passcode, error) {
	query := `
		SELECT id, email, code, issued_at, expires_at, used
		FROM passcodes
		WHERE email = $1 AND code = $2`

	passcode := &domain.Passcode{}
	err := r.db.QueryRow(ctx, query, email, code).Scan(
		&passcode.ID,
		&passcode.Email,
		&passcode.Code,
		&passcode.IssuedAt,
		&passcode.ExpiresAt,
		&passcode.Used,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPasscodeNotFound
		}
		r.logger.Error("failed to query passcode", "email", email, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrCodeDatabaseError, "failed to query passcode", err)
	}

	return passcode, nil
}

// DeleteByEmail removes all passcode records for the email
func (r *PasscodeRepository) DeleteByEmail(ctx context.Context, email string) error {
	query := `DELETE FROM passcodes WHERE email = $1`

	tag, err := r.db.Exec(ctx, query, email)
	if err != nil {
		r.logger.Error("failed to delete passcodes", "email", email, "error", err)
		return apperrors.Wrap(apperrors.ErrCodeDatabaseError, "failed to delete passcodes", err)
	}

	if tag.RowsAffected() > 0 {
		r.logger.Debug("deleted prior passcodes", "email", email, "count", tag.RowsAffected())
	}
	return nil
}

// MarkUsed flips the used flag with a conditional update. The WHERE
// clause on used = false makes concurrent consumption of the same code
// a storage-level race with exactly one winner.
func (r *PasscodeRepository) MarkUsed(ctx context.Context, email, code string) (bool, error) {
	query := `
		UPDATE passcodes
		SET used = true
		WHERE email = $1 AND code = $2 AND used = false`

	tag, err := r.db.Exec(ctx, query, email, code)
	if err != nil {
		r.logger.Error("failed to mark passcode used", "email", email, "error", err)
		return false, apperrors.Wrap(apperrors.ErrCodeDatabaseError, "failed to mark passcode used", err)
	}

	return tag.RowsAffected() == 1, nil
}
