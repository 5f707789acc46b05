package postgres

import (
	"context"
	"errors"
	"log/slog"

	"willvault-auth/app/domain"
	"willvault-auth/app/port"
	apperrors "willvault-auth/app/utils/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository implements port.UserRepository for PostgreSQL. The
// auth core only reads accounts; the registry service owns writes.
type UserRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db DatabaseIface, logger *slog.Logger) port.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger.With("component", "user_repository"),
	}
}

const userColumns = `id, email, first_name, last_name, role, created_at, updated_at`

// GetByEmail retrieves a user by email address
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(ctx, query, email)
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(ctx, query, userID)
}

func (r *UserRepository) scanUser(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	user := &domain.User{}
	var role string

	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("failed to query user", "error", err)
		return nil, apperrors.Wrap(apperrors.ErrCodeDatabaseError, "failed to query user", err)
	}

	user.Role = domain.ParseUserRole(role)
	return user, nil
}
