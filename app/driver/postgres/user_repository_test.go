package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"willvault-auth/app/domain"
	apperrors "willvault-auth/app/utils/errors"
	"willvault-auth/app/utils/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errConnRefused = errors.New("connection refused")

func createTestUserRepository(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)

	testLogger, err := logger.New("debug")
	require.NoError(t, err)

	repo := NewUserRepository(mockDB, testLogger).(*UserRepository)

	return repo, mockDB
}

func userRows(id uuid.UUID, email, role string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{"id", "email", "first_name", "last_name", "role", "created_at", "updated_at"}).
		AddRow(id, email, "Alice", "Smith", role, now, now)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	repo, mockDB := createTestUserRepository(t)
	defer mockDB.Close()

	id := uuid.New()
	mockDB.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("alice@example.com").
		WillReturnRows(userRows(id, "alice@example.com", "super_admin"))

	user, err := repo.GetByEmail(context.Background(), "alice@example.com")

	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, domain.UserRoleSuperAdmin, user.Role)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestUserRepository_GetByID(t *testing.T) {
	repo, mockDB := createTestUserRepository(t)
	defer mockDB.Close()

	id := uuid.New()
	mockDB.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(id).
		WillReturnRows(userRows(id, "alice@example.com", "user"))

	user, err := repo.GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, domain.UserRoleUser, user.Role)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	repo, mockDB := createTestUserRepository(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("ghost@example.com").
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.GetByEmail(context.Background(), "ghost@example.com")

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Nil(t, user)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail_DatabaseError(t *testing.T) {
	repo, mockDB := createTestUserRepository(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("alice@example.com").
		WillReturnError(errConnRefused)

	user, err := repo.GetByEmail(context.Background(), "alice@example.com")

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.Equal(t, apperrors.ErrCodeDatabaseError, apperrors.GetErrorCode(err))
	assert.NoError(t, mockDB.ExpectationsWereMet())
}
