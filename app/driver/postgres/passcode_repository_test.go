package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"willvault-auth/app/domain"
	apperrors "willvault-auth/app/utils/errors"
	"willvault-auth/app/utils/logger"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a test passcode repository with mocked database
func createTestPasscodeRepository(t *testing.T) (*PasscodeRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)

	testLogger, err := logger.New("debug")
	require.NoError(t, err)

	repo := NewPasscodeRepository(mockDB, testLogger).(*PasscodeRepository)

	return repo, mockDB
}

func createTestPasscode(t *testing.T) *domain.Passcode {
	t.Helper()

	passcode, err := domain.NewPasscode("alice@example.com")
	require.NoError(t, err)

	return passcode
}

func TestPasscodeRepository_Create(t *testing.T) {
	tests := []struct {
		name    string
		setupDB func(pgxmock.PgxPoolIface, *domain.Passcode)
		wantErr bool
	}{
		{
			name: "successful insert",
			setupDB: func(mockDB pgxmock.PgxPoolIface, p *domain.Passcode) {
				mockDB.ExpectExec("INSERT INTO passcodes").
					WithArgs(p.ID, p.Email, p.Code, p.IssuedAt, p.ExpiresAt, p.Used).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
			wantErr: false,
		},
		{
			name: "database error during insert",
			setupDB: func(mockDB pgxmock.PgxPoolIface, p *domain.Passcode) {
				mockDB.ExpectExec("INSERT INTO passcodes").
					WithArgs(p.ID, p.Email, p.Code, p.IssuedAt, p.ExpiresAt, p.Used).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mockDB := createTestPasscodeRepository(t)
			defer mockDB.Close()

			passcode := createTestPasscode(t)
			tt.setupDB(mockDB, passcode)

			err := repo.Create(context.Background(), passcode)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, apperrors.ErrCodeDatabaseError, apperrors.GetErrorCode(err))
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mockDB.ExpectationsWereMet())
		})
	}
}

func TestPasscodeRepository_GetByEmailAndCode(t *testing.T) {
	passcode := &domain.Passcode{
		Email:     "alice@example.com",
		Code:      "482913",
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(domain.PasscodeTTL),
		Used:      false,
	}

	tests := []struct {
		name    string
		setupDB func(pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "record found",
			setupDB: func(mockDB pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "email", "code", "issued_at", "expires_at", "used"}).
					AddRow(passcode.ID, passcode.Email, passcode.Code, passcode.IssuedAt, passcode.ExpiresAt, passcode.Used)
				mockDB.ExpectQuery("SELECT id, email, code, issued_at, expires_at, used FROM passcodes").
					WithArgs("alice@example.com", "482913").
					WillReturnRows(rows)
			},
		},
		{
			name: "no matching record maps to not found",
			setupDB: func(mockDB pgxmock.PgxPoolIface) {
				mockDB.ExpectQuery("SELECT id, email, code, issued_at, expires_at, used FROM passcodes").
					WithArgs("alice@example.com", "482913").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrPasscodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mockDB := createTestPasscodeRepository(t)
			defer mockDB.Close()

			tt.setupDB(mockDB)

			got, err := repo.GetByEmailAndCode(context.Background(), "alice@example.com", "482913")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, passcode.Email, got.Email)
				assert.Equal(t, passcode.Code, got.Code)
			}
			assert.NoError(t, mockDB.ExpectationsWereMet())
		})
	}
}

func TestPasscodeRepository_DeleteByEmail(t *testing.T) {
	repo, mockDB := createTestPasscodeRepository(t)
	defer mockDB.Close()

	mockDB.ExpectExec("DELETE FROM passcodes").
		WithArgs("alice@example.com").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	err := repo.DeleteByEmail(context.Background(), "alice@example.com")

	assert.NoError(t, err)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestPasscodeRepository_MarkUsed(t *testing.T) {
	tests := []struct {
		name    string
		setupDB func(pgxmock.PgxPoolIface)
		wantWon bool
		wantErr bool
	}{
		{
			name: "first consumer wins the conditional update",
			setupDB: func(mockDB pgxmock.PgxPoolIface) {
				mockDB.ExpectExec("UPDATE passcodes").
					WithArgs("alice@example.com", "482913").
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			wantWon: true,
		},
		{
			name: "zero rows affected means another consumer won",
			setupDB: func(mockDB pgxmock.PgxPoolIface) {
				mockDB.ExpectExec("UPDATE passcodes").
					WithArgs("alice@example.com", "482913").
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			wantWon: false,
		},
		{
			name: "database error propagates",
			setupDB: func(mockDB pgxmock.PgxPoolIface) {
				mockDB.ExpectExec("UPDATE passcodes").
					WithArgs("alice@example.com", "482913").
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mockDB := createTestPasscodeRepository(t)
			defer mockDB.Close()

			tt.setupDB(mockDB)

			won, err := repo.MarkUsed(context.Background(), "alice@example.com", "482913")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, apperrors.ErrCodeDatabaseError, apperrors.GetErrorCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantWon, won)
			}
			assert.NoError(t, mockDB.ExpectationsWereMet())
		})
	}
}
