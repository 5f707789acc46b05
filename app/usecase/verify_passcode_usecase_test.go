package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"willvault-auth/app/domain"
	mock_port "willvault-auth/app/mocks"
	"willvault-auth/app/utils/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func livePasscode(email, code string, issuedAt time.Time) *domain.Passcode {
	return &domain.Passcode{
		ID:        uuid.New(),
		Email:     email,
		Code:      code,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(domain.PasscodeTTL),
	}
}

func TestVerifyPasscodeUseCase_Verify(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		email      string
		code       string
		setupMocks func(*mock_port.MockPasscodeRepository)
		wantErr    error
	}{
		{
			name:  "correct unexpired code verifies and is consumed",
			email: "alice@example.com",
			code:  "482913",
			setupMocks: func(repo *mock_port.MockPasscodeRepository) {
				repo.EXPECT().
					GetByEmailAndCode(gomock.Any(), "alice@example.com", "482913").
					Return(livePasscode("alice@example.com", "482913", now), nil)
				repo.EXPECT().
					MarkUsed(gomock.Any(), "alice@example.com", "482913").
					Return(true, nil)
			},
		},
		{
			name:  "unknown email and code pair",
			email: "alice@example.com",
			code:  "000000",
			setupMocks: func(repo *mock_port.MockPasscodeRepository) {
				repo.EXPECT().
					GetByEmailAndCode(gomock.Any(), "alice@example.com", "000000").
					Return(nil, domain.ErrPasscodeNotFound)
			},
			wantErr: domain.ErrPasscodeNotFound,
		},
		{
			name:  "expired code",
			email: "alice@example.com",
			code:  "482913",
			setupMocks: func(repo *mock_port.MockPasscodeRepository) {
				repo.EXPECT().
					GetByEmailAndCode(gomock.Any(), "alice@example.com", "482913").
					Return(livePasscode("alice@example.com", "482913", now.Add(-domain.PasscodeTTL)), nil)
			},
			wantErr: domain.ErrPasscodeExpired,
		},
		{
			name:  "already consumed code",
			email: "alice@example.com",
			code:  "482913",
			setupMocks: func(repo *mock_port.MockPasscodeRepository) {
				p := livePasscode("alice@example.com", "482913", now)
				p.Used = true
				repo.EXPECT().
					GetByEmailAndCode(gomock.Any(), "alice@example.com", "482913").
					Return(p, nil)
			},
			wantErr: domain.ErrPasscodeAlreadyUsed,
		},
		{
			name:  "losing the consume race maps to already used",
			email: "alice@example.com",
			code:  "482913",
			setupMocks: func(repo *mock_port.MockPasscodeRepository) {
				repo.EXPECT().
					GetByEmailAndCode(gomock.Any(), "alice@example.com", "482913").
					Return(livePasscode("alice@example.com", "482913", now), nil)
				// Another verification flipped used first.
				repo.EXPECT().
					MarkUsed(gomock.Any(), "alice@example.com", "482913").
					Return(false, nil)
			},
			wantErr: domain.ErrPasscodeAlreadyUsed,
		},
		{
			name:  "storage failure during lookup propagates",
			email: "alice@example.com",
			code:  "482913",
			setupMocks: func(repo *mock_port.MockPasscodeRepository) {
				repo.EXPECT().
					GetByEmailAndCode(gomock.Any(), "alice@example.com", "482913").
					Return(nil, errors.New("connection reset"))
			},
			wantErr: nil, // wrapped plain error, asserted below
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mock_port.NewMockPasscodeRepository(ctrl)
			if tt.setupMocks != nil {
				tt.setupMocks(mockRepo)
			}

			testLogger, err := logger.New("debug")
			require.NoError(t, err)

			uc := NewVerifyPasscodeUseCase(mockRepo, testLogger)
			err = uc.Verify(context.Background(), tt.email, tt.code)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.name == "storage failure during lookup propagates":
				assert.Error(t, err)
				assert.NotErrorIs(t, err, domain.ErrPasscodeNotFound)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestVerifyPasscodeUseCase_Verify_ExpiryBoundary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	issuedAt := time.Now()
	mockRepo := mock_port.NewMockPasscodeRepository(ctrl)
	mockRepo.EXPECT().
		GetByEmailAndCode(gomock.Any(), "alice@example.com", "482913").
		Return(livePasscode("alice@example.com", "482913", issuedAt), nil)

	testLogger, err := logger.New("debug")
	require.NoError(t, err)

	uc := NewVerifyPasscodeUseCase(mockRepo, testLogger)

	// Pin the clock to exactly issued+10m: the code must already be dead.
	uc.now = func() time.Time { return issuedAt.Add(domain.PasscodeTTL) }

	err = uc.Verify(context.Background(), "alice@example.com", "482913")
	assert.ErrorIs(t, err, domain.ErrPasscodeExpired)
}
