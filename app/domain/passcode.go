package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PasscodeTTL is how long an issued passcode stays valid.
const PasscodeTTL = 10 * time.Minute

// PasscodeLength is the number of digits in a passcode.
const PasscodeLength = 6

// codeSpan covers the 6-digit range [100000, 999999].
var codeSpan = big.NewInt(900000)

// Passcode represents a one-time passcode issued to an email address.
// At most one unused, unexpired passcode may exist per email; issuing a
// new one deletes all prior records for that address.
type Passcode struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
}

// NewPasscode creates a passcode for the given email with a freshly
// generated code and a 10-minute expiry.
func NewPasscode(email string) (*Passcode, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	code, err := GeneratePasscode()
	if err != nil {
		return nil, err
	}

	now := time.Now()

	return &Passcode{
		ID:        uuid.New(),
		Email:     normalized,
		Code:      code,
		IssuedAt:  now,
		ExpiresAt: now.Add(PasscodeTTL),
		Used:      false,
	}, nil
}

// GeneratePasscode returns a 6-digit numeric code drawn uniformly from
// [100000, 999999] using a cryptographically secure source.
func GeneratePasscode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpan)
	if err != nil {
		return "", fmt.Errorf("failed to generate passcode: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// NormalizeEmail validates the address and lowers its case so that the
// email acts as a stable correlation key.
func NormalizeEmail(email string) (string, error) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidEmail, err)
	}
	return strings.ToLower(trimmed), nil
}

// IsExpired reports whether the passcode has expired at the given time.
// Expiry is inclusive: a code is dead from expires_at onward.
func (p *Passcode) IsExpired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}
