package domain

import "errors"

// Account errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// Passcode errors
var (
	ErrAccountNotFound     = errors.New("no account for email")
	ErrPasscodeNotFound    = errors.New("passcode not found")
	ErrPasscodeExpired     = errors.New("passcode expired")
	ErrPasscodeAlreadyUsed = errors.New("passcode already used")
	ErrPasscodeStorage     = errors.New("passcode storage failed")
	ErrPasscodeDelivery    = errors.New("passcode delivery failed")
)

// Session and identity errors
var (
	ErrUnauthenticated = errors.New("no authenticated session")
	ErrProfileMissing  = errors.New("session has no matching profile")
	ErrSessionRefresh  = errors.New("identity refresh failed")
	ErrSignOutFailed   = errors.New("sign-out failed")
)

// Validation errors
var (
	ErrInvalidEmail = errors.New("invalid email")
	ErrInvalidInput = errors.New("invalid input")
)

// Rate limiting errors
var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)
