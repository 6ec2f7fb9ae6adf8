package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Profile errors
	ErrMsgUserNotFound      = "user not found"
	ErrMsgNicknameTaken     = "nickname already taken"
	ErrMsgInvalidNickname   = "invalid nickname"
	ErrMsgPasswordTooShort  = "password too short"
	ErrMsgInvalidCredential = "invalid nickname or password"

	// Quest errors
	ErrMsgQuestNotFound          = "quest not found"
	ErrMsgQuestLocked            = "quest is locked"
	ErrMsgQuestAlreadyCompleted  = "quest already completed"
	ErrMsgVerificationRequired   = "quest requires verification"
	ErrMsgVerificationNotAllowed = "quest does not require verification"

	// Currency errors
	ErrMsgInsufficientCoins = "insufficient coins"
	ErrMsgInsufficientYC    = "insufficient yc"

	// Ascension errors
	ErrMsgInsufficientInspiration = "insufficient inspiration"
	ErrMsgMaxLevel                = "already at max level"
	ErrMsgAscensionConflict       = "ascension conflict"
	ErrMsgExamRequired            = "ascension requires a verified exam"

	// Shop errors
	ErrMsgItemNotFound = "item not found"
	ErrMsgItemInactive = "item is not available"
	ErrMsgOutOfStock   = "item is out of stock"

	// Invite errors
	ErrMsgInviteNotFound      = "invite not found"
	ErrMsgInviteExpired       = "invite expired"
	ErrMsgInviteTokenMismatch = "token mismatch"
	ErrMsgInviteNotLinked     = "key not linked to user"
	ErrMsgLoginLimitExceeded  = "daily login limit exceeded"

	// Verification errors
	ErrMsgArtifactNotFound        = "verification not found"
	ErrMsgVerificationExpired     = "verification expired"
	ErrMsgVerificationCancelled   = "verification cancelled"
	ErrMsgArtifactAlreadyResolved = "verification already resolved"
	ErrMsgArtifactNotVerified     = "verification not completed"
	ErrMsgArtifactConsumed        = "verification already used"
	ErrMsgArtifactMismatch        = "verification does not match request"

	// Admin errors
	ErrMsgDuplicateKey = "duplicate key"

	// Database/System errors
	ErrMsgConnectionTimeout = "connection timeout"
	ErrMsgDatabaseError     = "database error"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Profile errors
	ErrUserNotFound       = errors.New(ErrMsgUserNotFound)
	ErrNicknameTaken      = errors.New(ErrMsgNicknameTaken)
	ErrInvalidNickname    = errors.New(ErrMsgInvalidNickname)
	ErrPasswordTooShort   = errors.New(ErrMsgPasswordTooShort)
	ErrInvalidCredentials = errors.New(ErrMsgInvalidCredential)

	// Quest errors
	ErrQuestNotFound          = errors.New(ErrMsgQuestNotFound)
	ErrQuestLocked            = errors.New(ErrMsgQuestLocked)
	ErrQuestAlreadyCompleted  = errors.New(ErrMsgQuestAlreadyCompleted)
	ErrVerificationRequired   = errors.New(ErrMsgVerificationRequired)
	ErrVerificationNotAllowed = errors.New(ErrMsgVerificationNotAllowed)

	// Currency errors
	ErrInsufficientCoins = errors.New(ErrMsgInsufficientCoins)
	ErrInsufficientYC    = errors.New(ErrMsgInsufficientYC)

	// Ascension errors
	ErrInsufficientInspiration = errors.New(ErrMsgInsufficientInspiration)
	ErrMaxLevel                = errors.New(ErrMsgMaxLevel)
	ErrAscensionConflict       = errors.New(ErrMsgAscensionConflict)
	ErrExamRequired            = errors.New(ErrMsgExamRequired)

	// Shop errors
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)
	ErrItemInactive = errors.New(ErrMsgItemInactive)
	ErrOutOfStock   = errors.New(ErrMsgOutOfStock)

	// Invite errors
	ErrInviteNotFound      = errors.New(ErrMsgInviteNotFound)
	ErrInviteExpired       = errors.New(ErrMsgInviteExpired)
	ErrInviteTokenMismatch = errors.New(ErrMsgInviteTokenMismatch)
	ErrInviteNotLinked     = errors.New(ErrMsgInviteNotLinked)
	ErrLoginLimitExceeded  = errors.New(ErrMsgLoginLimitExceeded)

	// Verification errors
	ErrArtifactNotFound        = errors.New(ErrMsgArtifactNotFound)
	ErrVerificationExpired     = errors.New(ErrMsgVerificationExpired)
	ErrVerificationCancelled   = errors.New(ErrMsgVerificationCancelled)
	ErrArtifactAlreadyResolved = errors.New(ErrMsgArtifactAlreadyResolved)
	ErrArtifactNotVerified     = errors.New(ErrMsgArtifactNotVerified)
	ErrArtifactConsumed        = errors.New(ErrMsgArtifactConsumed)
	ErrArtifactMismatch        = errors.New(ErrMsgArtifactMismatch)

	// Admin errors
	ErrDuplicateKey = errors.New(ErrMsgDuplicateKey)

	// Database/System errors
	ErrConnectionTimeout = errors.New(ErrMsgConnectionTimeout)
	ErrDatabaseError     = errors.New(ErrMsgDatabaseError)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// ShortfallError reports how much inspiration is missing for an ascension.
// It matches ErrInsufficientInspiration with errors.Is.
type ShortfallError struct {
	Level     int
	Required  int
	Current   int
	Shortfall int
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("%s: level %d needs %d, have %d (short %d)",
		ErrMsgInsufficientInspiration, e.Level, e.Required, e.Current, e.Shortfall)
}

func (e *ShortfallError) Unwrap() error {
	return ErrInsufficientInspiration
}

// LoginLimitError carries the time at which the daily login counter resets.
type LoginLimitError struct {
	Limit   int
	ResetAt int64 // unix seconds
}

func (e *LoginLimitError) Error() string {
	return fmt.Sprintf("%s: limit %d", ErrMsgLoginLimitExceeded, e.Limit)
}

func (e *LoginLimitError) Unwrap() error {
	return ErrLoginLimitExceeded
}
