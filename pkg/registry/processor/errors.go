package processor

import (
	"github.com/pkg/errors"

	"github.com/mdaeva/registry-server/pkg/rotation"
)

var (
	// ErrNotInitialized indicates the program configuration was never created.
	ErrNotInitialized = errors.New("program is not initialized")

	// ErrAlreadyInitialized indicates init was executed twice.
	ErrAlreadyInitialized = errors.New("program is already initialized")

	// ErrPaused indicates the global kill switch is on.
	ErrPaused = errors.New("program is paused")

	// ErrUnauthorized indicates the sender may not perform the operation.
	ErrUnauthorized = rotation.ErrUnauthorized

	// ErrUserNotFound indicates no identity exists for the referenced wallet
	// or numeric id.
	ErrUserNotFound = errors.New("user not found")

	// ErrAccountAlreadyOpen indicates the wallet already has an open data
	// account.
	ErrAccountAlreadyOpen = errors.New("account is already open")

	// ErrAccountNotOpen indicates the operation needs an open data account.
	ErrAccountNotOpen = errors.New("account is not open")

	// ErrWalletAlreadyRegistered indicates the wallet already anchors an
	// identity and cannot take over another one.
	ErrWalletAlreadyRegistered = errors.New("wallet already has a registered identity")

	// ErrAlreadyActivated indicates the one-time fee was already paid.
	ErrAlreadyActivated = errors.New("account is already activated")

	// ErrNotActivated indicates the account has not paid the one-time fee.
	ErrNotActivated = errors.New("account is not activated")

	// ErrOutOfRange indicates a payload size outside the configured bounds.
	ErrOutOfRange = errors.New("data size is out of range")

	// ErrNoPendingRotation indicates confirm was called without a request.
	ErrNoPendingRotation = rotation.ErrNoPendingRotation

	// ErrRotationExpired indicates the pending request lapsed.
	ErrRotationExpired = rotation.ErrRotationExpired
)
