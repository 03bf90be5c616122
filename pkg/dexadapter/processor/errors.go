package processor

import (
	"github.com/pkg/errors"

	"github.com/mdaeva/registry-server/pkg/rotation"
)

var (
	// ErrNotInitialized indicates the adapter configuration was never created.
	ErrNotInitialized = errors.New("adapter is not initialized")

	// ErrAlreadyInitialized indicates init was executed twice.
	ErrAlreadyInitialized = errors.New("adapter is already initialized")

	// ErrPaused indicates the global kill switch is on.
	ErrPaused = errors.New("adapter is paused")

	// ErrUnauthorized indicates the sender may not perform the operation.
	ErrUnauthorized = rotation.ErrUnauthorized

	// ErrRouteNotFound indicates no route is stored for the mint pair.
	ErrRouteNotFound = errors.New("no route for the mint pair")

	// ErrAccountCountMismatch indicates the remaining accounts do not line
	// up with the stored route: wrong length, or a hop whose accounts name
	// a different output token than the route expects.
	ErrAccountCountMismatch = errors.New("remaining accounts do not match the stored route")

	// ErrSlippageExceeded indicates the end-to-end output fell below the
	// caller's minimum.
	ErrSlippageExceeded = errors.New("output amount below the requested minimum")

	// ErrRegistryNotLinked indicates swap-and-activate was attempted while
	// the adapter has no registry configured.
	ErrRegistryNotLinked = errors.New("adapter is not linked to a registry")

	// ErrNoPendingRotation indicates confirm was called without a request.
	ErrNoPendingRotation = rotation.ErrNoPendingRotation

	// ErrRotationExpired indicates the pending request lapsed.
	ErrRotationExpired = rotation.ErrRotationExpired
)
