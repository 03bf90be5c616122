package dexadapter

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when no record could be found
	ErrNotFound = errors.New("no records could be found")
)

type Store interface {
	// ExecuteInTx executes fn with a single transactional view of the store.
	// All store calls made inside fn commit or roll back together.
	ExecuteInTx(ctx context.Context, fn func(ctx context.Context) error) error

	// SaveConfig creates or updates the adapter configuration
	SaveConfig(ctx context.Context, record *ConfigRecord) error

	// GetConfig returns the adapter configuration, or ErrNotFound before init
	GetConfig(ctx context.Context) (*ConfigRecord, error)

	// SaveRoute creates or updates the route for record's (first, last)
	// mint pair
	SaveRoute(ctx context.Context, record *RouteRecord) error

	// GetRoute returns the route stored for the unsorted (first, last) mint
	// pair, or ErrNotFound
	GetRoute(ctx context.Context, mintFirst, mintLast string) (*RouteRecord, error)

	// GetAllRoutes returns every stored route, or ErrNotFound when there
	// are none
	GetAllRoutes(ctx context.Context) ([]*RouteRecord, error)

	// SaveRotation creates or updates the admin rotation state
	SaveRotation(ctx context.Context, record *RotationRecord) error

	// GetRotation returns the admin rotation state, or ErrNotFound
	GetRotation(ctx context.Context) (*RotationRecord, error)
}
