package registry

import (
	"context"
	"errors"

	"github.com/mdaeva/registry-server/pkg/database/query"
)

var ErrNotFound = errors.New("no records could be found")

type Store interface {
	// ExecuteInTx runs fn atomically: every store mutation made inside fn is
	// kept only if fn returns nil.
	ExecuteInTx(ctx context.Context, fn func(ctx context.Context) error) error

	// SaveConfig creates or updates the singleton configuration.
	SaveConfig(ctx context.Context, record *ConfigRecord) error

	// GetConfig returns the singleton configuration.
	//
	// Returns ErrNotFound if the program was never initialized.
	GetConfig(ctx context.Context) (*ConfigRecord, error)

	// GetLastUserId returns the highest allocated user id, or zero when no
	// id was ever allocated.
	GetLastUserId(ctx context.Context) (uint32, error)

	// SaveLastUserId persists the id counter. The counter only ever grows.
	SaveLastUserId(ctx context.Context, value uint32) error

	// SaveIdentity creates or updates an identity keyed by its user id.
	SaveIdentity(ctx context.Context, record *IdentityRecord) error

	// GetIdentityByOwner finds the identity currently mapped to a wallet.
	//
	// Returns ErrNotFound if no record is found.
	GetIdentityByOwner(ctx context.Context, owner string) (*IdentityRecord, error)

	// GetIdentityByUserId finds the identity for a numeric id.
	//
	// Returns ErrNotFound if no record is found.
	GetIdentityByUserId(ctx context.Context, userId uint32) (*IdentityRecord, error)

	// GetAllIdentities pages through every allocated identity by user id.
	//
	// Returns ErrNotFound if no records are found.
	GetAllIdentities(ctx context.Context, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*IdentityRecord, error)

	// SaveData creates or updates the payload for a user id.
	SaveData(ctx context.Context, record *DataRecord) error

	// GetDataByUserId finds the payload for a numeric id.
	//
	// Returns ErrNotFound if no record is found, including after close.
	GetDataByUserId(ctx context.Context, userId uint32) (*DataRecord, error)

	// DeleteDataByUserId removes the payload for a numeric id. Identity and
	// rotation records are unaffected.
	DeleteDataByUserId(ctx context.Context, userId uint32) error

	// SaveRotation creates or updates a rotation state by key.
	SaveRotation(ctx context.Context, record *RotationRecord) error

	// GetRotation finds the rotation state for a key.
	//
	// Returns ErrNotFound if no record is found.
	GetRotation(ctx context.Context, key uint32) (*RotationRecord, error)
}
