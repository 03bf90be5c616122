package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	pgutil "github.com/mdaeva/registry-server/pkg/database/postgres"
	"github.com/mdaeva/registry-server/pkg/database/query"
	"github.com/mdaeva/registry-server/pkg/registry"
)

type store struct {
	db *sqlx.DB
}

func New(db *sql.DB) registry.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// ExecuteInTx runs fn in a single DB transaction carried through the context.
func (s *store) ExecuteInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return pgutil.ExecuteTxWithinCtx(ctx, s.db, sql.LevelDefault, fn)
}

// SaveConfig creates or updates the singleton configuration.
func (s *store) SaveConfig(ctx context.Context, record *registry.ConfigRecord) error {
	obj, err := toConfigModel(record)
	if err != nil {
		return err
	}

	if err := obj.dbSave(ctx, s.db); err != nil {
		return err
	}

	fromConfigModel(obj).CopyTo(record)

	return nil
}

// GetConfig returns the singleton configuration.
func (s *store) GetConfig(ctx context.Context) (*registry.ConfigRecord, error) {
	obj, err := dbGetConfig(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return fromConfigModel(obj), nil
}

// GetLastUserId returns the highest allocated user id.
func (s *store) GetLastUserId(ctx context.Context) (uint32, error) {
	return dbGetLastUserId(ctx, s.db)
}

// SaveLastUserId persists the id counter.
func (s *store) SaveLastUserId(ctx context.Context, value uint32) error {
	return dbSaveLastUserId(ctx, s.db, value)
}

// SaveIdentity creates or updates an identity keyed by its user id.
func (s *store) SaveIdentity(ctx context.Context, record *registry.IdentityRecord) error {
	obj, err := toIdentityModel(record)
	if err != nil {
		return err
	}

	if err := obj.dbSave(ctx, s.db); err != nil {
		return err
	}

	fromIdentityModel(obj).CopyTo(record)

	return nil
}

// GetIdentityByOwner finds the identity currently mapped to a wallet.
func (s *store) GetIdentityByOwner(ctx context.Context, owner string) (*registry.IdentityRecord, error) {
	obj, err := dbGetIdentityByOwner(ctx, s.db, owner)
	if err != nil {
		return nil, err
	}
	return fromIdentityModel(obj), nil
}

// GetIdentityByUserId finds the identity for a numeric id.
func (s *store) GetIdentityByUserId(ctx context.Context, userId uint32) (*registry.IdentityRecord, error) {
	obj, err := dbGetIdentityByUserId(ctx, s.db, userId)
	if err != nil {
		return nil, err
	}
	return fromIdentityModel(obj), nil
}

// GetAllIdentities pages through every allocated identity by user id.
func (s *store) GetAllIdentities(ctx context.Context, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*registry.IdentityRecord, error) {
	models, err := dbGetAllIdentities(ctx, s.db, cursor, limit, direction)
	if err != nil {
		return nil, err
	}

	res := make([]*registry.IdentityRecord, len(models))
	for i, model := range models {
		res[i] = fromIdentityModel(model)
	}
	return res, nil
}

// SaveData creates or updates the payload for a user id.
func (s *store) SaveData(ctx context.Context, record *registry.DataRecord) error {
	obj, err := toDataModel(record)
	if err != nil {
		return err
	}

	if err := obj.dbSave(ctx, s.db); err != nil {
		return err
	}

	fromDataModel(obj).CopyTo(record)

	return nil
}

// GetDataByUserId finds the payload for a numeric id.
func (s *store) GetDataByUserId(ctx context.Context, userId uint32) (*registry.DataRecord, error) {
	obj, err := dbGetDataByUserId(ctx, s.db, userId)
	if err != nil {
		return nil, err
	}
	return fromDataModel(obj), nil
}

// DeleteDataByUserId removes the payload for a numeric id.
func (s *store) DeleteDataByUserId(ctx context.Context, userId uint32) error {
	return dbDeleteDataByUserId(ctx, s.db, userId)
}

// SaveRotation creates or updates a rotation state by key.
func (s *store) SaveRotation(ctx context.Context, record *registry.RotationRecord) error {
	obj, err := toRotationModel(record)
	if err != nil {
		return err
	}

	if err := obj.dbSave(ctx, s.db); err != nil {
		return err
	}

	fromRotationModel(obj).CopyTo(record)

	return nil
}

// GetRotation finds the rotation state for a key.
func (s *store) GetRotation(ctx context.Context, key uint32) (*registry.RotationRecord, error) {
	obj, err := dbGetRotation(ctx, s.db, key)
	if err != nil {
		return nil, err
	}
	return fromRotationModel(obj), nil
}
