package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	pgutil "github.com/mdaeva/registry-server/pkg/database/postgres"
	"github.com/mdaeva/registry-server/pkg/dexadapter"
)

type store struct {
	db *sqlx.DB
}

func New(db *sql.DB) dexadapter.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// ExecuteInTx runs fn in a single DB transaction carried through the context.
func (s *store) ExecuteInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return pgutil.ExecuteTxWithinCtx(ctx, s.db, sql.LevelDefault, fn)
}

// SaveConfig creates or updates the singleton configuration.
func (s *store) SaveConfig(ctx context.Context, record *dexadapter.ConfigRecord) error {
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
func (s *store) GetConfig(ctx context.Context) (*dexadapter.ConfigRecord, error) {
	obj, err := dbGetConfig(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return fromConfigModel(obj), nil
}

// SaveRoute creates or updates the route for a (first, last) mint pair.
func (s *store) SaveRoute(ctx context.Context, record *dexadapter.RouteRecord) error {
	obj, err := toRouteModel(record)
	if err != nil {
		return err
	}

	if err := obj.dbSave(ctx, s.db); err != nil {
		return err
	}

	res, err := fromRouteModel(obj)
	if err != nil {
		return err
	}
	res.CopyTo(record)

	return nil
}

// GetRoute finds the route stored for the unsorted (first, last) mint pair.
func (s *store) GetRoute(ctx context.Context, mintFirst, mintLast string) (*dexadapter.RouteRecord, error) {
	obj, err := dbGetRoute(ctx, s.db, mintFirst, mintLast)
	if err != nil {
		return nil, err
	}
	return fromRouteModel(obj)
}

// GetAllRoutes returns every stored route.
func (s *store) GetAllRoutes(ctx context.Context) ([]*dexadapter.RouteRecord, error) {
	models, err := dbGetAllRoutes(ctx, s.db)
	if err != nil {
		return nil, err
	}

	res := make([]*dexadapter.RouteRecord, len(models))
	for i, model := range models {
		res[i], err = fromRouteModel(model)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// SaveRotation creates or updates the admin rotation state.
func (s *store) SaveRotation(ctx context.Context, record *dexadapter.RotationRecord) error {
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

// GetRotation returns the admin rotation state.
func (s *store) GetRotation(ctx context.Context) (*dexadapter.RotationRecord, error) {
	obj, err := dbGetRotation(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return fromRotationModel(obj), nil
}
