package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	pgutil "github.com/mdaeva/registry-server/pkg/database/postgres"
	"github.com/mdaeva/registry-server/pkg/dexadapter"
)

const (
	configTableName   = "dexadapter__config"
	routeTableName    = "dexadapter__route"
	rotationTableName = "dexadapter__rotation_state"
)

type configModel struct {
	Id              sql.NullInt64  `db:"id"`
	Admin           string         `db:"admin"`
	Dex             string         `db:"dex"`
	Registry        sql.NullString `db:"registry"`
	IsPaused        bool           `db:"is_paused"`
	RotationTimeout uint32         `db:"rotation_timeout"`
}

func toConfigModel(obj *dexadapter.ConfigRecord) (*configModel, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	var registry sql.NullString
	if obj.Registry != nil {
		registry = sql.NullString{String: *obj.Registry, Valid: true}
	}

	return &configModel{
		Id:              sql.NullInt64{Int64: int64(obj.Id), Valid: true},
		Admin:           obj.Admin,
		Dex:             obj.Dex,
		Registry:        registry,
		IsPaused:        obj.IsPaused,
		RotationTimeout: obj.RotationTimeout,
	}, nil
}

func fromConfigModel(obj *configModel) *dexadapter.ConfigRecord {
	res := &dexadapter.ConfigRecord{
		Id:              uint64(obj.Id.Int64),
		Admin:           obj.Admin,
		Dex:             obj.Dex,
		IsPaused:        obj.IsPaused,
		RotationTimeout: obj.RotationTimeout,
	}
	if obj.Registry.Valid {
		res.Registry = &obj.Registry.String
	}
	return res
}

func (m *configModel) dbSave(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + configTableName + `
			(singleton, admin, dex, registry, is_paused, rotation_timeout)
			VALUES (TRUE,$1,$2,$3,$4,$5)
			ON CONFLICT (singleton)
			DO UPDATE
				SET admin = $1, dex = $2, registry = $3, is_paused = $4, rotation_timeout = $5
			RETURNING
				id, admin, dex, registry, is_paused, rotation_timeout`

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.Admin,
			m.Dex,
			m.Registry,
			m.IsPaused,
			m.RotationTimeout,
		).StructScan(m)

		return pgutil.CheckNoRows(err, dexadapter.ErrNotFound)
	})
}

func dbGetConfig(ctx context.Context, db *sqlx.DB) (*configModel, error) {
	res := &configModel{}

	query := `SELECT id, admin, dex, registry, is_paused, rotation_timeout
		FROM ` + configTableName + `
		LIMIT 1`

	err := db.GetContext(ctx, res, query)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, dexadapter.ErrNotFound)
	}
	return res, nil
}

type routeModel struct {
	Id        sql.NullInt64 `db:"id"`
	MintFirst string        `db:"mint_first"`
	MintLast  string        `db:"mint_last"`
	Hops      []byte        `db:"hops"`
}

type routeHopJson struct {
	AmmIndex uint16 `json:"amm_index"`
	TokenOut string `json:"token_out"`
}

func toRouteModel(obj *dexadapter.RouteRecord) (*routeModel, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	hops := make([]routeHopJson, len(obj.Hops))
	for i, hop := range obj.Hops {
		hops[i] = routeHopJson{
			AmmIndex: hop.AmmIndex,
			TokenOut: hop.TokenOut,
		}
	}
	marshalled, err := json.Marshal(hops)
	if err != nil {
		return nil, err
	}

	return &routeModel{
		Id:        sql.NullInt64{Int64: int64(obj.Id), Valid: true},
		MintFirst: obj.MintFirst,
		MintLast:  obj.MintLast,
		Hops:      marshalled,
	}, nil
}

func fromRouteModel(obj *routeModel) (*dexadapter.RouteRecord, error) {
	var hops []routeHopJson
	if err := json.Unmarshal(obj.Hops, &hops); err != nil {
		return nil, err
	}

	res := &dexadapter.RouteRecord{
		Id:        uint64(obj.Id.Int64),
		MintFirst: obj.MintFirst,
		MintLast:  obj.MintLast,
		Hops:      make([]dexadapter.RouteHop, len(hops)),
	}
	for i, hop := range hops {
		res.Hops[i] = dexadapter.RouteHop{
			AmmIndex: hop.AmmIndex,
			TokenOut: hop.TokenOut,
		}
	}
	return res, nil
}

func (m *routeModel) dbSave(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + routeTableName + `
			(mint_first, mint_last, hops)
			VALUES ($1,$2,$3)
			ON CONFLICT (mint_first, mint_last)
			DO UPDATE
				SET hops = $3
			RETURNING
				id, mint_first, mint_last, hops`

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.MintFirst,
			m.MintLast,
			m.Hops,
		).StructScan(m)

		return pgutil.CheckNoRows(err, dexadapter.ErrNotFound)
	})
}

func dbGetRoute(ctx context.Context, db *sqlx.DB, mintFirst, mintLast string) (*routeModel, error) {
	res := &routeModel{}

	query := `SELECT id, mint_first, mint_last, hops
		FROM ` + routeTableName + `
		WHERE mint_first = $1 AND mint_last = $2
		LIMIT 1`

	err := db.GetContext(ctx, res, query, mintFirst, mintLast)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, dexadapter.ErrNotFound)
	}
	return res, nil
}

func dbGetAllRoutes(ctx context.Context, db *sqlx.DB) ([]*routeModel, error) {
	res := []*routeModel{}

	query := `SELECT id, mint_first, mint_last, hops
		FROM ` + routeTableName + `
		ORDER BY id ASC`

	err := db.SelectContext(ctx, &res, query)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, dexadapter.ErrNotFound)
	}
	if len(res) == 0 {
		return nil, dexadapter.ErrNotFound
	}
	return res, nil
}

type rotationModel struct {
	Id             sql.NullInt64  `db:"id"`
	Owner          string         `db:"owner"`
	NewOwner       sql.NullString `db:"new_owner"`
	ExpirationDate uint64         `db:"expiration_date"`
}

func toRotationModel(obj *dexadapter.RotationRecord) (*rotationModel, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	var newOwner sql.NullString
	if obj.NewOwner != nil {
		newOwner = sql.NullString{String: *obj.NewOwner, Valid: true}
	}

	return &rotationModel{
		Id:             sql.NullInt64{Int64: int64(obj.Id), Valid: true},
		Owner:          obj.Owner,
		NewOwner:       newOwner,
		ExpirationDate: obj.ExpirationDate,
	}, nil
}

func fromRotationModel(obj *rotationModel) *dexadapter.RotationRecord {
	res := &dexadapter.RotationRecord{
		Id: uint64(obj.Id.Int64),
	}
	res.Owner = obj.Owner
	if obj.NewOwner.Valid {
		res.NewOwner = &obj.NewOwner.String
	}
	res.ExpirationDate = obj.ExpirationDate
	return res
}

func (m *rotationModel) dbSave(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + rotationTableName + `
			(singleton, owner, new_owner, expiration_date)
			VALUES (TRUE,$1,$2,$3)
			ON CONFLICT (singleton)
			DO UPDATE
				SET owner = $1, new_owner = $2, expiration_date = $3
			RETURNING
				id, owner, new_owner, expiration_date`

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.Owner,
			m.NewOwner,
			m.ExpirationDate,
		).StructScan(m)

		return pgutil.CheckNoRows(err, dexadapter.ErrNotFound)
	})
}

func dbGetRotation(ctx context.Context, db *sqlx.DB) (*rotationModel, error) {
	res := &rotationModel{}

	query := `SELECT id, owner, new_owner, expiration_date
		FROM ` + rotationTableName + `
		LIMIT 1`

	err := db.GetContext(ctx, res, query)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, dexadapter.ErrNotFound)
	}
	return res, nil
}
