package postgres

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/jmoiron/sqlx"

	pgutil "github.com/mdaeva/registry-server/pkg/database/postgres"
	q "github.com/mdaeva/registry-server/pkg/database/query"
	"github.com/mdaeva/registry-server/pkg/registry"
)

const (
	configTableName   = "registry__config"
	counterTableName  = "registry__user_counter"
	identityTableName = "registry__user_identity"
	dataTableName     = "registry__user_data"
	rotationTableName = "registry__rotation_state"
)

type configModel struct {
	Id              sql.NullInt64 `db:"id"`
	Admin           string        `db:"admin"`
	IsPaused        bool          `db:"is_paused"`
	RotationTimeout uint32        `db:"rotation_timeout"`
	FeeAmount       uint64        `db:"fee_amount"`
	FeeAsset        string        `db:"fee_asset"`
	MinDataSize     uint32        `db:"min_data_size"`
	MaxDataSize     uint32        `db:"max_data_size"`
}

func toConfigModel(obj *registry.ConfigRecord) (*configModel, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	return &configModel{
		Id:              sql.NullInt64{Int64: int64(obj.Id), Valid: true},
		Admin:           obj.Admin,
		IsPaused:        obj.IsPaused,
		RotationTimeout: obj.RotationTimeout,
		FeeAmount:       obj.FeeAmount,
		FeeAsset:        obj.FeeAsset,
		MinDataSize:     obj.MinDataSize,
		MaxDataSize:     obj.MaxDataSize,
	}, nil
}

func fromConfigModel(obj *configModel) *registry.ConfigRecord {
	return &registry.ConfigRecord{
		Id:              uint64(obj.Id.Int64),
		Admin:           obj.Admin,
		IsPaused:        obj.IsPaused,
		RotationTimeout: obj.RotationTimeout,
		FeeAmount:       obj.FeeAmount,
		FeeAsset:        obj.FeeAsset,
		MinDataSize:     obj.MinDataSize,
		MaxDataSize:     obj.MaxDataSize,
	}
}

func (m *configModel) dbSave(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + configTableName + `
			(singleton, admin, is_paused, rotation_timeout, fee_amount, fee_asset, min_data_size, max_data_size)
			VALUES (TRUE,$1,$2,$3,$4,$5,$6,$7)
			ON CONFLICT (singleton)
			DO UPDATE
				SET admin = $1, is_paused = $2, rotation_timeout = $3, fee_amount = $4, fee_asset = $5, min_data_size = $6, max_data_size = $7
			RETURNING
				id, admin, is_paused, rotation_timeout, fee_amount, fee_asset, min_data_size, max_data_size`

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.Admin,
			m.IsPaused,
			m.RotationTimeout,
			m.FeeAmount,
			m.FeeAsset,
			m.MinDataSize,
			m.MaxDataSize,
		).StructScan(m)

		return pgutil.CheckNoRows(err, registry.ErrNotFound)
	})
}

func dbGetConfig(ctx context.Context, db *sqlx.DB) (*configModel, error) {
	res := &configModel{}

	query := `SELECT id, admin, is_paused, rotation_timeout, fee_amount, fee_asset, min_data_size, max_data_size
		FROM ` + configTableName + `
		LIMIT 1`

	err := db.GetContext(ctx, res, query)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, registry.ErrNotFound)
	}
	return res, nil
}

func dbGetLastUserId(ctx context.Context, db *sqlx.DB) (uint32, error) {
	var res uint32

	query := `SELECT last_user_id FROM ` + counterTableName + ` LIMIT 1`

	err := db.GetContext(ctx, &res, query)
	if err != nil {
		if pgutil.IsNoRows(err) {
			return 0, nil
		}
		return 0, err
	}
	return res, nil
}

func dbSaveLastUserId(ctx context.Context, db *sqlx.DB, value uint32) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + counterTableName + `
			(singleton, last_user_id)
			VALUES (TRUE,$1)
			ON CONFLICT (singleton)
			DO UPDATE
				SET last_user_id = $1`

		_, err := tx.ExecContext(ctx, query, value)
		return err
	})
}

type identityModel struct {
	Id          sql.NullInt64 `db:"id"`
	Owner       string        `db:"owner"`
	UserId      uint32        `db:"user_id"`
	IsOpen      bool          `db:"is_open"`
	IsActivated bool          `db:"is_activated"`
}

func toIdentityModel(obj *registry.IdentityRecord) (*identityModel, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	return &identityModel{
		Id:          sql.NullInt64{Int64: int64(obj.Id), Valid: true},
		Owner:       obj.Owner,
		UserId:      obj.UserId,
		IsOpen:      obj.IsOpen,
		IsActivated: obj.IsActivated,
	}, nil
}

func fromIdentityModel(obj *identityModel) *registry.IdentityRecord {
	return &registry.IdentityRecord{
		Id:          uint64(obj.Id.Int64),
		Owner:       obj.Owner,
		UserId:      obj.UserId,
		IsOpen:      obj.IsOpen,
		IsActivated: obj.IsActivated,
	}
}

func (m *identityModel) dbSave(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + identityTableName + `
			(owner, user_id, is_open, is_activated)
			VALUES ($1,$2,$3,$4)
			ON CONFLICT (user_id)
			DO UPDATE
				SET owner = $1, is_open = $3, is_activated = $4
			RETURNING
				id, owner, user_id, is_open, is_activated`

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.Owner,
			m.UserId,
			m.IsOpen,
			m.IsActivated,
		).StructScan(m)

		return pgutil.CheckNoRows(err, registry.ErrNotFound)
	})
}

func dbGetIdentityByOwner(ctx context.Context, db *sqlx.DB, owner string) (*identityModel, error) {
	res := &identityModel{}

	query := `SELECT id, owner, user_id, is_open, is_activated
		FROM ` + identityTableName + `
		WHERE owner = $1
		LIMIT 1`

	err := db.GetContext(ctx, res, query, owner)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, registry.ErrNotFound)
	}
	return res, nil
}

func dbGetIdentityByUserId(ctx context.Context, db *sqlx.DB, userId uint32) (*identityModel, error) {
	res := &identityModel{}

	query := `SELECT id, owner, user_id, is_open, is_activated
		FROM ` + identityTableName + `
		WHERE user_id = $1
		LIMIT 1`

	err := db.GetContext(ctx, res, query, userId)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, registry.ErrNotFound)
	}
	return res, nil
}

// Pages on user_id rather than the row id so cursors line up with the
// enumeration bounds exposed by the counter.
func dbGetAllIdentities(ctx context.Context, db *sqlx.DB, cursor q.Cursor, limit uint64, direction q.Ordering) ([]*identityModel, error) {
	res := []*identityModel{}

	query := `SELECT id, owner, user_id, is_open, is_activated
		FROM ` + identityTableName + `
		WHERE TRUE`

	opts := []interface{}{}

	if len(cursor) > 0 {
		v := strconv.Itoa(len(opts) + 1)
		if direction == q.Ascending {
			query += ` AND user_id > $` + v
		} else {
			query += ` AND user_id < $` + v
		}
		opts = append(opts, cursor.ToUint64())
	}

	if direction == q.Ascending {
		query += ` ORDER BY user_id ASC`
	} else {
		query += ` ORDER BY user_id DESC`
	}

	if limit > 0 {
		v := strconv.Itoa(len(opts) + 1)
		query += ` LIMIT $` + v
		opts = append(opts, limit)
	}

	err := db.SelectContext(ctx, &res, query, opts...)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, registry.ErrNotFound)
	}
	if len(res) == 0 {
		return nil, registry.ErrNotFound
	}
	return res, nil
}

type dataModel struct {
	Id      sql.NullInt64 `db:"id"`
	UserId  uint32        `db:"user_id"`
	Data    string        `db:"data"`
	Nonce   uint64        `db:"nonce"`
	MaxSize uint32        `db:"max_size"`
}

func toDataModel(obj *registry.DataRecord) (*dataModel, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	return &dataModel{
		Id:      sql.NullInt64{Int64: int64(obj.Id), Valid: true},
		UserId:  obj.UserId,
		Data:    obj.Data,
		Nonce:   obj.Nonce,
		MaxSize: obj.MaxSize,
	}, nil
}

func fromDataModel(obj *dataModel) *registry.DataRecord {
	return &registry.DataRecord{
		Id:      uint64(obj.Id.Int64),
		UserId:  obj.UserId,
		Data:    obj.Data,
		Nonce:   obj.Nonce,
		MaxSize: obj.MaxSize,
	}
}

func (m *dataModel) dbSave(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + dataTableName + `
			(user_id, data, nonce, max_size)
			VALUES ($1,$2,$3,$4)
			ON CONFLICT (user_id)
			DO UPDATE
				SET data = $2, nonce = $3, max_size = $4
			RETURNING
				id, user_id, data, nonce, max_size`

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.UserId,
			m.Data,
			m.Nonce,
			m.MaxSize,
		).StructScan(m)

		return pgutil.CheckNoRows(err, registry.ErrNotFound)
	})
}

func dbGetDataByUserId(ctx context.Context, db *sqlx.DB, userId uint32) (*dataModel, error) {
	res := &dataModel{}

	query := `SELECT id, user_id, data, nonce, max_size
		FROM ` + dataTableName + `
		WHERE user_id = $1
		LIMIT 1`

	err := db.GetContext(ctx, res, query, userId)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, registry.ErrNotFound)
	}
	return res, nil
}

func dbDeleteDataByUserId(ctx context.Context, db *sqlx.DB, userId uint32) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `DELETE FROM ` + dataTableName + ` WHERE user_id = $1`

		_, err := tx.ExecContext(ctx, query, userId)
		return err
	})
}

type rotationModel struct {
	Id             sql.NullInt64  `db:"id"`
	Key            uint32         `db:"rotation_key"`
	Owner          string         `db:"owner"`
	NewOwner       sql.NullString `db:"new_owner"`
	ExpirationDate uint64         `db:"expiration_date"`
}

func toRotationModel(obj *registry.RotationRecord) (*rotationModel, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	var newOwner sql.NullString
	if obj.NewOwner != nil {
		newOwner = sql.NullString{String: *obj.NewOwner, Valid: true}
	}

	return &rotationModel{
		Id:             sql.NullInt64{Int64: int64(obj.Id), Valid: true},
		Key:            obj.Key,
		Owner:          obj.Owner,
		NewOwner:       newOwner,
		ExpirationDate: obj.ExpirationDate,
	}, nil
}

func fromRotationModel(obj *rotationModel) *registry.RotationRecord {
	res := &registry.RotationRecord{
		Id:  uint64(obj.Id.Int64),
		Key: obj.Key,
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
			(rotation_key, owner, new_owner, expiration_date)
			VALUES ($1,$2,$3,$4)
			ON CONFLICT (rotation_key)
			DO UPDATE
				SET owner = $2, new_owner = $3, expiration_date = $4
			RETURNING
				id, rotation_key, owner, new_owner, expiration_date`

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.Key,
			m.Owner,
			m.NewOwner,
			m.ExpirationDate,
		).StructScan(m)

		return pgutil.CheckNoRows(err, registry.ErrNotFound)
	})
}

func dbGetRotation(ctx context.Context, db *sqlx.DB, key uint32) (*rotationModel, error) {
	res := &rotationModel{}

	query := `SELECT id, rotation_key, owner, new_owner, expiration_date
		FROM ` + rotationTableName + `
		WHERE rotation_key = $1
		LIMIT 1`

	err := db.GetContext(ctx, res, query, key)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, registry.ErrNotFound)
	}
	return res, nil
}
