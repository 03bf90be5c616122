package postgres

import (
	"database/sql"
	"os"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/sirupsen/logrus"

	"github.com/mdaeva/registry-server/pkg/registry"
	"github.com/mdaeva/registry-server/pkg/registry/tests"

	postgrestest "github.com/mdaeva/registry-server/pkg/database/postgres/test"

	_ "github.com/jackc/pgx/v4/stdlib"
)

const (
	// Used for testing ONLY, the tables and migrations are external to this repository
	tableCreate = `
		CREATE TABLE registry__config(
			id SERIAL NOT NULL PRIMARY KEY,
			singleton BOOL NOT NULL DEFAULT TRUE,

			admin TEXT NOT NULL,
			is_paused BOOL NOT NULL,
			rotation_timeout INTEGER NOT NULL CHECK (rotation_timeout >= 0),
			fee_amount BIGINT NOT NULL CHECK (fee_amount >= 0),
			fee_asset TEXT NOT NULL,
			min_data_size INTEGER NOT NULL CHECK (min_data_size >= 0),
			max_data_size INTEGER NOT NULL CHECK (max_data_size >= 0),

			CONSTRAINT registry__config__uniq__singleton UNIQUE (singleton)
		);

		CREATE TABLE registry__user_counter(
			id SERIAL NOT NULL PRIMARY KEY,
			singleton BOOL NOT NULL DEFAULT TRUE,

			last_user_id INTEGER NOT NULL CHECK (last_user_id >= 0),

			CONSTRAINT registry__user_counter__uniq__singleton UNIQUE (singleton)
		);

		CREATE TABLE registry__user_identity(
			id SERIAL NOT NULL PRIMARY KEY,

			owner TEXT NOT NULL,
			user_id INTEGER NOT NULL CHECK (user_id > 0),
			is_open BOOL NOT NULL,
			is_activated BOOL NOT NULL,

			CONSTRAINT registry__user_identity__uniq__owner UNIQUE (owner),
			CONSTRAINT registry__user_identity__uniq__user_id UNIQUE (user_id)
		);

		CREATE TABLE registry__user_data(
			id SERIAL NOT NULL PRIMARY KEY,

			user_id INTEGER NOT NULL CHECK (user_id > 0),
			data TEXT NOT NULL,
			nonce BIGINT NOT NULL CHECK (nonce >= 0),
			max_size INTEGER NOT NULL CHECK (max_size > 0),

			CONSTRAINT registry__user_data__uniq__user_id UNIQUE (user_id)
		);

		CREATE TABLE registry__rotation_state(
			id SERIAL NOT NULL PRIMARY KEY,

			rotation_key INTEGER NOT NULL CHECK (rotation_key >= 0),
			owner TEXT NOT NULL,
			new_owner TEXT NULL,
			expiration_date BIGINT NOT NULL CHECK (expiration_date >= 0),

			CONSTRAINT registry__rotation_state__uniq__rotation_key UNIQUE (rotation_key)
		);
	`

	// Used for testing ONLY, the tables and migrations are external to this repository
	tableDestroy = `
		DROP TABLE registry__config;
		DROP TABLE registry__user_counter;
		DROP TABLE registry__user_identity;
		DROP TABLE registry__user_data;
		DROP TABLE registry__rotation_state;
	`
)

var (
	testStore registry.Store
	teardown  func()
)

func TestMain(m *testing.M) {
	log := logrus.StandardLogger()

	testPool, err := dockertest.NewPool("")
	if err != nil {
		log.WithError(err).Error("Error creating docker pool")
		os.Exit(1)
	}

	var cleanUpFunc func()
	db, cleanUpFunc, err := postgrestest.StartPostgresDB(testPool)
	if err != nil {
		log.WithError(err).Error("Error starting postgres image")
		os.Exit(1)
	}
	defer db.Close()

	if err := createTestTables(db); err != nil {
		logrus.StandardLogger().WithError(err).Error("Error creating test tables")
		cleanUpFunc()
		os.Exit(1)
	}

	testStore = New(db)
	teardown = func() {
		if pc := recover(); pc != nil {
			cleanUpFunc()
			panic(pc)
		}

		if err := resetTestTables(db); err != nil {
			logrus.StandardLogger().WithError(err).Error("Error resetting test tables")
			cleanUpFunc()
			os.Exit(1)
		}
	}

	code := m.Run()
	cleanUpFunc()
	os.Exit(code)
}

func TestRegistryPostgresStore(t *testing.T) {
	tests.RunTests(t, testStore, teardown)
}

func createTestTables(db *sql.DB) error {
	_, err := db.Exec(tableCreate)
	if err != nil {
		logrus.StandardLogger().WithError(err).Error("could not create test tables")
		return err
	}
	return nil
}

func resetTestTables(db *sql.DB) error {
	_, err := db.Exec(tableDestroy)
	if err != nil {
		logrus.StandardLogger().WithError(err).Error("could not drop test tables")
		return err
	}

	return createTestTables(db)
}
