package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdaeva/registry-server/pkg/dexadapter"
	"github.com/mdaeva/registry-server/pkg/pointer"
)

func RunTests(t *testing.T, s dexadapter.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s dexadapter.Store){
		testConfigRoundTrip,
		testRouteRoundTrip,
		testRouteDirectionSensitivity,
		testGetAllRoutes,
		testRotationRoundTrip,
		testExecuteInTx,
	} {
		tf(t, s)
		teardown()
	}
}

func testConfigRoundTrip(t *testing.T, s dexadapter.Store) {
	t.Run("testConfigRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.GetConfig(ctx)
		assert.Equal(t, dexadapter.ErrNotFound, err)
		assert.Nil(t, actual)

		expected := dexadapter.ConfigRecord{
			Admin:           "admin_wallet",
			Dex:             "dex_program",
			IsPaused:        false,
			RotationTimeout: 3600,
		}
		require.NoError(t, s.SaveConfig(ctx, &expected))
		assert.True(t, expected.Id > 0)

		actual, err = s.GetConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, expected.Admin, actual.Admin)
		assert.Equal(t, expected.Dex, actual.Dex)
		assert.Nil(t, actual.Registry)
		assert.False(t, actual.IsPaused)
		assert.Equal(t, expected.RotationTimeout, actual.RotationTimeout)

		expected.Registry = pointer.String("registry_program")
		expected.IsPaused = true
		require.NoError(t, s.SaveConfig(ctx, &expected))

		actual, err = s.GetConfig(ctx)
		require.NoError(t, err)
		require.NotNil(t, actual.Registry)
		assert.Equal(t, "registry_program", *actual.Registry)
		assert.True(t, actual.IsPaused)
		assert.Equal(t, expected.Id, actual.Id)
	})
}

func testRouteRoundTrip(t *testing.T, s dexadapter.Store) {
	t.Run("testRouteRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.GetRoute(ctx, "mint_a", "mint_c")
		assert.Equal(t, dexadapter.ErrNotFound, err)
		assert.Nil(t, actual)

		expected := dexadapter.RouteRecord{
			MintFirst: "mint_a",
			MintLast:  "mint_c",
			Hops: []dexadapter.RouteHop{
				{AmmIndex: 0, TokenOut: "mint_b"},
				{AmmIndex: 1, TokenOut: "mint_c"},
			},
		}
		require.NoError(t, s.SaveRoute(ctx, &expected))
		assert.True(t, expected.Id > 0)

		actual, err = s.GetRoute(ctx, "mint_a", "mint_c")
		require.NoError(t, err)
		assert.Equal(t, expected.MintFirst, actual.MintFirst)
		assert.Equal(t, expected.MintLast, actual.MintLast)
		assert.Equal(t, expected.Hops, actual.Hops)

		// Saving the same pair replaces the hop list
		updated := dexadapter.RouteRecord{
			MintFirst: "mint_a",
			MintLast:  "mint_c",
			Hops: []dexadapter.RouteHop{
				{AmmIndex: 2, TokenOut: "mint_c"},
			},
		}
		require.NoError(t, s.SaveRoute(ctx, &updated))
		assert.Equal(t, expected.Id, updated.Id)

		actual, err = s.GetRoute(ctx, "mint_a", "mint_c")
		require.NoError(t, err)
		require.Len(t, actual.Hops, 1)
		assert.EqualValues(t, 2, actual.Hops[0].AmmIndex)
	})
}

func testRouteDirectionSensitivity(t *testing.T, s dexadapter.Store) {
	t.Run("testRouteDirectionSensitivity", func(t *testing.T) {
		ctx := context.Background()

		forward := dexadapter.RouteRecord{
			MintFirst: "mint_a",
			MintLast:  "mint_b",
			Hops: []dexadapter.RouteHop{
				{AmmIndex: 0, TokenOut: "mint_b"},
			},
		}
		require.NoError(t, s.SaveRoute(ctx, &forward))

		// The reverse pair is a distinct key
		_, err := s.GetRoute(ctx, "mint_b", "mint_a")
		assert.Equal(t, dexadapter.ErrNotFound, err)

		reverse := dexadapter.RouteRecord{
			MintFirst: "mint_b",
			MintLast:  "mint_a",
			Hops: []dexadapter.RouteHop{
				{AmmIndex: 0, TokenOut: "mint_a"},
			},
		}
		require.NoError(t, s.SaveRoute(ctx, &reverse))
		assert.NotEqual(t, forward.Id, reverse.Id)

		actual, err := s.GetRoute(ctx, "mint_b", "mint_a")
		require.NoError(t, err)
		assert.Equal(t, "mint_a", actual.Hops[0].TokenOut)
	})
}

func testGetAllRoutes(t *testing.T, s dexadapter.Store) {
	t.Run("testGetAllRoutes", func(t *testing.T) {
		ctx := context.Background()

		_, err := s.GetAllRoutes(ctx)
		assert.Equal(t, dexadapter.ErrNotFound, err)

		for _, pair := range [][2]string{
			{"mint_a", "mint_b"},
			{"mint_a", "mint_c"},
			{"mint_b", "mint_c"},
		} {
			record := dexadapter.RouteRecord{
				MintFirst: pair[0],
				MintLast:  pair[1],
				Hops: []dexadapter.RouteHop{
					{AmmIndex: 0, TokenOut: pair[1]},
				},
			}
			require.NoError(t, s.SaveRoute(ctx, &record))
		}

		actual, err := s.GetAllRoutes(ctx)
		require.NoError(t, err)
		assert.Len(t, actual, 3)
	})
}

func testRotationRoundTrip(t *testing.T, s dexadapter.Store) {
	t.Run("testRotationRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.GetRotation(ctx)
		assert.Equal(t, dexadapter.ErrNotFound, err)
		assert.Nil(t, actual)

		expected := dexadapter.RotationRecord{}
		expected.Owner = "admin_wallet"
		require.NoError(t, s.SaveRotation(ctx, &expected))
		assert.True(t, expected.Id > 0)

		actual, err = s.GetRotation(ctx)
		require.NoError(t, err)
		assert.Equal(t, "admin_wallet", actual.Owner)
		assert.Nil(t, actual.NewOwner)

		expected.NewOwner = pointer.String("next_admin")
		expected.ExpirationDate = 1_700_000_000
		require.NoError(t, s.SaveRotation(ctx, &expected))

		actual, err = s.GetRotation(ctx)
		require.NoError(t, err)
		require.NotNil(t, actual.NewOwner)
		assert.Equal(t, "next_admin", *actual.NewOwner)
		assert.EqualValues(t, 1_700_000_000, actual.ExpirationDate)
		assert.Equal(t, expected.Id, actual.Id)
	})
}

func testExecuteInTx(t *testing.T, s dexadapter.Store) {
	t.Run("testExecuteInTx", func(t *testing.T) {
		ctx := context.Background()

		errRollback := errors.New("rollback")
		err := s.ExecuteInTx(ctx, func(ctx context.Context) error {
			config := dexadapter.ConfigRecord{
				Admin:           "admin_wallet",
				Dex:             "dex_program",
				RotationTimeout: 3600,
			}
			if err := s.SaveConfig(ctx, &config); err != nil {
				return err
			}

			route := dexadapter.RouteRecord{
				MintFirst: "mint_a",
				MintLast:  "mint_b",
				Hops: []dexadapter.RouteHop{
					{AmmIndex: 0, TokenOut: "mint_b"},
				},
			}
			if err := s.SaveRoute(ctx, &route); err != nil {
				return err
			}

			return errRollback
		})
		assert.Equal(t, errRollback, err)

		_, err = s.GetConfig(ctx)
		assert.Equal(t, dexadapter.ErrNotFound, err)
		_, err = s.GetRoute(ctx, "mint_a", "mint_b")
		assert.Equal(t, dexadapter.ErrNotFound, err)

		err = s.ExecuteInTx(ctx, func(ctx context.Context) error {
			config := dexadapter.ConfigRecord{
				Admin:           "admin_wallet",
				Dex:             "dex_program",
				RotationTimeout: 3600,
			}
			return s.SaveConfig(ctx, &config)
		})
		require.NoError(t, err)

		actual, err := s.GetConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, "admin_wallet", actual.Admin)
	})
}
