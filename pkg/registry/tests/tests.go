package tests

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdaeva/registry-server/pkg/database/query"
	"github.com/mdaeva/registry-server/pkg/pointer"
	"github.com/mdaeva/registry-server/pkg/registry"
)

func RunTests(t *testing.T, s registry.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s registry.Store){
		testConfigRoundTrip,
		testUserIdCounter,
		testIdentityRoundTrip,
		testIdentityOwnerChange,
		testGetAllIdentities,
		testDataLifecycle,
		testRotationRoundTrip,
		testExecuteInTx,
	} {
		tf(t, s)
		teardown()
	}
}

func testConfigRoundTrip(t *testing.T, s registry.Store) {
	t.Run("testConfigRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.GetConfig(ctx)
		assert.Equal(t, registry.ErrNotFound, err)
		assert.Nil(t, actual)

		expected := registry.ConfigRecord{
			Admin:           "admin_wallet",
			IsPaused:        false,
			RotationTimeout: 3600,
			FeeAmount:       100_000,
			FeeAsset:        "fee_mint",
			MinDataSize:     100,
			MaxDataSize:     10_000,
		}
		require.NoError(t, s.SaveConfig(ctx, &expected))
		assert.True(t, expected.Id > 0)

		actual, err = s.GetConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, expected.Admin, actual.Admin)
		assert.Equal(t, expected.RotationTimeout, actual.RotationTimeout)
		assert.Equal(t, expected.FeeAmount, actual.FeeAmount)
		assert.Equal(t, expected.FeeAsset, actual.FeeAsset)
		assert.Equal(t, expected.MinDataSize, actual.MinDataSize)
		assert.Equal(t, expected.MaxDataSize, actual.MaxDataSize)

		expected.IsPaused = true
		expected.MaxDataSize = 20_000
		require.NoError(t, s.SaveConfig(ctx, &expected))

		actual, err = s.GetConfig(ctx)
		require.NoError(t, err)
		assert.True(t, actual.IsPaused)
		assert.EqualValues(t, 20_000, actual.MaxDataSize)
		assert.Equal(t, expected.Id, actual.Id)
	})
}

func testUserIdCounter(t *testing.T, s registry.Store) {
	t.Run("testUserIdCounter", func(t *testing.T) {
		ctx := context.Background()

		value, err := s.GetLastUserId(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 0, value)

		require.NoError(t, s.SaveLastUserId(ctx, 1))
		require.NoError(t, s.SaveLastUserId(ctx, 2))

		value, err = s.GetLastUserId(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 2, value)
	})
}

func testIdentityRoundTrip(t *testing.T, s registry.Store) {
	t.Run("testIdentityRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.GetIdentityByOwner(ctx, "user_wallet")
		assert.Equal(t, registry.ErrNotFound, err)
		assert.Nil(t, actual)

		actual, err = s.GetIdentityByUserId(ctx, 1)
		assert.Equal(t, registry.ErrNotFound, err)
		assert.Nil(t, actual)

		expected := registry.IdentityRecord{
			Owner:  "user_wallet",
			UserId: 1,
			IsOpen: true,
		}
		require.NoError(t, s.SaveIdentity(ctx, &expected))
		assert.True(t, expected.Id > 0)

		actual, err = s.GetIdentityByOwner(ctx, "user_wallet")
		require.NoError(t, err)
		assert.EqualValues(t, 1, actual.UserId)
		assert.True(t, actual.IsOpen)
		assert.False(t, actual.IsActivated)

		expected.IsActivated = true
		require.NoError(t, s.SaveIdentity(ctx, &expected))

		actual, err = s.GetIdentityByUserId(ctx, 1)
		require.NoError(t, err)
		assert.True(t, actual.IsActivated)
		assert.Equal(t, expected.Id, actual.Id)
	})
}

func testIdentityOwnerChange(t *testing.T, s registry.Store) {
	t.Run("testIdentityOwnerChange", func(t *testing.T) {
		ctx := context.Background()

		record := registry.IdentityRecord{
			Owner:       "old_wallet",
			UserId:      1,
			IsOpen:      true,
			IsActivated: true,
		}
		require.NoError(t, s.SaveIdentity(ctx, &record))

		record.Owner = "new_wallet"
		require.NoError(t, s.SaveIdentity(ctx, &record))

		actual, err := s.GetIdentityByOwner(ctx, "old_wallet")
		assert.Equal(t, registry.ErrNotFound, err)
		assert.Nil(t, actual)

		actual, err = s.GetIdentityByOwner(ctx, "new_wallet")
		require.NoError(t, err)
		assert.EqualValues(t, 1, actual.UserId)
		assert.True(t, actual.IsActivated)
		assert.Equal(t, record.Id, actual.Id)
	})
}

func testGetAllIdentities(t *testing.T, s registry.Store) {
	t.Run("testGetAllIdentities", func(t *testing.T) {
		ctx := context.Background()

		_, err := s.GetAllIdentities(ctx, query.EmptyCursor, 10, query.Ascending)
		assert.Equal(t, registry.ErrNotFound, err)

		for i := uint32(1); i <= 5; i++ {
			require.NoError(t, s.SaveIdentity(ctx, &registry.IdentityRecord{
				Owner:  fmt.Sprintf("wallet_%d", i),
				UserId: i,
				IsOpen: i%2 == 1,
			}))
		}
		require.NoError(t, s.SaveLastUserId(ctx, 5))

		all, err := s.GetAllIdentities(ctx, query.EmptyCursor, 10, query.Ascending)
		require.NoError(t, err)
		require.Len(t, all, 5)
		for i, item := range all {
			assert.EqualValues(t, i+1, item.UserId)
		}

		page, err := s.GetAllIdentities(ctx, query.ToCursor(2), 2, query.Ascending)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.EqualValues(t, 3, page[0].UserId)
		assert.EqualValues(t, 4, page[1].UserId)

		desc, err := s.GetAllIdentities(ctx, query.EmptyCursor, 2, query.Descending)
		require.NoError(t, err)
		require.Len(t, desc, 2)
		assert.EqualValues(t, 5, desc[0].UserId)
		assert.EqualValues(t, 4, desc[1].UserId)
	})
}

func testDataLifecycle(t *testing.T, s registry.Store) {
	t.Run("testDataLifecycle", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.GetDataByUserId(ctx, 1)
		assert.Equal(t, registry.ErrNotFound, err)
		assert.Nil(t, actual)

		expected := registry.DataRecord{
			UserId:  1,
			Data:    "ciphertext_blob",
			Nonce:   1_700_000_000_000,
			MaxSize: 1000,
		}
		require.NoError(t, s.SaveData(ctx, &expected))
		assert.True(t, expected.Id > 0)

		actual, err = s.GetDataByUserId(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, expected.Data, actual.Data)
		assert.Equal(t, expected.Nonce, actual.Nonce)
		assert.EqualValues(t, 1000, actual.MaxSize)

		require.NoError(t, s.DeleteDataByUserId(ctx, 1))

		actual, err = s.GetDataByUserId(ctx, 1)
		assert.Equal(t, registry.ErrNotFound, err)
		assert.Nil(t, actual)

		// Deleting an absent record is a no-op
		require.NoError(t, s.DeleteDataByUserId(ctx, 1))

		recreated := registry.DataRecord{
			UserId:  1,
			Nonce:   0,
			MaxSize: 2000,
		}
		require.NoError(t, s.SaveData(ctx, &recreated))

		actual, err = s.GetDataByUserId(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, actual.Data)
		assert.EqualValues(t, 2000, actual.MaxSize)
	})
}

func testRotationRoundTrip(t *testing.T, s registry.Store) {
	t.Run("testRotationRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.GetRotation(ctx, registry.AdminRotationKey)
		assert.Equal(t, registry.ErrNotFound, err)
		assert.Nil(t, actual)

		admin := registry.RotationRecord{
			Key: registry.AdminRotationKey,
		}
		admin.Owner = "admin_wallet"
		require.NoError(t, s.SaveRotation(ctx, &admin))

		user := registry.RotationRecord{
			Key: 1,
		}
		user.Owner = "user_wallet"
		user.NewOwner = pointer.String("next_wallet")
		user.ExpirationDate = 1_700_000_000
		require.NoError(t, s.SaveRotation(ctx, &user))

		actual, err = s.GetRotation(ctx, registry.AdminRotationKey)
		require.NoError(t, err)
		assert.Equal(t, "admin_wallet", actual.Owner)
		assert.Nil(t, actual.NewOwner)

		actual, err = s.GetRotation(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "user_wallet", actual.Owner)
		require.NotNil(t, actual.NewOwner)
		assert.Equal(t, "next_wallet", *actual.NewOwner)
		assert.EqualValues(t, 1_700_000_000, actual.ExpirationDate)

		user.Owner = "next_wallet"
		user.NewOwner = nil
		user.ExpirationDate = 0
		require.NoError(t, s.SaveRotation(ctx, &user))

		actual, err = s.GetRotation(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "next_wallet", actual.Owner)
		assert.Nil(t, actual.NewOwner)
	})
}

func testExecuteInTx(t *testing.T, s registry.Store) {
	t.Run("testExecuteInTx", func(t *testing.T) {
		ctx := context.Background()

		errRollback := errors.New("rollback")

		err := s.ExecuteInTx(ctx, func(ctx context.Context) error {
			if err := s.SaveLastUserId(ctx, 1); err != nil {
				return err
			}
			if err := s.SaveIdentity(ctx, &registry.IdentityRecord{
				Owner:  "user_wallet",
				UserId: 1,
				IsOpen: true,
			}); err != nil {
				return err
			}
			return errRollback
		})
		assert.Equal(t, errRollback, err)

		value, err := s.GetLastUserId(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 0, value)

		_, err = s.GetIdentityByOwner(ctx, "user_wallet")
		assert.Equal(t, registry.ErrNotFound, err)

		err = s.ExecuteInTx(ctx, func(ctx context.Context) error {
			if err := s.SaveLastUserId(ctx, 1); err != nil {
				return err
			}
			return s.SaveIdentity(ctx, &registry.IdentityRecord{
				Owner:  "user_wallet",
				UserId: 1,
				IsOpen: true,
			})
		})
		require.NoError(t, err)

		value, err = s.GetLastUserId(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, value)

		actual, err := s.GetIdentityByOwner(ctx, "user_wallet")
		require.NoError(t, err)
		assert.EqualValues(t, 1, actual.UserId)
	})
}
