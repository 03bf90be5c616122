package memory

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdaeva/registry-server/pkg/registry"
	"github.com/mdaeva/registry-server/pkg/registry/tests"
)

func TestRegistryMemoryStore(t *testing.T) {
	testStore := New()
	teardown := func() {
		testStore.(*store).reset()
	}
	tests.RunTests(t, testStore, teardown)
}

func TestExecuteInTx_RollbackPreservesConcurrentWrite(t *testing.T) {
	testStore := New()
	defer testStore.(*store).reset()

	ctx := context.Background()

	release := make(chan struct{})
	done := make(chan struct{})

	// A writer outside the transaction must block until the rollback
	// finishes, so its committed record survives the restore.
	go func() {
		defer close(done)
		<-release
		_ = testStore.SaveIdentity(ctx, &registry.IdentityRecord{
			Owner:  "committed_wallet",
			UserId: 1,
			IsOpen: true,
		})
	}()

	err := testStore.ExecuteInTx(ctx, func(ctx context.Context) error {
		if err := testStore.SaveIdentity(ctx, &registry.IdentityRecord{
			Owner:  "rolled_back_wallet",
			UserId: 2,
			IsOpen: true,
		}); err != nil {
			return err
		}

		close(release)
		time.Sleep(50 * time.Millisecond)

		return errors.New("induced failure")
	})
	require.Error(t, err)

	<-done

	_, err = testStore.GetIdentityByOwner(ctx, "rolled_back_wallet")
	assert.Equal(t, registry.ErrNotFound, err)

	record, err := testStore.GetIdentityByOwner(ctx, "committed_wallet")
	require.NoError(t, err)
	assert.EqualValues(t, 1, record.UserId)
}
