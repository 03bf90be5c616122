package clmm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdaeva/registry-server/pkg/token"
)

func TestPools_Swap(t *testing.T) {
	ctx := context.Background()

	ledger := token.NewLedger()
	ledger.RegisterMint("mint_a", token.ProgramSplToken)
	ledger.RegisterMint("mint_b", token.ProgramSplToken)

	pools := NewPools(ledger)
	require.NoError(t, pools.AddPool(ctx, 0, "mint_a", "mint_b", 1_000_000, 2_000_000))

	require.NoError(t, ledger.MintTo(ctx, "mint_a", "trader", 10_000))

	quoted, err := pools.Quote(ctx, 0, "mint_a", "mint_b", 10_000)
	require.NoError(t, err)

	amountOut, err := pools.Swap(ctx, 0, "mint_a", "mint_b", "trader", 10_000)
	require.NoError(t, err)
	assert.Equal(t, quoted, amountOut)

	// 2_000_000 * 10_000 / 1_010_000
	assert.EqualValues(t, 19_801, amountOut)

	balance, err := ledger.Balance(ctx, "mint_b", "trader")
	require.NoError(t, err)
	assert.Equal(t, amountOut, balance)

	balance, err = ledger.Balance(ctx, "mint_a", "trader")
	require.NoError(t, err)
	assert.EqualValues(t, 0, balance)

	// Reserves moved, so the same input quotes lower now
	requoted, err := pools.Quote(ctx, 0, "mint_a", "mint_b", 10_000)
	require.NoError(t, err)
	assert.True(t, requoted < quoted)
}

func TestPools_SwapReverseDirection(t *testing.T) {
	ctx := context.Background()

	ledger := token.NewLedger()
	ledger.RegisterMint("mint_a", token.ProgramSplToken)
	ledger.RegisterMint("mint_b", token.ProgramSplToken)

	pools := NewPools(ledger)
	require.NoError(t, pools.AddPool(ctx, 0, "mint_b", "mint_a", 2_000_000, 1_000_000))

	require.NoError(t, ledger.MintTo(ctx, "mint_b", "trader", 20_000))

	// The pool registered with reversed argument order still serves both
	// directions.
	amountOut, err := pools.Swap(ctx, 0, "mint_b", "mint_a", "trader", 20_000)
	require.NoError(t, err)
	assert.EqualValues(t, 9_900, amountOut)
}

func TestPools_Errors(t *testing.T) {
	ctx := context.Background()

	ledger := token.NewLedger()
	ledger.RegisterMint("mint_a", token.ProgramSplToken)
	ledger.RegisterMint("mint_b", token.ProgramSplToken)

	pools := NewPools(ledger)
	require.NoError(t, pools.AddPool(ctx, 0, "mint_a", "mint_b", 1_000_000, 1_000_000))

	_, err := pools.Swap(ctx, 1, "mint_a", "mint_b", "trader", 100)
	assert.Equal(t, ErrPoolNotFound, err)

	// Trader holds nothing
	_, err = pools.Swap(ctx, 0, "mint_a", "mint_b", "trader", 100)
	assert.Equal(t, token.ErrAccountNotFound, err)

	require.NoError(t, ledger.MintTo(ctx, "mint_a", "trader", 50))
	_, err = pools.Swap(ctx, 0, "mint_a", "mint_b", "trader", 100)
	assert.Equal(t, token.ErrInsufficientFunds, err)
}
