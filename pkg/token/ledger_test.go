package token

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_TransferHappyPath(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()

	ledger.RegisterMint("mint_a", ProgramSplToken)
	require.NoError(t, ledger.MintTo(ctx, "mint_a", "alice", 1000))

	require.NoError(t, ledger.Transfer(ctx, "mint_a", "alice", "bob", 400))

	balance, err := ledger.Balance(ctx, "mint_a", "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 600, balance)

	balance, err = ledger.Balance(ctx, "mint_a", "bob")
	require.NoError(t, err)
	assert.EqualValues(t, 400, balance)
}

func TestLedger_TransferFailures(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()

	ledger.RegisterMint("mint_a", ProgramSplToken)
	require.NoError(t, ledger.MintTo(ctx, "mint_a", "alice", 100))

	err := ledger.Transfer(ctx, "mint_a", "alice", "bob", 101)
	assert.Equal(t, ErrInsufficientFunds, err)

	err = ledger.Transfer(ctx, "mint_a", "carol", "bob", 1)
	assert.Equal(t, ErrAccountNotFound, err)

	err = ledger.Transfer(ctx, "unknown_mint", "alice", "bob", 1)
	assert.Equal(t, ErrAccountNotFound, err)

	// Nothing moved
	balance, err := ledger.Balance(ctx, "mint_a", "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 100, balance)
}

func TestLedger_OwningProgram(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()

	ledger.RegisterMint("mint_a", ProgramSplToken)
	ledger.RegisterMint("mint_b", ProgramSplToken2022)

	program, err := ledger.OwningProgram(ctx, "mint_a")
	require.NoError(t, err)
	assert.Equal(t, ProgramSplToken, program)

	program, err = ledger.OwningProgram(ctx, "mint_b")
	require.NoError(t, err)
	assert.Equal(t, ProgramSplToken2022, program)

	_, err = ledger.OwningProgram(ctx, "unknown_mint")
	assert.Equal(t, ErrAccountNotFound, err)
}

func TestLedger_UnwrapNative(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()

	require.NoError(t, ledger.MintTo(ctx, NativeMint, "alice", 2_000_000_000))

	released, err := ledger.CloseAccount(ctx, NativeMint, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 2_000_000_000, released)

	lamports, err := ledger.Lamports(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 2_000_000_000, lamports)

	_, err = ledger.Balance(ctx, NativeMint, "alice")
	require.NoError(t, err)

	_, err = ledger.CloseAccount(ctx, NativeMint, "alice")
	assert.Equal(t, ErrAccountNotFound, err)
}

func TestLedger_CloseNonEmptyAccount(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()

	ledger.RegisterMint("mint_a", ProgramSplToken)
	require.NoError(t, ledger.MintTo(ctx, "mint_a", "alice", 10))

	_, err := ledger.CloseAccount(ctx, "mint_a", "alice")
	assert.Equal(t, ErrAccountNotEmpty, err)

	require.NoError(t, ledger.Transfer(ctx, "mint_a", "alice", "bob", 10))

	released, err := ledger.CloseAccount(ctx, "mint_a", "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 0, released)
}
