package dexadapter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRouteAddress_DirectionSensitivity(t *testing.T) {
	mintA := bytes.Repeat([]byte{1}, 32)
	mintB := bytes.Repeat([]byte{2}, 32)

	forward, _, err := GetRouteAddress(&GetRouteAddressArgs{
		MintFirst: mintA,
		MintLast:  mintB,
	})
	require.NoError(t, err)

	// The route key uses the pair as given, so the reverse path is a
	// different account.
	reverse, _, err := GetRouteAddress(&GetRouteAddressArgs{
		MintFirst: mintB,
		MintLast:  mintA,
	})
	require.NoError(t, err)

	assert.NotEqual(t, forward, reverse)
}

func TestBuildRemainingAccounts(t *testing.T) {
	hops := []SwapHopAccounts{
		{
			AmmConfig:          bytes.Repeat([]byte{1}, 32),
			PoolState:          bytes.Repeat([]byte{2}, 32),
			OutputTokenAccount: bytes.Repeat([]byte{3}, 32),
			InputVault:         bytes.Repeat([]byte{4}, 32),
			OutputVault:        bytes.Repeat([]byte{5}, 32),
			OutputMint:         bytes.Repeat([]byte{6}, 32),
			ObservationState:   bytes.Repeat([]byte{7}, 32),
		},
		{
			AmmConfig:          bytes.Repeat([]byte{8}, 32),
			PoolState:          bytes.Repeat([]byte{9}, 32),
			OutputTokenAccount: bytes.Repeat([]byte{10}, 32),
			InputVault:         bytes.Repeat([]byte{11}, 32),
			OutputVault:        bytes.Repeat([]byte{12}, 32),
			OutputMint:         bytes.Repeat([]byte{13}, 32),
			ObservationState:   bytes.Repeat([]byte{14}, 32),
		},
	}

	metas := BuildRemainingAccounts(hops)
	require.Len(t, metas, 2*AccountsPerSwapHop)

	for i, hop := range hops {
		block := metas[i*AccountsPerSwapHop : (i+1)*AccountsPerSwapHop]

		assert.EqualValues(t, hop.AmmConfig, block[0].PublicKey)
		assert.EqualValues(t, hop.PoolState, block[1].PublicKey)
		assert.EqualValues(t, hop.OutputTokenAccount, block[2].PublicKey)
		assert.EqualValues(t, hop.InputVault, block[3].PublicKey)
		assert.EqualValues(t, hop.OutputVault, block[4].PublicKey)
		assert.EqualValues(t, hop.OutputMint, block[5].PublicKey)
		assert.EqualValues(t, hop.ObservationState, block[6].PublicKey)

		// Writability per hop: amm config and output mint are read-only
		for j, meta := range block {
			expected := j != 0 && j != 5
			assert.Equal(t, expected, meta.IsWritable)
			assert.False(t, meta.IsSigner)
		}
	}
}

func TestDeriveSwapHops_VaultSelection(t *testing.T) {
	sender := bytes.Repeat([]byte{1}, 32)
	mintA := bytes.Repeat([]byte{2}, 32)
	mintB := bytes.Repeat([]byte{3}, 32)

	forward, err := DeriveSwapHops(sender, mintA, []RouteItem{
		{AmmIndex: 0, TokenOut: mintB},
	})
	require.NoError(t, err)
	require.Len(t, forward, 1)
	assert.EqualValues(t, mintB, forward[0].OutputMint)

	reverse, err := DeriveSwapHops(sender, mintB, []RouteItem{
		{AmmIndex: 0, TokenOut: mintA},
	})
	require.NoError(t, err)
	require.Len(t, reverse, 1)

	// Both directions resolve the same pool but mirror the vault roles
	assert.EqualValues(t, forward[0].PoolState, reverse[0].PoolState)
	assert.EqualValues(t, forward[0].InputVault, reverse[0].OutputVault)
	assert.EqualValues(t, forward[0].OutputVault, reverse[0].InputVault)
}

func TestDeriveSwapHops_ChainsInputMints(t *testing.T) {
	sender := bytes.Repeat([]byte{1}, 32)
	mintA := bytes.Repeat([]byte{2}, 32)
	mintB := bytes.Repeat([]byte{3}, 32)
	mintC := bytes.Repeat([]byte{4}, 32)

	hops, err := DeriveSwapHops(sender, mintA, []RouteItem{
		{AmmIndex: 0, TokenOut: mintB},
		{AmmIndex: 1, TokenOut: mintC},
	})
	require.NoError(t, err)
	require.Len(t, hops, 2)

	// The second hop's pool is keyed off the first hop's output
	direct, err := DeriveSwapHops(sender, mintB, []RouteItem{
		{AmmIndex: 1, TokenOut: mintC},
	})
	require.NoError(t, err)
	assert.EqualValues(t, direct[0].PoolState, hops[1].PoolState)
	assert.EqualValues(t, direct[0].InputVault, hops[1].InputVault)
}
