package dexadapter

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/mdaeva/registry-server/pkg/solana/clmm"
	"github.com/mdaeva/registry-server/pkg/solana/token"
)

// DeriveSwapHops resolves the per-pool accounts for every hop of a route.
// Pool and vault addresses come from the AMM's PDA scheme; hop output token
// accounts are the sender's associated accounts.
func DeriveSwapHops(
	sender ed25519.PublicKey,
	inputMint ed25519.PublicKey,
	route []RouteItem,
) ([]SwapHopAccounts, error) {
	hops := make([]SwapHopAccounts, 0, len(route))

	tokenIn := inputMint
	for _, item := range route {
		tokenOut := item.TokenOut

		ammConfig, _, err := clmm.GetAmmConfigAddress(&clmm.GetAmmConfigAddressArgs{
			Index: item.AmmIndex,
		})
		if err != nil {
			return nil, errors.Wrap(err, "error deriving amm config address")
		}

		token0Mint, token1Mint := clmm.SortMints(tokenIn, tokenOut)

		poolState, _, err := clmm.GetPoolStateAddress(&clmm.GetPoolStateAddressArgs{
			AmmConfig:  ammConfig,
			Token0Mint: token0Mint,
			Token1Mint: token1Mint,
		})
		if err != nil {
			return nil, errors.Wrap(err, "error deriving pool state address")
		}

		observationState, _, err := clmm.GetObservationStateAddress(&clmm.GetObservationStateAddressArgs{
			PoolState: poolState,
		})
		if err != nil {
			return nil, errors.Wrap(err, "error deriving observation state address")
		}

		vault0, _, err := clmm.GetPoolVaultAddress(&clmm.GetPoolVaultAddressArgs{
			PoolState: poolState,
			TokenMint: token0Mint,
		})
		if err != nil {
			return nil, errors.Wrap(err, "error deriving pool vault address")
		}

		vault1, _, err := clmm.GetPoolVaultAddress(&clmm.GetPoolVaultAddressArgs{
			PoolState: poolState,
			TokenMint: token1Mint,
		})
		if err != nil {
			return nil, errors.Wrap(err, "error deriving pool vault address")
		}

		inputVault, outputVault := vault0, vault1
		if !tokenIn.Equal(token0Mint) {
			inputVault, outputVault = vault1, vault0
		}

		outputTokenAccount, err := token.GetAssociatedAccount(sender, tokenOut)
		if err != nil {
			return nil, errors.Wrap(err, "error deriving output token account")
		}

		hops = append(hops, SwapHopAccounts{
			AmmConfig:          ammConfig,
			PoolState:          poolState,
			OutputTokenAccount: outputTokenAccount,
			InputVault:         inputVault,
			OutputVault:        outputVault,
			OutputMint:         tokenOut,
			ObservationState:   observationState,
		})

		tokenIn = tokenOut
	}

	return hops, nil
}
