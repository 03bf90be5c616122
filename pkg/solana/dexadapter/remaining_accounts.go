package dexadapter

import (
	"crypto/ed25519"

	"github.com/mdaeva/registry-server/pkg/solana"
)

// AccountsPerSwapHop is the fixed number of appended accounts each route hop
// contributes to a swap instruction.
const AccountsPerSwapHop = 7

// SwapHopAccounts is the per-pool account block for one hop of a route.
type SwapHopAccounts struct {
	AmmConfig ed25519.PublicKey
	PoolState ed25519.PublicKey
	// Sender's token account for the hop output
	OutputTokenAccount ed25519.PublicKey
	InputVault         ed25519.PublicKey
	OutputVault        ed25519.PublicKey
	OutputMint         ed25519.PublicKey
	ObservationState   ed25519.PublicKey
}

// BuildRemainingAccounts flattens route hops into the account metas appended
// after a swap instruction's static list. Order and writability per hop are
// fixed by the program.
func BuildRemainingAccounts(hops []SwapHopAccounts) []solana.AccountMeta {
	metas := make([]solana.AccountMeta, 0, len(hops)*AccountsPerSwapHop)
	for _, hop := range hops {
		metas = append(
			metas,

			solana.AccountMeta{
				PublicKey: hop.AmmConfig,
			},
			solana.AccountMeta{
				PublicKey:  hop.PoolState,
				IsWritable: true,
			},
			solana.AccountMeta{
				PublicKey:  hop.OutputTokenAccount,
				IsWritable: true,
			},
			solana.AccountMeta{
				PublicKey:  hop.InputVault,
				IsWritable: true,
			},
			solana.AccountMeta{
				PublicKey:  hop.OutputVault,
				IsWritable: true,
			},
			solana.AccountMeta{
				PublicKey: hop.OutputMint,
			},
			solana.AccountMeta{
				PublicKey:  hop.ObservationState,
				IsWritable: true,
			},
		)
	}
	return metas
}
