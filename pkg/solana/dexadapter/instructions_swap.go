package dexadapter

import (
	"crypto/ed25519"

	"github.com/mdaeva/registry-server/pkg/solana"
)

var swapInstructionDiscriminator = []byte{248, 198, 158, 145, 225, 117, 135, 200}

type SwapInstructionArgs struct {
	AmountIn uint64
	// End to end limit over the whole route, not per hop
	AmountOutMinimum uint64
}

type SwapInstructionAccounts struct {
	TokenProgram ed25519.PublicKey
	// AMM program configured as the dex in the adapter config
	Dex                  ed25519.PublicKey
	Sender               ed25519.PublicKey
	Bump                 ed25519.PublicKey
	Config               ed25519.PublicKey
	Route                ed25519.PublicKey
	InputTokenMint       ed25519.PublicKey
	OutputTokenMint      ed25519.PublicKey
	InputTokenSenderAta  ed25519.PublicKey
	OutputTokenSenderAta ed25519.PublicKey
}

// NewSwapInstruction builds a multi-hop swap. Each route hop contributes a
// fixed block of per-pool accounts appended after the static list.
func NewSwapInstruction(
	accounts *SwapInstructionAccounts,
	hops []SwapHopAccounts,
	args *SwapInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, 8+8+8)

	putDiscriminator(data, swapInstructionDiscriminator, &offset)
	putUint64(data, args.AmountIn, &offset)
	putUint64(data, args.AmountOutMinimum, &offset)

	metas := []solana.AccountMeta{
		{
			PublicKey: SYSTEM_PROGRAM_ID,
		},
		{
			PublicKey: accounts.TokenProgram,
		},
		{
			PublicKey: ASSOCIATED_TOKEN_PROGRAM_ID,
		},
		{
			PublicKey: SPL_TOKEN_2022_PROGRAM_ID,
		},
		{
			PublicKey: MEMO_PROGRAM_ID,
		},
		{
			PublicKey: accounts.Dex,
		},
		{
			PublicKey:  accounts.Sender,
			IsWritable: true,
			IsSigner:   true,
		},
		{
			PublicKey: accounts.Bump,
		},
		{
			PublicKey: accounts.Config,
		},
		{
			PublicKey: accounts.Route,
		},
		{
			PublicKey:  accounts.InputTokenMint,
			IsWritable: true,
		},
		{
			PublicKey:  accounts.OutputTokenMint,
			IsWritable: true,
		},
		{
			PublicKey:  accounts.InputTokenSenderAta,
			IsWritable: true,
		},
		{
			PublicKey:  accounts.OutputTokenSenderAta,
			IsWritable: true,
		},
	}

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		Data: data,

		Accounts: append(metas, BuildRemainingAccounts(hops)...),
	}
}
