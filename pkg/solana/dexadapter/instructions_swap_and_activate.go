package dexadapter

import (
	"crypto/ed25519"

	"github.com/mdaeva/registry-server/pkg/solana"
)

var swapAndActivateInstructionDiscriminator = []byte{211, 229, 13, 51, 221, 165, 179, 242}

type SwapAndActivateInstructionAccounts struct {
	TokenProgram ed25519.PublicKey
	Dex          ed25519.PublicKey
	// Registry program linked in the adapter config
	RegistryProgram      ed25519.PublicKey
	Sender               ed25519.PublicKey
	Bump                 ed25519.PublicKey
	Config               ed25519.PublicKey
	Route                ed25519.PublicKey
	RegistryBump         ed25519.PublicKey
	RegistryConfig       ed25519.PublicKey
	RegistryUserId       ed25519.PublicKey
	InputTokenMint       ed25519.PublicKey
	OutputTokenMint      ed25519.PublicKey
	InputTokenSenderAta  ed25519.PublicKey
	OutputTokenSenderAta ed25519.PublicKey
	RevenueAppAta        ed25519.PublicKey
}

// NewSwapAndActivateInstruction builds a swap whose output pays the registry
// activation fee, activating the sender's account in the same transaction.
func NewSwapAndActivateInstruction(
	accounts *SwapAndActivateInstructionAccounts,
	hops []SwapHopAccounts,
	args *SwapInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, 8+8+8)

	putDiscriminator(data, swapAndActivateInstructionDiscriminator, &offset)
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
			PublicKey: accounts.RegistryProgram,
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
			PublicKey: accounts.RegistryBump,
		},
		{
			PublicKey: accounts.RegistryConfig,
		},
		{
			PublicKey:  accounts.RegistryUserId,
			IsWritable: true,
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
		{
			PublicKey:  accounts.RevenueAppAta,
			IsWritable: true,
		},
	}

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		Data: data,

		Accounts: append(metas, BuildRemainingAccounts(hops)...),
	}
}
