package dexadapter

import (
	"crypto/ed25519"

	"github.com/mdaeva/registry-server/pkg/solana"
)

var initInstructionDiscriminator = []byte{220, 59, 207, 236, 108, 250, 47, 100}

type InitInstructionArgs struct {
	// AMM program swaps get routed through
	Dex ed25519.PublicKey
	// Registry program for swap-and-activate, nil leaves it unlinked
	Registry ed25519.PublicKey
	// Nil falls back to the program default
	RotationTimeout *uint32
}

type InitInstructionAccounts struct {
	Sender             ed25519.PublicKey
	Bump               ed25519.PublicKey
	Config             ed25519.PublicKey
	AdminRotationState ed25519.PublicKey
}

func NewInitInstruction(
	accounts *InitInstructionAccounts,
	args *InitInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, 8+
		32+
		optionSize(args.Registry != nil, 32)+
		optionSize(args.RotationTimeout != nil, 4),
	)

	putDiscriminator(data, initInstructionDiscriminator, &offset)
	putKey(data, args.Dex, &offset)
	putOptionalKey(data, args.Registry, &offset)
	putOptionalUint32(data, args.RotationTimeout, &offset)

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		Data: data,

		Accounts: []solana.AccountMeta{
			{
				PublicKey: SYSTEM_PROGRAM_ID,
			},
			{
				PublicKey:  accounts.Sender,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Bump,
				IsWritable: true,
			},
			{
				PublicKey:  accounts.Config,
				IsWritable: true,
			},
			{
				PublicKey:  accounts.AdminRotationState,
				IsWritable: true,
			},
		},
	}
}
