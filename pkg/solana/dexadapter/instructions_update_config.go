package dexadapter

import (
	"crypto/ed25519"

	"github.com/mdaeva/registry-server/pkg/solana"
)

var updateConfigInstructionDiscriminator = []byte{29, 158, 252, 191, 10, 83, 219, 99}

// Nil fields are left unchanged.
type UpdateConfigInstructionArgs struct {
	Admin           ed25519.PublicKey
	Dex             ed25519.PublicKey
	Registry        ed25519.PublicKey
	IsPaused        *bool
	RotationTimeout *uint32
}

type UpdateConfigInstructionAccounts struct {
	Sender             ed25519.PublicKey
	Bump               ed25519.PublicKey
	Config             ed25519.PublicKey
	AdminRotationState ed25519.PublicKey
}

func NewUpdateConfigInstruction(
	accounts *UpdateConfigInstructionAccounts,
	args *UpdateConfigInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, 8+
		optionSize(args.Admin != nil, 32)+
		optionSize(args.Dex != nil, 32)+
		optionSize(args.Registry != nil, 32)+
		optionSize(args.IsPaused != nil, 1)+
		optionSize(args.RotationTimeout != nil, 4),
	)

	putDiscriminator(data, updateConfigInstructionDiscriminator, &offset)
	putOptionalKey(data, args.Admin, &offset)
	putOptionalKey(data, args.Dex, &offset)
	putOptionalKey(data, args.Registry, &offset)
	putOptionalBool(data, args.IsPaused, &offset)
	putOptionalUint32(data, args.RotationTimeout, &offset)

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		Data: data,

		Accounts: []solana.AccountMeta{
			{
				PublicKey: accounts.Sender,
				IsSigner:  true,
			},
			{
				PublicKey: accounts.Bump,
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
