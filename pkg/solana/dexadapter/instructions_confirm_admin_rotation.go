package dexadapter

import (
	"crypto/ed25519"

	"github.com/mdaeva/registry-server/pkg/solana"
)

var confirmAdminRotationInstructionDiscriminator = []byte{35, 96, 147, 139, 128, 212, 60, 237}

type ConfirmAdminRotationInstructionAccounts struct {
	Sender             ed25519.PublicKey
	Bump               ed25519.PublicKey
	Config             ed25519.PublicKey
	AdminRotationState ed25519.PublicKey
}

func NewConfirmAdminRotationInstruction(
	accounts *ConfirmAdminRotationInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, 8)
	putDiscriminator(data, confirmAdminRotationInstructionDiscriminator, &offset)

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
