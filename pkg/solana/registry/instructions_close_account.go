package registry

import (
	"crypto/ed25519"

	"github.com/mdaeva/registry-server/pkg/solana"
)

var closeAccountInstructionDiscriminator = []byte{125, 255, 149, 14, 110, 34, 72, 24}

type CloseAccountInstructionAccounts struct {
	Sender            ed25519.PublicKey
	UserId            ed25519.PublicKey
	UserAccount       ed25519.PublicKey
	UserRotationState ed25519.PublicKey
}

func NewCloseAccountInstruction(
	accounts *CloseAccountInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, 8)
	putDiscriminator(data, closeAccountInstructionDiscriminator, &offset)

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
				PublicKey:  accounts.UserId,
				IsWritable: true,
			},
			{
				PublicKey:  accounts.UserAccount,
				IsWritable: true,
			},
			{
				PublicKey:  accounts.UserRotationState,
				IsWritable: true,
			},
		},
	}
}
