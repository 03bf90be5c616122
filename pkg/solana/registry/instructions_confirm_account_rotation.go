package registry

import (
	"crypto/ed25519"

	"github.com/mdaeva/registry-server/pkg/solana"
)

var confirmAccountRotationInstructionDiscriminator = []byte{46, 196, 252, 234, 140, 190, 55, 250}

type ConfirmAccountRotationInstructionAccounts struct {
	Sender ed25519.PublicKey
	// User id PDA derived from the previous owner's wallet
	UserIdPre ed25519.PublicKey
	// User id PDA derived from the sender's wallet
	UserId            ed25519.PublicKey
	UserRotationState ed25519.PublicKey
}

func NewConfirmAccountRotationInstruction(
	accounts *ConfirmAccountRotationInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, 8)
	putDiscriminator(data, confirmAccountRotationInstructionDiscriminator, &offset)

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
				PublicKey:  accounts.UserIdPre,
				IsWritable: true,
			},
			{
				PublicKey:  accounts.UserId,
				IsWritable: true,
			},
			{
				PublicKey:  accounts.UserRotationState,
				IsWritable: true,
			},
		},
	}
}
