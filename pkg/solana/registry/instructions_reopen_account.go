package registry

import (
	"crypto/ed25519"

	"github.com/mdaeva/registry-server/pkg/solana"
)

var reopenAccountInstructionDiscriminator = []byte{5, 177, 67, 216, 10, 118, 229, 41}

type ReopenAccountInstructionArgs struct {
	MaxDataSize uint32
}

type ReopenAccountInstructionAccounts struct {
	Sender            ed25519.PublicKey
	Bump              ed25519.PublicKey
	Config            ed25519.PublicKey
	UserId            ed25519.PublicKey
	UserAccount       ed25519.PublicKey
	UserRotationState ed25519.PublicKey
}

func NewReopenAccountInstruction(
	accounts *ReopenAccountInstructionAccounts,
	args *ReopenAccountInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, 8+4)

	putDiscriminator(data, reopenAccountInstructionDiscriminator, &offset)
	putUint32(data, args.MaxDataSize, &offset)

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
				PublicKey: accounts.Bump,
			},
			{
				PublicKey: accounts.Config,
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
