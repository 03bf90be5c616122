package registry

import (
	"crypto/ed25519"

	"github.com/mdaeva/registry-server/pkg/solana"
)

var createAccountInstructionDiscriminator = []byte{99, 20, 130, 119, 196, 235, 131, 149}

const CreateAccountInstructionArgsSize = 4 // max_data_size

type CreateAccountInstructionArgs struct {
	MaxDataSize uint32
}

type CreateAccountInstructionAccounts struct {
	Sender            ed25519.PublicKey
	Bump              ed25519.PublicKey
	Config            ed25519.PublicKey
	UserCounter       ed25519.PublicKey
	UserId            ed25519.PublicKey
	UserAccount       ed25519.PublicKey
	UserRotationState ed25519.PublicKey
}

func NewCreateAccountInstruction(
	accounts *CreateAccountInstructionAccounts,
	args *CreateAccountInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, 8+CreateAccountInstructionArgsSize)

	putDiscriminator(data, createAccountInstructionDiscriminator, &offset)
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
				PublicKey:  accounts.UserCounter,
				IsWritable: true,
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
