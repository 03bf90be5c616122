package registry

import (
	"crypto/ed25519"

	"github.com/mdaeva/registry-server/pkg/solana"
)

var requestAccountRotationInstructionDiscriminator = []byte{135, 32, 126, 239, 45, 205, 141, 221}

type RequestAccountRotationInstructionArgs struct {
	NewOwner ed25519.PublicKey
}

type RequestAccountRotationInstructionAccounts struct {
	Sender            ed25519.PublicKey
	Bump              ed25519.PublicKey
	Config            ed25519.PublicKey
	UserId            ed25519.PublicKey
	UserRotationState ed25519.PublicKey
}

func NewRequestAccountRotationInstruction(
	accounts *RequestAccountRotationInstructionAccounts,
	args *RequestAccountRotationInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, 8+32)

	putDiscriminator(data, requestAccountRotationInstructionDiscriminator, &offset)
	putKey(data, args.NewOwner, &offset)

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
				PublicKey: accounts.Config,
			},
			{
				PublicKey: accounts.UserId,
			},
			{
				PublicKey:  accounts.UserRotationState,
				IsWritable: true,
			},
		},
	}
}
