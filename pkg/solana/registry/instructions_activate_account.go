package registry

import (
	"crypto/ed25519"

	"github.com/mdaeva/registry-server/pkg/solana"
)

var activateAccountInstructionDiscriminator = []byte{128, 58, 116, 119, 46, 157, 217, 89}

type ActivateAccountInstructionArgs struct {
	// The wallet whose account gets activated. The fee is always paid by the
	// sender, which allows sponsored activation.
	User ed25519.PublicKey
}

type ActivateAccountInstructionAccounts struct {
	TokenProgram     ed25519.PublicKey
	Sender           ed25519.PublicKey
	Bump             ed25519.PublicKey
	Config           ed25519.PublicKey
	UserId           ed25519.PublicKey
	RevenueMint      ed25519.PublicKey
	RevenueSenderAta ed25519.PublicKey
	RevenueAppAta    ed25519.PublicKey
}

func NewActivateAccountInstruction(
	accounts *ActivateAccountInstructionAccounts,
	args *ActivateAccountInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, 8+32)

	putDiscriminator(data, activateAccountInstructionDiscriminator, &offset)
	putKey(data, args.User, &offset)

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		Data: data,

		Accounts: []solana.AccountMeta{
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
				PublicKey: accounts.RevenueMint,
			},
			{
				PublicKey:  accounts.RevenueSenderAta,
				IsWritable: true,
			},
			{
				PublicKey:  accounts.RevenueAppAta,
				IsWritable: true,
			},
		},
	}
}
