package registry

import (
	"crypto/ed25519"

	"github.com/mdaeva/registry-server/pkg/solana"
)

var withdrawRevenueInstructionDiscriminator = []byte{58, 241, 152, 184, 104, 150, 169, 119}

type WithdrawRevenueInstructionArgs struct {
	// Amount to withdraw. Nil withdraws the full vault balance.
	Amount *uint64
}

type WithdrawRevenueInstructionAccounts struct {
	TokenProgram        ed25519.PublicKey
	Sender              ed25519.PublicKey
	Recipient           ed25519.PublicKey
	Bump                ed25519.PublicKey
	Config              ed25519.PublicKey
	RevenueMint         ed25519.PublicKey
	RevenueRecipientAta ed25519.PublicKey
	RevenueAppAta       ed25519.PublicKey
}

func NewWithdrawRevenueInstruction(
	accounts *WithdrawRevenueInstructionAccounts,
	args *WithdrawRevenueInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, 8+optionSize(args.Amount != nil, 8))

	putDiscriminator(data, withdrawRevenueInstructionDiscriminator, &offset)
	putOptionalUint64(data, args.Amount, &offset)

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		Data: data[:offset],

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
				PublicKey: accounts.Recipient,
			},
			{
				PublicKey: accounts.Bump,
			},
			{
				PublicKey: accounts.Config,
			},
			{
				PublicKey: accounts.RevenueMint,
			},
			{
				PublicKey:  accounts.RevenueRecipientAta,
				IsWritable: true,
			},
			{
				PublicKey:  accounts.RevenueAppAta,
				IsWritable: true,
			},
		},
	}
}
