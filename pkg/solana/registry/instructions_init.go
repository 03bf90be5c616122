package registry

import (
	"crypto/ed25519"

	"github.com/mdaeva/registry-server/pkg/solana"
)

var initInstructionDiscriminator = []byte{220, 59, 207, 236, 108, 250, 47, 100}

type InitInstructionArgs struct {
	RotationTimeout        *uint32
	AccountRegistrationFee *AssetItem
	AccountDataSizeRange   *Range
}

type InitInstructionAccounts struct {
	TokenProgram        ed25519.PublicKey
	Sender              ed25519.PublicKey
	Bump                ed25519.PublicKey
	Config              ed25519.PublicKey
	UserCounter         ed25519.PublicKey
	AdminRotationState  ed25519.PublicKey
	RevenueMint         ed25519.PublicKey
	RevenueAppAta       ed25519.PublicKey
}

func NewInitInstruction(
	accounts *InitInstructionAccounts,
	args *InitInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, 8+
		optionSize(args.RotationTimeout != nil, 4)+
		optionSize(args.AccountRegistrationFee != nil, AssetItemSize)+
		optionSize(args.AccountDataSizeRange != nil, RangeSize))

	putDiscriminator(data, initInstructionDiscriminator, &offset)
	putOptionalUint32(data, args.RotationTimeout, &offset)
	putOptionalAssetItem(data, args.AccountRegistrationFee, &offset)
	putOptionalRange(data, args.AccountDataSizeRange, &offset)

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
				PublicKey:  accounts.Bump,
				IsWritable: true,
			},
			{
				PublicKey:  accounts.Config,
				IsWritable: true,
			},
			{
				PublicKey:  accounts.UserCounter,
				IsWritable: true,
			},
			{
				PublicKey:  accounts.AdminRotationState,
				IsWritable: true,
			},
			{
				PublicKey: accounts.RevenueMint,
			},
			{
				PublicKey:  accounts.RevenueAppAta,
				IsWritable: true,
			},
		},
	}
}
