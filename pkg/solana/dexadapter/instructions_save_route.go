package dexadapter

import (
	"crypto/ed25519"

	"github.com/mdaeva/registry-server/pkg/solana"
)

var saveRouteInstructionDiscriminator = []byte{159, 32, 189, 85, 230, 5, 208, 143}

type SaveRouteInstructionArgs struct {
	MintFirst ed25519.PublicKey
	MintLast  ed25519.PublicKey
	Route     []RouteItem
}

type SaveRouteInstructionAccounts struct {
	Sender ed25519.PublicKey
	Bump   ed25519.PublicKey
	Config ed25519.PublicKey
	Route  ed25519.PublicKey
}

func NewSaveRouteInstruction(
	accounts *SaveRouteInstructionAccounts,
	args *SaveRouteInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, 8+32+32+routeItemsSize(args.Route))

	putDiscriminator(data, saveRouteInstructionDiscriminator, &offset)
	putKey(data, args.MintFirst, &offset)
	putKey(data, args.MintLast, &offset)
	putRouteItems(data, args.Route, &offset)

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
				PublicKey:  accounts.Route,
				IsWritable: true,
			},
		},
	}
}
