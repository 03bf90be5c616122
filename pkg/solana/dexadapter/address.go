package dexadapter

import (
	"crypto/ed25519"

	"github.com/mdaeva/registry-server/pkg/solana"
)

var (
	BumpPrefix               = []byte("bump")
	ConfigPrefix             = []byte("config")
	AdminRotationStatePrefix = []byte("admin_rotation_state")
	RoutePrefix              = []byte("route")
)

func GetBumpAddress() (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(PROGRAM_ID, BumpPrefix)
}

func GetConfigAddress() (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(PROGRAM_ID, ConfigPrefix)
}

func GetAdminRotationStateAddress() (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(PROGRAM_ID, AdminRotationStatePrefix)
}

type GetRouteAddressArgs struct {
	// Endpoints of the route as supplied on save, not sorted
	MintFirst ed25519.PublicKey
	MintLast  ed25519.PublicKey
}

func GetRouteAddress(args *GetRouteAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		RoutePrefix,
		args.MintFirst,
		args.MintLast,
	)
}
