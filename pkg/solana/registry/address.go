package registry

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/mdaeva/registry-server/pkg/solana"
)

var (
	BumpPrefix               = []byte("bump")
	ConfigPrefix             = []byte("config")
	UserCounterPrefix        = []byte("user_counter")
	UserIdPrefix             = []byte("user_id")
	UserAccountPrefix        = []byte("user_account")
	UserRotationStatePrefix  = []byte("user_rotation_state")
	AdminRotationStatePrefix = []byte("admin_rotation_state")
)

func GetBumpAddress() (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(PROGRAM_ID, BumpPrefix)
}

func GetConfigAddress() (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(PROGRAM_ID, ConfigPrefix)
}

func GetUserCounterAddress() (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(PROGRAM_ID, UserCounterPrefix)
}

func GetAdminRotationStateAddress() (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(PROGRAM_ID, AdminRotationStatePrefix)
}

type GetUserIdAddressArgs struct {
	User ed25519.PublicKey
}

func GetUserIdAddress(args *GetUserIdAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		UserIdPrefix,
		args.User,
	)
}

type GetUserAccountAddressArgs struct {
	Id uint32
}

func GetUserAccountAddress(args *GetUserAccountAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		UserAccountPrefix,
		uint32Seed(args.Id),
	)
}

type GetUserRotationStateAddressArgs struct {
	Id uint32
}

func GetUserRotationStateAddress(args *GetUserRotationStateAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		UserRotationStatePrefix,
		uint32Seed(args.Id),
	)
}

func uint32Seed(v uint32) []byte {
	seed := make([]byte, 4)
	binary.LittleEndian.PutUint32(seed, v)
	return seed
}
