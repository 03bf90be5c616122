package clmm

import (
	"crypto/ed25519"
	"errors"

	"github.com/mr-tron/base58"
)

var ErrInvalidAccountData = errors.New("unexpected account data")

var (
	PROGRAM_ADDRESS = mustBase58Decode("DRayAUgENGQBKVaX8owNhgzkEDyoHTGVEGHVJT1E9pfH")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
