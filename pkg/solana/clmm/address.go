package clmm

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/mr-tron/base58"

	"github.com/mdaeva/registry-server/pkg/solana"
)

var (
	AmmConfigPrefix        = []byte("amm_config")
	PoolStatePrefix        = []byte("pool")
	ObservationStatePrefix = []byte("observation")
	PoolVaultPrefix        = []byte("pool_vault")
)

type GetAmmConfigAddressArgs struct {
	Index uint16
}

func GetAmmConfigAddress(args *GetAmmConfigAddressArgs) (ed25519.PublicKey, uint8, error) {
	seed := make([]byte, 2)
	binary.LittleEndian.PutUint16(seed, args.Index)

	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		AmmConfigPrefix,
		seed,
	)
}

type GetPoolStateAddressArgs struct {
	AmmConfig ed25519.PublicKey
	// Mints in sorted order, see SortMints
	Token0Mint ed25519.PublicKey
	Token1Mint ed25519.PublicKey
}

func GetPoolStateAddress(args *GetPoolStateAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		PoolStatePrefix,
		args.AmmConfig,
		args.Token0Mint,
		args.Token1Mint,
	)
}

type GetObservationStateAddressArgs struct {
	PoolState ed25519.PublicKey
}

func GetObservationStateAddress(args *GetObservationStateAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		ObservationStatePrefix,
		args.PoolState,
	)
}

type GetPoolVaultAddressArgs struct {
	PoolState ed25519.PublicKey
	TokenMint ed25519.PublicKey
}

func GetPoolVaultAddress(args *GetPoolVaultAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		PoolVaultPrefix,
		args.PoolState,
		args.TokenMint,
	)
}

// AreMintsSorted reports whether two mints are in canonical pool order. Order
// is by base58 representation, matching how pools are keyed.
func AreMintsSorted(mintA, mintB ed25519.PublicKey) bool {
	return base58.Encode(mintA) <= base58.Encode(mintB)
}

// SortMints returns the pair in canonical pool order.
func SortMints(mintA, mintB ed25519.PublicKey) (ed25519.PublicKey, ed25519.PublicKey) {
	if AreMintsSorted(mintA, mintB) {
		return mintA, mintB
	}
	return mintB, mintA
}
