package dexadapter

import (
	"bytes"
	"fmt"
)

const (
	BumpAccountSize = (8 + // discriminator
		1 + // config
		1) // rotation_state
)

var BumpAccountDiscriminator = []byte{194, 87, 137, 28, 114, 203, 28, 178}

// BumpAccount caches PDA bumps so they don't have to be recomputed on-chain.
type BumpAccount struct {
	Config        uint8
	RotationState uint8
}

func (obj *BumpAccount) Marshal() []byte {
	data := make([]byte, BumpAccountSize)

	var offset int
	putDiscriminator(data, BumpAccountDiscriminator, &offset)
	putUint8(data, obj.Config, &offset)
	putUint8(data, obj.RotationState, &offset)

	return data
}

func (obj *BumpAccount) Unmarshal(data []byte) error {
	if len(data) < BumpAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, BumpAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	getUint8(data, &obj.Config, &offset)
	getUint8(data, &obj.RotationState, &offset)

	return nil
}

func (obj *BumpAccount) String() string {
	return fmt.Sprintf(
		"Bump{config=%d,rotation_state=%d}",
		obj.Config,
		obj.RotationState,
	)
}
