package registry

import (
	"bytes"
	"fmt"
)

const (
	BumpAccountSize = (8 + // discriminator
		1 + // config
		1 + // user_counter
		1) // rotation_state
)

var BumpAccountDiscriminator = []byte{16, 214, 115, 207, 20, 247, 184, 128}

// BumpAccount stores bump seeds for the app's singleton accounts.
type BumpAccount struct {
	Config        uint8
	UserCounter   uint8
	RotationState uint8
}

func (obj *BumpAccount) Marshal() []byte {
	data := make([]byte, BumpAccountSize)

	var offset int
	putDiscriminator(data, BumpAccountDiscriminator, &offset)
	putUint8(data, obj.Config, &offset)
	putUint8(data, obj.UserCounter, &offset)
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
	getUint8(data, &obj.UserCounter, &offset)
	getUint8(data, &obj.RotationState, &offset)

	return nil
}

func (obj *BumpAccount) String() string {
	return fmt.Sprintf(
		"Bump{config=%d,user_counter=%d,rotation_state=%d}",
		obj.Config,
		obj.UserCounter,
		obj.RotationState,
	)
}
