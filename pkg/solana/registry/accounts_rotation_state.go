package registry

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

const (
	// Minimum serialized size (no pending rotation).
	RotationStateMinSize = (8 + // discriminator
		32 + // owner
		1 + // new_owner presence tag
		8) // expiration_date
)

var RotationStateDiscriminator = []byte{173, 83, 106, 140, 2, 64, 93, 114}

// RotationState transfers ownership from one address to another in two steps.
// The same shape is used for the app admin and for user accounts.
type RotationState struct {
	Owner ed25519.PublicKey
	// Nil when no rotation is pending
	NewOwner       ed25519.PublicKey
	ExpirationDate uint64
}

func (obj *RotationState) Marshal() []byte {
	data := make([]byte, 8+32+optionSize(obj.NewOwner != nil, 32)+8)

	var offset int
	putDiscriminator(data, RotationStateDiscriminator, &offset)
	putKey(data, obj.Owner, &offset)
	putOptionalKey(data, obj.NewOwner, &offset)
	putUint64(data, obj.ExpirationDate, &offset)

	return data
}

func (obj *RotationState) Unmarshal(data []byte) error {
	if len(data) < RotationStateMinSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, RotationStateDiscriminator) {
		return ErrInvalidAccountData
	}

	getKey(data, &obj.Owner, &offset)
	getOptionalKey(data, &obj.NewOwner, &offset)
	if len(data) < offset+8 {
		return ErrInvalidAccountData
	}
	getUint64(data, &obj.ExpirationDate, &offset)

	return nil
}

func (obj *RotationState) String() string {
	newOwner := "none"
	if obj.NewOwner != nil {
		newOwner = base58.Encode(obj.NewOwner)
	}
	return fmt.Sprintf(
		"RotationState{owner=%s,new_owner=%s,expiration_date=%d}",
		base58.Encode(obj.Owner),
		newOwner,
		obj.ExpirationDate,
	)
}
