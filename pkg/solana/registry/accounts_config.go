package registry

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

const (
	ConfigAccountSize = (8 + // discriminator
		32 + // admin
		1 + // is_paused
		4 + // rotation_timeout
		AssetItemSize + // registration_fee
		RangeSize) // data_size_range
)

var ConfigAccountDiscriminator = []byte{155, 12, 170, 224, 30, 250, 204, 130}

// ConfigAccount is the program-wide singleton configuration.
type ConfigAccount struct {
	// Admin can update the config and execute privileged instructions
	Admin           ed25519.PublicKey
	IsPaused        bool
	RotationTimeout uint32
	RegistrationFee AssetItem
	DataSizeRange   Range
}

func (obj *ConfigAccount) Marshal() []byte {
	data := make([]byte, ConfigAccountSize)

	var offset int
	putDiscriminator(data, ConfigAccountDiscriminator, &offset)
	putKey(data, obj.Admin, &offset)
	putBool(data, obj.IsPaused, &offset)
	putUint32(data, obj.RotationTimeout, &offset)
	putAssetItem(data, obj.RegistrationFee, &offset)
	putRange(data, obj.DataSizeRange, &offset)

	return data
}

func (obj *ConfigAccount) Unmarshal(data []byte) error {
	if len(data) < ConfigAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, ConfigAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	getKey(data, &obj.Admin, &offset)
	getBool(data, &obj.IsPaused, &offset)
	getUint32(data, &obj.RotationTimeout, &offset)
	getAssetItem(data, &obj.RegistrationFee, &offset)
	getRange(data, &obj.DataSizeRange, &offset)

	return nil
}

func (obj *ConfigAccount) String() string {
	return fmt.Sprintf(
		"Config{admin=%s,is_paused=%v,rotation_timeout=%d,registration_fee=%d:%s,data_size_range=[%d,%d]}",
		base58.Encode(obj.Admin),
		obj.IsPaused,
		obj.RotationTimeout,
		obj.RegistrationFee.Amount,
		base58.Encode(obj.RegistrationFee.Asset),
		obj.DataSizeRange.Min,
		obj.DataSizeRange.Max,
	)
}
