package dexadapter

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

const (
	// Minimum serialized size (no registry linked).
	ConfigAccountMinSize = (8 + // discriminator
		32 + // admin
		32 + // dex
		1 + // registry presence tag
		1 + // is_paused
		4) // rotation_timeout
)

var ConfigAccountDiscriminator = []byte{35, 43, 191, 197, 211, 171, 233, 201}

// ConfigAccount is the adapter-wide singleton configuration.
type ConfigAccount struct {
	Admin ed25519.PublicKey
	// Dex is the AMM program swaps are routed through
	Dex ed25519.PublicKey
	// Registry program used by swap-and-activate, nil when not linked
	Registry        ed25519.PublicKey
	IsPaused        bool
	RotationTimeout uint32
}

func (obj *ConfigAccount) Marshal() []byte {
	data := make([]byte, 8+32+32+optionSize(obj.Registry != nil, 32)+1+4)

	var offset int
	putDiscriminator(data, ConfigAccountDiscriminator, &offset)
	putKey(data, obj.Admin, &offset)
	putKey(data, obj.Dex, &offset)
	putOptionalKey(data, obj.Registry, &offset)
	putBool(data, obj.IsPaused, &offset)
	putUint32(data, obj.RotationTimeout, &offset)

	return data
}

func (obj *ConfigAccount) Unmarshal(data []byte) error {
	if len(data) < ConfigAccountMinSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, ConfigAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	getKey(data, &obj.Admin, &offset)
	getKey(data, &obj.Dex, &offset)
	getOptionalKey(data, &obj.Registry, &offset)
	if len(data) < offset+5 {
		return ErrInvalidAccountData
	}
	getBool(data, &obj.IsPaused, &offset)
	getUint32(data, &obj.RotationTimeout, &offset)

	return nil
}

func (obj *ConfigAccount) String() string {
	registry := "none"
	if obj.Registry != nil {
		registry = base58.Encode(obj.Registry)
	}
	return fmt.Sprintf(
		"Config{admin=%s,dex=%s,registry=%s,is_paused=%v,rotation_timeout=%d}",
		base58.Encode(obj.Admin),
		base58.Encode(obj.Dex),
		registry,
		obj.IsPaused,
		obj.RotationTimeout,
	)
}
