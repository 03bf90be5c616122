package registry

import (
	"bytes"
	"fmt"
)

const (
	UserIdAccountSize = (8 + // discriminator
		4 + // id
		1 + // is_open
		1 + // is_activated
		1 + // account_bump
		1) // rotation_state_bump
)

var UserIdAccountDiscriminator = []byte{41, 242, 241, 112, 148, 47, 120, 243}

// UserIdAccount maps a wallet to its stable numeric id. The record is created
// once and never deleted; the data account keyed by Id can come and go.
type UserIdAccount struct {
	Id                uint32
	IsOpen            bool
	IsActivated       bool
	AccountBump       uint8
	RotationStateBump uint8
}

func (obj *UserIdAccount) Marshal() []byte {
	data := make([]byte, UserIdAccountSize)

	var offset int
	putDiscriminator(data, UserIdAccountDiscriminator, &offset)
	putUint32(data, obj.Id, &offset)
	putBool(data, obj.IsOpen, &offset)
	putBool(data, obj.IsActivated, &offset)
	putUint8(data, obj.AccountBump, &offset)
	putUint8(data, obj.RotationStateBump, &offset)

	return data
}

func (obj *UserIdAccount) Unmarshal(data []byte) error {
	if len(data) < UserIdAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, UserIdAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	getUint32(data, &obj.Id, &offset)
	getBool(data, &obj.IsOpen, &offset)
	getBool(data, &obj.IsActivated, &offset)
	getUint8(data, &obj.AccountBump, &offset)
	getUint8(data, &obj.RotationStateBump, &offset)

	return nil
}

func (obj *UserIdAccount) String() string {
	return fmt.Sprintf(
		"UserId{id=%d,is_open=%v,is_activated=%v,account_bump=%d,rotation_state_bump=%d}",
		obj.Id,
		obj.IsOpen,
		obj.IsActivated,
		obj.AccountBump,
		obj.RotationStateBump,
	)
}
