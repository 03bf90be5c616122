package registry

import (
	"bytes"
	"fmt"
)

const (
	UserCounterAccountSize = (8 + // discriminator
		4) // last_user_id
)

var UserCounterAccountDiscriminator = []byte{154, 114, 103, 93, 77, 57, 80, 227}

// UserCounterAccount allocates stable numeric user ids. The counter only ever
// moves forward; ids are never reused.
type UserCounterAccount struct {
	LastUserId uint32
}

func (obj *UserCounterAccount) Marshal() []byte {
	data := make([]byte, UserCounterAccountSize)

	var offset int
	putDiscriminator(data, UserCounterAccountDiscriminator, &offset)
	putUint32(data, obj.LastUserId, &offset)

	return data
}

func (obj *UserCounterAccount) Unmarshal(data []byte) error {
	if len(data) < UserCounterAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, UserCounterAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	getUint32(data, &obj.LastUserId, &offset)

	return nil
}

func (obj *UserCounterAccount) String() string {
	return fmt.Sprintf("UserCounter{last_user_id=%d}", obj.LastUserId)
}
