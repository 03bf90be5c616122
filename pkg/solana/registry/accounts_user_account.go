package registry

import (
	"bytes"
	"fmt"
)

const (
	// Minimum serialized size (empty data string).
	UserAccountMinSize = (8 + // discriminator
		4 + // data length prefix
		8 + // nonce
		4) // max_size
)

var UserAccountDiscriminator = []byte{211, 33, 136, 16, 186, 110, 242, 127}

// UserAccount holds a user's encrypted payload. Keyed by the numeric user id,
// not the wallet, so ownership rotation doesn't move the data.
type UserAccount struct {
	// Encrypted user data
	Data string
	// Encryption nonce, stored verbatim as supplied by the writer
	Nonce uint64
	// Allocated storage capacity, fixed at creation
	MaxSize uint32
}

func (obj *UserAccount) Marshal() []byte {
	data := make([]byte, UserAccountMinSize+len(obj.Data))

	var offset int
	putDiscriminator(data, UserAccountDiscriminator, &offset)
	putString(data, obj.Data, &offset)
	putUint64(data, obj.Nonce, &offset)
	putUint32(data, obj.MaxSize, &offset)

	return data
}

func (obj *UserAccount) Unmarshal(data []byte) error {
	if len(data) < UserAccountMinSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, UserAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	if !getString(data, &obj.Data, &offset) {
		return ErrInvalidAccountData
	}
	if len(data) < offset+12 {
		return ErrInvalidAccountData
	}
	getUint64(data, &obj.Nonce, &offset)
	getUint32(data, &obj.MaxSize, &offset)

	return nil
}

func (obj *UserAccount) String() string {
	return fmt.Sprintf(
		"UserAccount{data_len=%d,nonce=%d,max_size=%d}",
		len(obj.Data),
		obj.Nonce,
		obj.MaxSize,
	)
}
