package registry

import (
	"errors"
)

// DataRecord holds the user's encrypted payload. Keyed by the numeric id
// rather than the wallet so the payload survives ownership rotation.
// Destroyed on close and recreated on reopen with a possibly different
// capacity.
type DataRecord struct {
	Id uint64

	UserId uint32

	// Ciphertext blob, encrypted externally
	Data string

	// Caller-supplied encryption nonce, stored verbatim. The store does not
	// enforce monotonicity.
	Nonce uint64

	// Allocated capacity, fixed at creation
	MaxSize uint32
}

func (r *DataRecord) Validate() error {
	if r.UserId == 0 {
		return errors.New("user id must be allocated")
	}

	if r.MaxSize == 0 {
		return errors.New("max size must be set")
	}

	if uint32(len(r.Data)) > r.MaxSize {
		return errors.New("data exceeds allocated capacity")
	}

	return nil
}

func (r *DataRecord) Clone() DataRecord {
	return DataRecord{
		Id:      r.Id,
		UserId:  r.UserId,
		Data:    r.Data,
		Nonce:   r.Nonce,
		MaxSize: r.MaxSize,
	}
}

func (r *DataRecord) CopyTo(dst *DataRecord) {
	dst.Id = r.Id
	dst.UserId = r.UserId
	dst.Data = r.Data
	dst.Nonce = r.Nonce
	dst.MaxSize = r.MaxSize
}
