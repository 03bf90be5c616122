package registry

import (
	"errors"
)

// ConfigRecord is the program-wide singleton configuration. Mutated only by
// the current admin.
type ConfigRecord struct {
	Id uint64

	Admin string

	// Global kill switch for user-facing operations
	IsPaused bool

	// Lifetime of a pending rotation request, in seconds
	RotationTimeout uint32

	// One-time activation fee
	FeeAmount uint64
	FeeAsset  string

	// Allowed payload capacity bounds, inclusive
	MinDataSize uint32
	MaxDataSize uint32
}

func (r *ConfigRecord) Validate() error {
	if len(r.Admin) == 0 {
		return errors.New("admin address is required")
	}

	if len(r.FeeAsset) == 0 {
		return errors.New("fee asset is required")
	}

	if r.MinDataSize > r.MaxDataSize {
		return errors.New("data size range is inverted")
	}

	return nil
}

func (r *ConfigRecord) Clone() ConfigRecord {
	return ConfigRecord{
		Id:              r.Id,
		Admin:           r.Admin,
		IsPaused:        r.IsPaused,
		RotationTimeout: r.RotationTimeout,
		FeeAmount:       r.FeeAmount,
		FeeAsset:        r.FeeAsset,
		MinDataSize:     r.MinDataSize,
		MaxDataSize:     r.MaxDataSize,
	}
}

func (r *ConfigRecord) CopyTo(dst *ConfigRecord) {
	dst.Id = r.Id
	dst.Admin = r.Admin
	dst.IsPaused = r.IsPaused
	dst.RotationTimeout = r.RotationTimeout
	dst.FeeAmount = r.FeeAmount
	dst.FeeAsset = r.FeeAsset
	dst.MinDataSize = r.MinDataSize
	dst.MaxDataSize = r.MaxDataSize
}

// IsSizeAllowed reports whether a requested payload capacity is within the
// configured bounds, inclusive at both ends.
func (r *ConfigRecord) IsSizeAllowed(size uint32) bool {
	return size >= r.MinDataSize && size <= r.MaxDataSize
}
