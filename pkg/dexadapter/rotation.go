package dexadapter

import (
	"github.com/mdaeva/registry-server/pkg/rotation"
)

// RotationRecord is the adapter admin's two-step ownership handoff. The
// adapter has no per-user state, so this record is a singleton.
type RotationRecord struct {
	Id uint64

	rotation.State
}

func (r *RotationRecord) Validate() error {
	return r.State.Validate()
}

func (r *RotationRecord) Clone() RotationRecord {
	return RotationRecord{
		Id:    r.Id,
		State: r.State.Clone(),
	}
}

func (r *RotationRecord) CopyTo(dst *RotationRecord) {
	dst.Id = r.Id
	dst.State = r.State.Clone()
}
