package registry

import (
	"github.com/mdaeva/registry-server/pkg/rotation"
)

// AdminRotationKey addresses the app admin's rotation state. User ids start
// at 1, so the zero key can never collide with a user record.
const AdminRotationKey uint32 = 0

// RotationRecord is a two-step ownership handoff, keyed by numeric user id
// or by AdminRotationKey for the app admin.
type RotationRecord struct {
	Id uint64

	Key uint32

	rotation.State
}

func (r *RotationRecord) Validate() error {
	return r.State.Validate()
}

func (r *RotationRecord) Clone() RotationRecord {
	return RotationRecord{
		Id:    r.Id,
		Key:   r.Key,
		State: r.State.Clone(),
	}
}

func (r *RotationRecord) CopyTo(dst *RotationRecord) {
	dst.Id = r.Id
	dst.Key = r.Key
	dst.State = r.State.Clone()
}
