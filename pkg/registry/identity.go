package registry

import (
	"errors"
)

// IdentityRecord maps a wallet to its stable numeric id. Assigned once on
// first account creation and never deleted; the id survives close/reopen
// cycles and ownership rotation moves only the Owner column.
type IdentityRecord struct {
	Id uint64

	Owner  string
	UserId uint32

	// Whether a data record currently exists for this id
	IsOpen bool

	// Whether the one-time registration fee has been paid
	IsActivated bool
}

func (r *IdentityRecord) Validate() error {
	if len(r.Owner) == 0 {
		return errors.New("owner address is required")
	}

	if r.UserId == 0 {
		return errors.New("user id must be allocated")
	}

	return nil
}

func (r *IdentityRecord) Clone() IdentityRecord {
	return IdentityRecord{
		Id:          r.Id,
		Owner:       r.Owner,
		UserId:      r.UserId,
		IsOpen:      r.IsOpen,
		IsActivated: r.IsActivated,
	}
}

func (r *IdentityRecord) CopyTo(dst *IdentityRecord) {
	dst.Id = r.Id
	dst.Owner = r.Owner
	dst.UserId = r.UserId
	dst.IsOpen = r.IsOpen
	dst.IsActivated = r.IsActivated
}
