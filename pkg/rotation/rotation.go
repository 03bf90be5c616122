// Package rotation implements the two-step ownership handoff shared by the
// app admin, the adapter admin and per-user account ownership. A pending
// request only takes effect once the new owner confirms it, and silently
// lapses after the configured timeout.
package rotation

import (
	"errors"
	"time"

	"github.com/mdaeva/registry-server/pkg/pointer"
)

var (
	ErrUnauthorized      = errors.New("sender is not allowed to act on this rotation")
	ErrNoPendingRotation = errors.New("no pending rotation")
	ErrRotationExpired   = errors.New("rotation request expired")
)

type State struct {
	Owner string
	// Nil when no rotation is pending
	NewOwner       *string
	ExpirationDate uint64
}

// Request stages a handoff to newOwner. Only the current owner may request,
// and a new request overwrites any pending one.
func (s *State) Request(sender, newOwner string, now time.Time, timeout uint32) error {
	if sender != s.Owner {
		return ErrUnauthorized
	}

	s.NewOwner = pointer.String(newOwner)
	s.ExpirationDate = uint64(now.Unix()) + uint64(timeout)

	return nil
}

// Confirm completes a pending handoff. Only the pending new owner may
// confirm, and expiry is checked here rather than by any background process.
func (s *State) Confirm(sender string, now time.Time) error {
	if s.NewOwner == nil {
		return ErrNoPendingRotation
	}

	if uint64(now.Unix()) > s.ExpirationDate {
		return ErrRotationExpired
	}

	if sender != *s.NewOwner {
		return ErrUnauthorized
	}

	s.Owner = sender
	s.NewOwner = nil
	s.ExpirationDate = 0

	return nil
}

func (s *State) IsPending() bool {
	return s.NewOwner != nil
}

func (s *State) Clone() State {
	return State{
		Owner:          s.Owner,
		NewOwner:       pointer.StringCopy(s.NewOwner),
		ExpirationDate: s.ExpirationDate,
	}
}

func (s *State) Validate() error {
	if len(s.Owner) == 0 {
		return errors.New("owner is required")
	}

	if s.NewOwner != nil && len(*s.NewOwner) == 0 {
		return errors.New("new owner cannot be empty when set")
	}

	return nil
}
