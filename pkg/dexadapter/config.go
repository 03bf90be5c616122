// Package dexadapter defines the record model and store for the swap
// adapter: its configuration, the admin rotation state and the stored
// multi-hop swap routes.
package dexadapter

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/mdaeva/registry-server/pkg/pointer"
)

// ConfigRecord is the adapter's global configuration.
type ConfigRecord struct {
	Id uint64

	Admin string

	// The external AMM program executing individual swap legs
	Dex string

	// Nil when the adapter is not linked to a registry, which disables
	// swap-and-activate.
	Registry *string

	IsPaused bool

	RotationTimeout uint32
}

func (r *ConfigRecord) Validate() error {
	if len(r.Admin) == 0 {
		return errors.New("admin is required")
	}

	if len(r.Dex) == 0 {
		return errors.New("dex program is required")
	}

	if r.Registry != nil && len(*r.Registry) == 0 {
		return errors.New("registry cannot be empty when set")
	}

	return nil
}

func (r *ConfigRecord) Clone() ConfigRecord {
	return ConfigRecord{
		Id:              r.Id,
		Admin:           r.Admin,
		Dex:             r.Dex,
		Registry:        pointer.StringCopy(r.Registry),
		IsPaused:        r.IsPaused,
		RotationTimeout: r.RotationTimeout,
	}
}

func (r *ConfigRecord) CopyTo(dst *ConfigRecord) {
	dst.Id = r.Id
	dst.Admin = r.Admin
	dst.Dex = r.Dex
	dst.Registry = pointer.StringCopy(r.Registry)
	dst.IsPaused = r.IsPaused
	dst.RotationTimeout = r.RotationTimeout
}

func (r *ConfigRecord) String() string {
	registry := "nil"
	if r.Registry != nil {
		registry = *r.Registry
	}
	return fmt.Sprintf(
		"ConfigRecord{admin=%s, dex=%s, registry=%s, is_paused=%v, rotation_timeout=%d}",
		r.Admin,
		r.Dex,
		registry,
		r.IsPaused,
		r.RotationTimeout,
	)
}
