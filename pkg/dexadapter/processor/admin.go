package processor

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/mdaeva/registry-server/pkg/dexadapter"
	"github.com/mdaeva/registry-server/pkg/pointer"
)

type InitArgs struct {
	// Required: the external AMM program executing swap legs
	Dex string

	// Optional link to a registry, enables swap-and-activate
	Registry *string

	// Nil falls back to DefaultRotationTimeout
	RotationTimeout *uint32
}

// Init performs one-time adapter initialization. The sender becomes the
// admin and the admin rotation state is anchored to them.
func (p *Processor) Init(ctx context.Context, sender string, args *InitArgs) error {
	log := p.log.WithFields(logrus.Fields{
		"method": "Init",
		"sender": sender,
	})

	_, err := p.store.GetConfig(ctx)
	if err == nil {
		return ErrAlreadyInitialized
	}
	if err != dexadapter.ErrNotFound {
		log.WithError(err).Warn("failure loading config")
		return err
	}

	config := &dexadapter.ConfigRecord{
		Admin:           sender,
		Dex:             args.Dex,
		Registry:        pointer.StringCopy(args.Registry),
		RotationTimeout: DefaultRotationTimeout,
	}
	if args.RotationTimeout != nil {
		config.RotationTimeout = *args.RotationTimeout
	}

	adminRotation := &dexadapter.RotationRecord{}
	adminRotation.Owner = sender

	return p.store.ExecuteInTx(ctx, func(ctx context.Context) error {
		if err := p.store.SaveConfig(ctx, config); err != nil {
			return err
		}
		return p.store.SaveRotation(ctx, adminRotation)
	})
}

type UpdateConfigArgs struct {
	// A new admin does not take effect directly: it stages a rotation
	// request the new admin must confirm.
	Admin *string

	Dex             *string
	Registry        *string
	IsPaused        *bool
	RotationTimeout *uint32
}

// UpdateConfig applies configuration changes. Admin only.
func (p *Processor) UpdateConfig(ctx context.Context, sender string, args *UpdateConfigArgs) error {
	config, err := p.GetConfig(ctx)
	if err != nil {
		return err
	}

	if sender != config.Admin {
		return ErrUnauthorized
	}

	if args.Dex != nil {
		config.Dex = *args.Dex
	}
	if args.Registry != nil {
		config.Registry = pointer.StringCopy(args.Registry)
	}
	if args.IsPaused != nil {
		config.IsPaused = *args.IsPaused
	}
	if args.RotationTimeout != nil {
		config.RotationTimeout = *args.RotationTimeout
	}

	var adminRotation *dexadapter.RotationRecord
	if args.Admin != nil {
		adminRotation, err = p.store.GetRotation(ctx)
		if err != nil {
			return err
		}
		if err := adminRotation.Request(sender, *args.Admin, p.now(), config.RotationTimeout); err != nil {
			return err
		}
	}

	return p.store.ExecuteInTx(ctx, func(ctx context.Context) error {
		if err := p.store.SaveConfig(ctx, config); err != nil {
			return err
		}
		if adminRotation != nil {
			return p.store.SaveRotation(ctx, adminRotation)
		}
		return nil
	})
}

// ConfirmAdminRotation completes a staged admin handoff. Only the pending
// new admin may confirm, and only before the request expires.
func (p *Processor) ConfirmAdminRotation(ctx context.Context, sender string) error {
	config, err := p.GetConfig(ctx)
	if err != nil {
		return err
	}

	adminRotation, err := p.store.GetRotation(ctx)
	if err == dexadapter.ErrNotFound {
		return ErrNoPendingRotation
	}
	if err != nil {
		return err
	}

	if err := adminRotation.Confirm(sender, p.now()); err != nil {
		return err
	}

	config.Admin = sender

	return p.store.ExecuteInTx(ctx, func(ctx context.Context) error {
		if err := p.store.SaveConfig(ctx, config); err != nil {
			return err
		}
		return p.store.SaveRotation(ctx, adminRotation)
	})
}

// SaveRoute stores the hop list for the unsorted (first, last) mint pair,
// replacing any previous route for the same pair. Admin only. Whether the
// hops actually connect the two mints is the admin's responsibility.
func (p *Processor) SaveRoute(ctx context.Context, sender, mintFirst, mintLast string, hops []dexadapter.RouteHop) error {
	config, err := p.GetConfig(ctx)
	if err != nil {
		return err
	}

	if sender != config.Admin {
		return ErrUnauthorized
	}

	record := &dexadapter.RouteRecord{
		MintFirst: mintFirst,
		MintLast:  mintLast,
		Hops:      hops,
	}

	if err := p.store.SaveRoute(ctx, record); err != nil {
		return err
	}

	p.routeCache.Clear()

	return nil
}
