package processor

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/mdaeva/registry-server/pkg/registry"
)

// AssetItem is an amount of a specific mint.
type AssetItem struct {
	Amount uint64
	Asset  string
}

// Range is an inclusive size interval.
type Range struct {
	Min uint32
	Max uint32
}

type InitArgs struct {
	// Required: the mint and amount of the one-time activation fee
	RegistrationFee AssetItem

	// Nil falls back to DefaultRotationTimeout
	RotationTimeout *uint32

	// Nil falls back to [DefaultMinDataSize, DefaultMaxDataSize]
	DataSizeRange *Range
}

// Init performs one-time program initialization. The sender becomes the
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
	if err != registry.ErrNotFound {
		log.WithError(err).Warn("failure loading config")
		return err
	}

	config := &registry.ConfigRecord{
		Admin:           sender,
		RotationTimeout: DefaultRotationTimeout,
		FeeAmount:       args.RegistrationFee.Amount,
		FeeAsset:        args.RegistrationFee.Asset,
		MinDataSize:     DefaultMinDataSize,
		MaxDataSize:     DefaultMaxDataSize,
	}
	if args.RotationTimeout != nil {
		config.RotationTimeout = *args.RotationTimeout
	}
	if args.DataSizeRange != nil {
		config.MinDataSize = args.DataSizeRange.Min
		config.MaxDataSize = args.DataSizeRange.Max
	}

	adminRotation := &registry.RotationRecord{
		Key: registry.AdminRotationKey,
	}
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

	IsPaused        *bool
	RotationTimeout *uint32
	RegistrationFee *AssetItem
	DataSizeRange   *Range
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

	if args.IsPaused != nil {
		config.IsPaused = *args.IsPaused
	}
	if args.RotationTimeout != nil {
		config.RotationTimeout = *args.RotationTimeout
	}
	if args.RegistrationFee != nil {
		config.FeeAmount = args.RegistrationFee.Amount
		config.FeeAsset = args.RegistrationFee.Asset
	}
	if args.DataSizeRange != nil {
		if args.DataSizeRange.Min > args.DataSizeRange.Max {
			return ErrOutOfRange
		}
		config.MinDataSize = args.DataSizeRange.Min
		config.MaxDataSize = args.DataSizeRange.Max
	}

	var adminRotation *registry.RotationRecord
	if args.Admin != nil {
		adminRotation, err = p.store.GetRotation(ctx, registry.AdminRotationKey)
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

	adminRotation, err := p.store.GetRotation(ctx, registry.AdminRotationKey)
	if err == registry.ErrNotFound {
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

// WithdrawRevenue transfers collected fees from the revenue vault to a
// recipient. Admin only. A nil amount withdraws the full vault balance.
func (p *Processor) WithdrawRevenue(ctx context.Context, sender, recipient string, amount *uint64) error {
	log := p.log.WithFields(logrus.Fields{
		"method":    "WithdrawRevenue",
		"recipient": recipient,
	})

	config, err := p.GetConfig(ctx)
	if err != nil {
		return err
	}

	if sender != config.Admin {
		return ErrUnauthorized
	}

	toWithdraw := uint64(0)
	if amount != nil {
		toWithdraw = *amount
	} else {
		toWithdraw, err = p.tokens.Balance(ctx, config.FeeAsset, p.revenueVault)
		if err != nil {
			log.WithError(err).Warn("failure reading revenue vault balance")
			return err
		}
	}

	if toWithdraw == 0 {
		return nil
	}

	return p.tokens.Transfer(ctx, config.FeeAsset, p.revenueVault, recipient, toWithdraw)
}
