package processor

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/mdaeva/registry-server/pkg/registry"
)

// CreateAccount opens a data account for the sender. A first-time wallet is
// allocated the next numeric id; a wallet whose account was closed reopens
// under its existing id. Ids are never reused.
func (p *Processor) CreateAccount(ctx context.Context, sender string, maxDataSize uint32) (*registry.IdentityRecord, error) {
	log := p.log.WithFields(logrus.Fields{
		"method": "CreateAccount",
		"owner":  sender,
	})

	lock := p.accountLocks.Get([]byte(sender))
	lock.Lock()
	defer lock.Unlock()

	config, err := p.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	if config.IsPaused {
		return nil, ErrPaused
	}
	if !config.IsSizeAllowed(maxDataSize) {
		return nil, ErrOutOfRange
	}

	var allocated bool

	identity, err := p.store.GetIdentityByOwner(ctx, sender)
	switch err {
	case nil:
		if identity.IsOpen {
			return nil, ErrAccountAlreadyOpen
		}
	case registry.ErrNotFound:
		p.allocMu.Lock()
		defer p.allocMu.Unlock()

		lastUserId, err := p.store.GetLastUserId(ctx)
		if err != nil {
			log.WithError(err).Warn("failure reading user id counter")
			return nil, err
		}

		allocated = true
		identity = &registry.IdentityRecord{
			Owner:  sender,
			UserId: lastUserId + 1,
		}
	default:
		log.WithError(err).Warn("failure loading identity")
		return nil, err
	}

	identity.IsOpen = true

	data := &registry.DataRecord{
		UserId:  identity.UserId,
		MaxSize: maxDataSize,
	}

	err = p.store.ExecuteInTx(ctx, func(ctx context.Context) error {
		if allocated {
			if err := p.store.SaveLastUserId(ctx, identity.UserId); err != nil {
				return err
			}

			userRotation := &registry.RotationRecord{
				Key: identity.UserId,
			}
			userRotation.Owner = sender
			if err := p.store.SaveRotation(ctx, userRotation); err != nil {
				return err
			}
		}

		if err := p.store.SaveIdentity(ctx, identity); err != nil {
			return err
		}
		return p.store.SaveData(ctx, data)
	})
	if err != nil {
		return nil, err
	}
	return identity, nil
}

// ActivateAccount pays the one-time registration fee for a user's account.
// The fee is always charged to the sender, so activation can be sponsored
// for another wallet.
func (p *Processor) ActivateAccount(ctx context.Context, sender, user string) error {
	log := p.log.WithFields(logrus.Fields{
		"method": "ActivateAccount",
		"owner":  user,
	})

	lock := p.accountLocks.Get([]byte(user))
	lock.Lock()
	defer lock.Unlock()

	config, err := p.GetConfig(ctx)
	if err != nil {
		return err
	}
	if config.IsPaused {
		return ErrPaused
	}

	// Every failure mode is checked before the fee moves, so a rejected
	// activation never charges the sender.
	identity, err := p.getActivatable(ctx, user)
	if err != nil {
		return err
	}

	// Resolving the owning program selects the token instruction flavour
	// and rejects unknown mints before any funds move.
	if _, err := p.tokens.OwningProgram(ctx, config.FeeAsset); err != nil {
		log.WithError(err).Warn("failure resolving fee mint")
		return err
	}

	if err := p.tokens.Transfer(ctx, config.FeeAsset, sender, p.revenueVault, config.FeeAmount); err != nil {
		return err
	}

	identity.IsActivated = true

	return p.store.SaveIdentity(ctx, identity)
}

// ActivateAccountPrepaid flips the activation flag for a user whose fee was
// already delivered to the revenue vault, as the swap adapter does.
func (p *Processor) ActivateAccountPrepaid(ctx context.Context, user string) error {
	lock := p.accountLocks.Get([]byte(user))
	lock.Lock()
	defer lock.Unlock()

	identity, err := p.getActivatable(ctx, user)
	if err != nil {
		return err
	}

	identity.IsActivated = true

	return p.store.SaveIdentity(ctx, identity)
}

func (p *Processor) getActivatable(ctx context.Context, user string) (*registry.IdentityRecord, error) {
	identity, err := p.GetUser(ctx, user)
	if err != nil {
		return nil, err
	}

	if !identity.IsOpen {
		return nil, ErrAccountNotOpen
	}
	if identity.IsActivated {
		return nil, ErrAlreadyActivated
	}

	return identity, nil
}

// WriteData overwrites the sender's payload. The nonce is stored verbatim:
// monotonicity is a client-side convention, not enforced here.
func (p *Processor) WriteData(ctx context.Context, sender, data string, nonce uint64) error {
	lock := p.accountLocks.Get([]byte(sender))
	lock.Lock()
	defer lock.Unlock()

	identity, err := p.GetUser(ctx, sender)
	if err != nil {
		return err
	}
	if !identity.IsOpen {
		return ErrAccountNotOpen
	}

	record, err := p.store.GetDataByUserId(ctx, identity.UserId)
	if err != nil {
		return err
	}

	if uint32(len(data)) > record.MaxSize {
		return ErrOutOfRange
	}

	record.Data = data
	record.Nonce = nonce

	return p.store.SaveData(ctx, record)
}

// CloseAccount destroys the sender's data account. The numeric id, the
// activation flag and the rotation state all survive.
func (p *Processor) CloseAccount(ctx context.Context, sender string) error {
	lock := p.accountLocks.Get([]byte(sender))
	lock.Lock()
	defer lock.Unlock()

	identity, err := p.GetUser(ctx, sender)
	if err != nil {
		return err
	}
	if !identity.IsOpen {
		return ErrAccountNotOpen
	}

	identity.IsOpen = false

	return p.store.ExecuteInTx(ctx, func(ctx context.Context) error {
		if err := p.store.DeleteDataByUserId(ctx, identity.UserId); err != nil {
			return err
		}
		return p.store.SaveIdentity(ctx, identity)
	})
}

// ReopenAccount recreates a closed data account under the same numeric id,
// with a possibly different capacity. The previous payload is gone.
func (p *Processor) ReopenAccount(ctx context.Context, sender string, maxDataSize uint32) error {
	lock := p.accountLocks.Get([]byte(sender))
	lock.Lock()
	defer lock.Unlock()

	config, err := p.GetConfig(ctx)
	if err != nil {
		return err
	}
	if config.IsPaused {
		return ErrPaused
	}
	if !config.IsSizeAllowed(maxDataSize) {
		return ErrOutOfRange
	}

	identity, err := p.GetUser(ctx, sender)
	if err != nil {
		return err
	}
	if identity.IsOpen {
		return ErrAccountAlreadyOpen
	}

	identity.IsOpen = true

	data := &registry.DataRecord{
		UserId:  identity.UserId,
		MaxSize: maxDataSize,
	}

	return p.store.ExecuteInTx(ctx, func(ctx context.Context) error {
		if err := p.store.SaveIdentity(ctx, identity); err != nil {
			return err
		}
		return p.store.SaveData(ctx, data)
	})
}
