package processor

import (
	"context"

	"github.com/mdaeva/registry-server/pkg/registry"
)

// RequestAccountRotation stages an ownership handoff of the sender's account
// to a new wallet. A repeated request overwrites the pending one.
func (p *Processor) RequestAccountRotation(ctx context.Context, sender, newOwner string) error {
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

	identity, err := p.GetUser(ctx, sender)
	if err != nil {
		return err
	}

	userRotation, err := p.store.GetRotation(ctx, identity.UserId)
	if err != nil {
		return err
	}

	if err := userRotation.Request(sender, newOwner, p.now(), config.RotationTimeout); err != nil {
		return err
	}

	return p.store.SaveRotation(ctx, userRotation)
}

// ConfirmAccountRotation completes a pending handoff of the identity behind
// userId. The sender must be the staged new owner and must not already
// anchor an identity of their own. The numeric id, open state and
// activation flag all carry over; only the wallet mapping moves.
func (p *Processor) ConfirmAccountRotation(ctx context.Context, sender string, userId uint32) error {
	lock := p.accountLocks.Get([]byte(sender))
	lock.Lock()
	defer lock.Unlock()

	identity, err := p.GetUserById(ctx, userId)
	if err != nil {
		return err
	}

	userRotation, err := p.store.GetRotation(ctx, userId)
	if err == registry.ErrNotFound {
		return ErrNoPendingRotation
	}
	if err != nil {
		return err
	}

	// The handoff itself validates first, so a consumed or lapsed request
	// reports as such even when the sender already holds an identity.
	if err := userRotation.Confirm(sender, p.now()); err != nil {
		return err
	}

	if _, err := p.store.GetIdentityByOwner(ctx, sender); err == nil {
		return ErrWalletAlreadyRegistered
	} else if err != registry.ErrNotFound {
		return err
	}

	identity.Owner = sender

	return p.store.ExecuteInTx(ctx, func(ctx context.Context) error {
		if err := p.store.SaveIdentity(ctx, identity); err != nil {
			return err
		}
		return p.store.SaveRotation(ctx, userRotation)
	})
}
