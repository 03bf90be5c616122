// Package processor implements the registry's instruction-level state
// machine: identity allocation, the account lifecycle, two-step ownership
// rotation and revenue handling. Every operation validates against current
// store state, then commits its mutations atomically.
package processor

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mdaeva/registry-server/pkg/database/query"
	"github.com/mdaeva/registry-server/pkg/registry"
	xsync "github.com/mdaeva/registry-server/pkg/sync"
	"github.com/mdaeva/registry-server/pkg/token"
)

const (
	DefaultRotationTimeout = uint32(3600)
	DefaultMinDataSize     = uint32(1)
	DefaultMaxDataSize     = uint32(10_000)
)

// TokenLedger is the token-program collaborator used for fee collection and
// revenue withdrawal.
type TokenLedger interface {
	OwningProgram(ctx context.Context, mint string) (token.Program, error)
	Transfer(ctx context.Context, mint, source, dest string, amount uint64) error
	Balance(ctx context.Context, mint, owner string) (uint64, error)
}

type Processor struct {
	log    *logrus.Entry
	store  registry.Store
	tokens TokenLedger

	// Receiving account for activation fees and adapter revenue
	revenueVault string

	// Serializes read-modify-write cycles per wallet, the way the hosting
	// runtime serializes conflicting transactions per account. Id allocation
	// additionally goes through allocMu so two new wallets cannot claim the
	// same id.
	accountLocks *xsync.StripedLock
	allocMu      sync.Mutex

	now func() time.Time
}

type Option func(*Processor)

// WithClock overrides the time source, used to exercise rotation expiry.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		p.now = now
	}
}

func New(store registry.Store, tokens TokenLedger, revenueVault string, opts ...Option) *Processor {
	p := &Processor{
		log:          logrus.StandardLogger().WithField("type", "registry/processor"),
		store:        store,
		tokens:       tokens,
		revenueVault: revenueVault,
		accountLocks: xsync.NewStripedLock(64),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RevenueVault returns the receiving account for activation fees.
func (p *Processor) RevenueVault() string {
	return p.revenueVault
}

// GetConfig returns the current configuration.
func (p *Processor) GetConfig(ctx context.Context) (*registry.ConfigRecord, error) {
	config, err := p.store.GetConfig(ctx)
	if err == registry.ErrNotFound {
		return nil, ErrNotInitialized
	}
	return config, err
}

// GetUser returns the identity currently mapped to a wallet.
func (p *Processor) GetUser(ctx context.Context, wallet string) (*registry.IdentityRecord, error) {
	record, err := p.store.GetIdentityByOwner(ctx, wallet)
	if err == registry.ErrNotFound {
		return nil, ErrUserNotFound
	}
	return record, err
}

// GetUserById returns the identity for a numeric id.
func (p *Processor) GetUserById(ctx context.Context, userId uint32) (*registry.IdentityRecord, error) {
	record, err := p.store.GetIdentityByUserId(ctx, userId)
	if err == registry.ErrNotFound {
		return nil, ErrUserNotFound
	}
	return record, err
}

// GetUserData returns the stored payload for a numeric id.
func (p *Processor) GetUserData(ctx context.Context, userId uint32) (*registry.DataRecord, error) {
	record, err := p.store.GetDataByUserId(ctx, userId)
	if err == registry.ErrNotFound {
		return nil, ErrUserNotFound
	}
	return record, err
}

// ListUsers pages through every allocated identity, tolerating ids whose
// data account is currently closed.
func (p *Processor) ListUsers(ctx context.Context, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*registry.IdentityRecord, error) {
	records, err := p.store.GetAllIdentities(ctx, cursor, limit, direction)
	if err == registry.ErrNotFound {
		return nil, nil
	}
	return records, err
}

// GetLastUserId returns the enumeration upper bound for ListUsers.
func (p *Processor) GetLastUserId(ctx context.Context) (uint32, error) {
	return p.store.GetLastUserId(ctx)
}
