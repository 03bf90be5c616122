// Package processor implements the swap adapter's instruction-level state
// machine: configuration and admin rotation, the stored route table, and
// multi-hop swap execution with end-to-end slippage checking, including the
// composed swap-and-activate call into the registry.
package processor

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mdaeva/registry-server/pkg/cache"
	"github.com/mdaeva/registry-server/pkg/dexadapter"
	"github.com/mdaeva/registry-server/pkg/registry"
)

const (
	DefaultRotationTimeout = uint32(3600)

	routeCacheBudget = 256
)

// Amm is the external AMM program's swap surface. Quote prices a leg
// without settling it; Swap settles one hop on behalf of owner.
type Amm interface {
	Quote(ctx context.Context, ammIndex uint16, tokenIn, tokenOut string, amountIn uint64) (uint64, error)
	Swap(ctx context.Context, ammIndex uint16, tokenIn, tokenOut, owner string, amountIn uint64) (uint64, error)
}

// TokenLedger is the token-program collaborator used to deliver activation
// fees and unwrap wrapped SOL.
type TokenLedger interface {
	Transfer(ctx context.Context, mint, source, dest string, amount uint64) error
	CloseAccount(ctx context.Context, mint, owner string) (uint64, error)
}

// Registry is the cross-program surface of the registry consumed by
// swap-and-activate.
type Registry interface {
	GetConfig(ctx context.Context) (*registry.ConfigRecord, error)
	GetUserById(ctx context.Context, userId uint32) (*registry.IdentityRecord, error)
	ActivateAccountPrepaid(ctx context.Context, user string) error
	RevenueVault() string
}

type Processor struct {
	log    *logrus.Entry
	store  dexadapter.Store
	tokens TokenLedger
	amm    Amm

	// Routes are read on every swap but written rarely, so lookups go
	// through an LRU in front of the store. SaveRoute drops the whole cache.
	routeCache cache.Cache

	// Nil until linked via WithRegistry
	registry Registry

	now func() time.Time
}

type Option func(*Processor)

// WithRegistry links the registry consumed by swap-and-activate.
func WithRegistry(registry Registry) Option {
	return func(p *Processor) {
		p.registry = registry
	}
}

// WithClock overrides the time source, used to exercise rotation expiry.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		p.now = now
	}
}

func New(store dexadapter.Store, tokens TokenLedger, amm Amm, opts ...Option) *Processor {
	p := &Processor{
		log:        logrus.StandardLogger().WithField("type", "dexadapter/processor"),
		store:      store,
		tokens:     tokens,
		amm:        amm,
		routeCache: cache.NewCache(routeCacheBudget),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetConfig returns the current configuration.
func (p *Processor) GetConfig(ctx context.Context) (*dexadapter.ConfigRecord, error) {
	config, err := p.store.GetConfig(ctx)
	if err == dexadapter.ErrNotFound {
		return nil, ErrNotInitialized
	}
	return config, err
}

// GetRoute returns the route stored for the unsorted (first, last) mint pair.
func (p *Processor) GetRoute(ctx context.Context, mintFirst, mintLast string) (*dexadapter.RouteRecord, error) {
	cacheKey := mintFirst + ":" + mintLast
	if cached, ok := p.routeCache.Retrieve(cacheKey); ok {
		cloned := cached.(*dexadapter.RouteRecord).Clone()
		return &cloned, nil
	}

	record, err := p.store.GetRoute(ctx, mintFirst, mintLast)
	if err == dexadapter.ErrNotFound {
		return nil, ErrRouteNotFound
	}
	if err != nil {
		return nil, err
	}

	cloned := record.Clone()
	_ = p.routeCache.Insert(cacheKey, &cloned, len(record.Hops))

	return record, nil
}

// GetAllRoutes returns every stored route.
func (p *Processor) GetAllRoutes(ctx context.Context) ([]*dexadapter.RouteRecord, error) {
	records, err := p.store.GetAllRoutes(ctx)
	if err == dexadapter.ErrNotFound {
		return nil, nil
	}
	return records, err
}
