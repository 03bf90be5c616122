// Package clmm is a deterministic stand-in for the external concentrated
// liquidity AMM program. Pools quote with a plain constant-product curve
// and settle through the token ledger, which is all the swap adapter needs:
// the adapter treats the AMM as an opaque program with a fixed account
// contract and never looks at the curve itself.
package clmm

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrPoolNotFound = errors.New("no pool for the amm index and token pair")
)

// TokenLedger settles pool legs.
type TokenLedger interface {
	MintTo(ctx context.Context, mint, owner string, amount uint64) error
	Transfer(ctx context.Context, mint, source, dest string, amount uint64) error
}

type pool struct {
	address string

	token0 string
	token1 string

	reserve0 uint64
	reserve1 uint64
}

type Pools struct {
	mu sync.Mutex

	ledger TokenLedger
	pools  map[string]*pool
}

func NewPools(ledger TokenLedger) *Pools {
	return &Pools{
		ledger: ledger,
		pools:  make(map[string]*pool),
	}
}

// AddPool seeds a pool for an (ammIndex, token pair) with initial reserves,
// minted to the pool's settlement account. Token order does not matter.
func (p *Pools) AddPool(ctx context.Context, ammIndex uint16, mintA, mintB string, reserveA, reserveB uint64) error {
	token0, token1 := mintA, mintB
	reserve0, reserve1 := reserveA, reserveB
	if token1 < token0 {
		token0, token1 = token1, token0
		reserve0, reserve1 = reserve1, reserve0
	}

	newPool := &pool{
		address:  fmt.Sprintf("pool_%d_%s_%s", ammIndex, token0, token1),
		token0:   token0,
		token1:   token1,
		reserve0: reserve0,
		reserve1: reserve1,
	}

	if err := p.ledger.MintTo(ctx, token0, newPool.address, reserve0); err != nil {
		return errors.Wrap(err, "error funding pool")
	}
	if err := p.ledger.MintTo(ctx, token1, newPool.address, reserve1); err != nil {
		return errors.Wrap(err, "error funding pool")
	}

	p.mu.Lock()
	p.pools[poolKey(ammIndex, token0, token1)] = newPool
	p.mu.Unlock()

	return nil
}

// Swap executes one leg against a pool on behalf of owner: tokenIn moves
// from owner to the pool, the quoted output moves back. The quote is
// deterministic for a given reserve state.
func (p *Pools) Swap(ctx context.Context, ammIndex uint16, tokenIn, tokenOut, owner string, amountIn uint64) (uint64, error) {
	token0, token1 := tokenIn, tokenOut
	if token1 < token0 {
		token0, token1 = token1, token0
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	target, ok := p.pools[poolKey(ammIndex, token0, token1)]
	if !ok {
		return 0, ErrPoolNotFound
	}

	reserveIn, reserveOut := target.reserve0, target.reserve1
	if tokenIn == target.token1 {
		reserveIn, reserveOut = reserveOut, reserveIn
	}

	amountOut := quote(reserveIn, reserveOut, amountIn)

	if err := p.ledger.Transfer(ctx, tokenIn, owner, target.address, amountIn); err != nil {
		return 0, err
	}
	if err := p.ledger.Transfer(ctx, tokenOut, target.address, owner, amountOut); err != nil {
		return 0, err
	}

	if tokenIn == target.token0 {
		target.reserve0 += amountIn
		target.reserve1 -= amountOut
	} else {
		target.reserve1 += amountIn
		target.reserve0 -= amountOut
	}

	return amountOut, nil
}

// Quote returns the output of a hypothetical swap without settling it.
func (p *Pools) Quote(_ context.Context, ammIndex uint16, tokenIn, tokenOut string, amountIn uint64) (uint64, error) {
	token0, token1 := tokenIn, tokenOut
	if token1 < token0 {
		token0, token1 = token1, token0
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	target, ok := p.pools[poolKey(ammIndex, token0, token1)]
	if !ok {
		return 0, ErrPoolNotFound
	}

	reserveIn, reserveOut := target.reserve0, target.reserve1
	if tokenIn == target.token1 {
		reserveIn, reserveOut = reserveOut, reserveIn
	}

	return quote(reserveIn, reserveOut, amountIn), nil
}

func quote(reserveIn, reserveOut, amountIn uint64) uint64 {
	return reserveOut * amountIn / (reserveIn + amountIn)
}

func poolKey(ammIndex uint16, token0, token1 string) string {
	return fmt.Sprintf("%d:%s:%s", ammIndex, token0, token1)
}
