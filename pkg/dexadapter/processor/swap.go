package processor

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	registryprocessor "github.com/mdaeva/registry-server/pkg/registry/processor"
	"github.com/mdaeva/registry-server/pkg/token"
)

// AccountsPerHop is the number of accounts a caller supplies for each hop
// of a stored route.
const AccountsPerHop = 7

// HopAccounts is the per-hop slice of the caller-supplied remaining
// accounts, in wire order.
type HopAccounts struct {
	AmmConfig          string
	PoolState          string
	OutputTokenAccount string
	InputVault         string
	OutputVault        string
	OutputMint         string
	ObservationState   string
}

// parseHopAccounts validates the flat remaining-accounts list against the
// expected hop count before anything indexes into it. The length must be
// exactly expectedHops * AccountsPerHop.
func parseHopAccounts(accounts []string, expectedHops int) ([]HopAccounts, error) {
	if len(accounts) != expectedHops*AccountsPerHop {
		return nil, ErrAccountCountMismatch
	}

	res := make([]HopAccounts, expectedHops)
	for i := 0; i < expectedHops; i++ {
		offset := i * AccountsPerHop
		res[i] = HopAccounts{
			AmmConfig:          accounts[offset],
			PoolState:          accounts[offset+1],
			OutputTokenAccount: accounts[offset+2],
			InputVault:         accounts[offset+3],
			OutputVault:        accounts[offset+4],
			OutputMint:         accounts[offset+5],
			ObservationState:   accounts[offset+6],
		}
	}
	return res, nil
}

type SwapArgs struct {
	MintIn  string
	MintOut string

	AmountIn uint64

	// End-to-end minimum on the final output, not per-hop
	AmountOutMinimum uint64

	// Flat remaining-accounts list, AccountsPerHop entries per stored hop
	RemainingAccounts []string
}

// Swap executes the stored route for (MintIn, MintOut), chaining each hop's
// output into the next hop's input. Slippage is checked once on the final
// output.
func (p *Processor) Swap(ctx context.Context, sender string, args *SwapArgs) (uint64, error) {
	config, err := p.GetConfig(ctx)
	if err != nil {
		return 0, err
	}
	if config.IsPaused {
		return 0, ErrPaused
	}

	return p.executeSwap(ctx, sender, args)
}

// SwapAndActivate composes a swap terminating at the registry's fee asset
// with account activation: the full final output is delivered to the
// registry's revenue vault and the target user's activation flag flips in
// the same logical transaction.
func (p *Processor) SwapAndActivate(ctx context.Context, sender string, userId uint32, args *SwapArgs) (uint64, error) {
	log := p.log.WithFields(logrus.Fields{
		"method":  "SwapAndActivate",
		"user_id": userId,
	})

	config, err := p.GetConfig(ctx)
	if err != nil {
		return 0, err
	}
	if config.IsPaused {
		return 0, ErrPaused
	}
	if config.Registry == nil || p.registry == nil {
		return 0, ErrRegistryNotLinked
	}

	registryConfig, err := p.registry.GetConfig(ctx)
	if err != nil {
		return 0, err
	}

	if args.MintOut != registryConfig.FeeAsset {
		return 0, errors.Errorf("swap output %s is not the registration fee asset", args.MintOut)
	}
	if args.AmountOutMinimum < registryConfig.FeeAmount {
		return 0, errors.New("minimum output below the registration fee")
	}

	// The activation preconditions are rechecked by the registry under its
	// own lock, but they are validated here first so a doomed activation
	// rejects before any swap leg settles.
	identity, err := p.registry.GetUserById(ctx, userId)
	if err != nil {
		return 0, err
	}
	if !identity.IsOpen {
		return 0, registryprocessor.ErrAccountNotOpen
	}
	if identity.IsActivated {
		return 0, registryprocessor.ErrAlreadyActivated
	}

	amountOut, err := p.executeSwap(ctx, sender, args)
	if err != nil {
		return 0, err
	}

	if err := p.tokens.Transfer(ctx, args.MintOut, sender, p.registry.RevenueVault(), amountOut); err != nil {
		log.WithError(err).Warn("failure delivering output to revenue vault")
		return 0, err
	}

	return amountOut, p.registry.ActivateAccountPrepaid(ctx, identity.Owner)
}

// SwapAndUnwrapWsol executes a swap terminating at wrapped SOL, then closes
// the sender's wSOL account, releasing the balance as native SOL. Returns
// the released lamports.
func (p *Processor) SwapAndUnwrapWsol(ctx context.Context, sender string, args *SwapArgs) (uint64, error) {
	config, err := p.GetConfig(ctx)
	if err != nil {
		return 0, err
	}
	if config.IsPaused {
		return 0, ErrPaused
	}

	if args.MintOut != token.NativeMint {
		return 0, errors.Errorf("swap output %s is not wrapped SOL", args.MintOut)
	}

	if _, err := p.executeSwap(ctx, sender, args); err != nil {
		return 0, err
	}

	return p.tokens.CloseAccount(ctx, token.NativeMint, sender)
}

func (p *Processor) executeSwap(ctx context.Context, sender string, args *SwapArgs) (uint64, error) {
	log := p.log.WithFields(logrus.Fields{
		"method":   "executeSwap",
		"mint_in":  args.MintIn,
		"mint_out": args.MintOut,
	})

	route, err := p.GetRoute(ctx, args.MintIn, args.MintOut)
	if err != nil {
		return 0, err
	}

	hops, err := parseHopAccounts(args.RemainingAccounts, len(route.Hops))
	if err != nil {
		return 0, err
	}

	// Hop accounts are positional: each hop's output mint account must name
	// the token the stored route produces at that position.
	for i, hop := range hops {
		if hop.OutputMint != route.Hops[i].TokenOut {
			return 0, ErrAccountCountMismatch
		}
	}

	// The full route is priced before any leg settles, so a slippage
	// failure leaves every balance untouched.
	tokenIn := args.MintIn
	amount := args.AmountIn
	for i, hop := range route.Hops {
		amount, err = p.amm.Quote(ctx, hop.AmmIndex, tokenIn, hop.TokenOut, amount)
		if err != nil {
			log.WithError(err).Warnf("failure quoting hop %d", i)
			return 0, err
		}
		tokenIn = hop.TokenOut
	}

	if amount < args.AmountOutMinimum {
		return 0, ErrSlippageExceeded
	}

	tokenIn = args.MintIn
	amount = args.AmountIn
	for i, hop := range route.Hops {
		amount, err = p.amm.Swap(ctx, hop.AmmIndex, tokenIn, hop.TokenOut, sender, amount)
		if err != nil {
			log.WithError(err).Warnf("failure executing hop %d", i)
			return 0, err
		}
		tokenIn = hop.TokenOut
	}

	return amount, nil
}
