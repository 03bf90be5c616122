package processor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdaeva/registry-server/pkg/clmm"
	"github.com/mdaeva/registry-server/pkg/dexadapter"
	"github.com/mdaeva/registry-server/pkg/dexadapter/memory"
	"github.com/mdaeva/registry-server/pkg/pointer"
	registrymemory "github.com/mdaeva/registry-server/pkg/registry/memory"
	registryprocessor "github.com/mdaeva/registry-server/pkg/registry/processor"
	"github.com/mdaeva/registry-server/pkg/token"
)

const (
	testAdmin      = "adapter_admin"
	testDexProgram = "dex_program"
	testFeeAmount  = uint64(1_000)

	mintA = "mint_a"
	mintB = "mint_b"
	mintC = "mint_c"
)

type testEnv struct {
	ctx       context.Context
	ledger    *token.Ledger
	pools     *clmm.Pools
	registry  *registryprocessor.Processor
	processor *Processor
	clock     time.Time
}

func setup(t *testing.T) *testEnv {
	env := &testEnv{
		ctx:    context.Background(),
		ledger: token.NewLedger(),
		clock:  time.Now(),
	}
	for _, mint := range []string{mintA, mintB, mintC} {
		env.ledger.RegisterMint(mint, token.ProgramSplToken)
	}

	env.pools = clmm.NewPools(env.ledger)
	require.NoError(t, env.pools.AddPool(env.ctx, 0, mintA, mintB, 1_000_000, 1_000_000))
	require.NoError(t, env.pools.AddPool(env.ctx, 1, mintB, mintC, 1_000_000, 1_000_000))
	require.NoError(t, env.pools.AddPool(env.ctx, 2, mintA, token.NativeMint, 1_000_000, 1_000_000))

	env.registry = registryprocessor.New(registrymemory.New(), env.ledger, "registry_revenue_vault")
	require.NoError(t, env.registry.Init(env.ctx, "registry_admin", &registryprocessor.InitArgs{
		RegistrationFee: registryprocessor.AssetItem{
			Amount: testFeeAmount,
			Asset:  mintC,
		},
	}))

	env.processor = New(
		memory.New(),
		env.ledger,
		env.pools,
		WithRegistry(env.registry),
		WithClock(func() time.Time {
			return env.clock
		}),
	)
	require.NoError(t, env.processor.Init(env.ctx, testAdmin, &InitArgs{
		Dex:      testDexProgram,
		Registry: pointer.String("registry_program"),
	}))

	return env
}

func (env *testEnv) saveRoute(t *testing.T, mintFirst, mintLast string, hops ...dexadapter.RouteHop) {
	require.NoError(t, env.processor.SaveRoute(env.ctx, testAdmin, mintFirst, mintLast, hops))
}

// hopAccounts builds the flat remaining-accounts list for the given per-hop
// output mints, in wire order.
func hopAccounts(outputMints ...string) []string {
	var res []string
	for _, mint := range outputMints {
		res = append(res,
			"amm_config",
			"pool_state",
			"output_token_account",
			"input_vault",
			"output_vault",
			mint,
			"observation_state",
		)
	}
	return res
}

func TestAdapter_Init(t *testing.T) {
	env := setup(t)

	config, err := env.processor.GetConfig(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, testAdmin, config.Admin)
	assert.Equal(t, testDexProgram, config.Dex)
	require.NotNil(t, config.Registry)
	assert.Equal(t, "registry_program", *config.Registry)
	assert.Equal(t, DefaultRotationTimeout, config.RotationTimeout)

	assert.Equal(t, ErrAlreadyInitialized, env.processor.Init(env.ctx, "somebody_else", &InitArgs{
		Dex: testDexProgram,
	}))
}

func TestAdapter_AdminRotation(t *testing.T) {
	env := setup(t)

	require.NoError(t, env.processor.UpdateConfig(env.ctx, testAdmin, &UpdateConfigArgs{
		Admin: pointer.String("new_admin"),
	}))

	// Staging does not grant authority yet
	assert.Equal(t, ErrUnauthorized, env.processor.UpdateConfig(env.ctx, "new_admin", &UpdateConfigArgs{
		IsPaused: pointer.Bool(true),
	}))

	assert.Equal(t, ErrUnauthorized, env.processor.ConfirmAdminRotation(env.ctx, "somebody_else"))

	require.NoError(t, env.processor.ConfirmAdminRotation(env.ctx, "new_admin"))

	config, err := env.processor.GetConfig(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, "new_admin", config.Admin)

	assert.Equal(t, ErrUnauthorized, env.processor.UpdateConfig(env.ctx, testAdmin, &UpdateConfigArgs{
		IsPaused: pointer.Bool(true),
	}))
}

func TestAdapter_AdminRotation_Expired(t *testing.T) {
	env := setup(t)

	require.NoError(t, env.processor.UpdateConfig(env.ctx, testAdmin, &UpdateConfigArgs{
		Admin: pointer.String("new_admin"),
	}))

	env.clock = env.clock.Add(time.Duration(DefaultRotationTimeout+1) * time.Second)

	assert.Equal(t, ErrRotationExpired, env.processor.ConfirmAdminRotation(env.ctx, "new_admin"))

	config, err := env.processor.GetConfig(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, testAdmin, config.Admin)
}

func TestAdapter_SaveRoute(t *testing.T) {
	env := setup(t)

	hops := []dexadapter.RouteHop{
		{AmmIndex: 0, TokenOut: mintB},
		{AmmIndex: 1, TokenOut: mintC},
	}

	assert.Equal(t, ErrUnauthorized, env.processor.SaveRoute(env.ctx, "somebody_else", mintA, mintC, hops))

	require.NoError(t, env.processor.SaveRoute(env.ctx, testAdmin, mintA, mintC, hops))

	route, err := env.processor.GetRoute(env.ctx, mintA, mintC)
	require.NoError(t, err)
	assert.Equal(t, hops, route.Hops)

	// The reverse direction is a distinct key
	_, err = env.processor.GetRoute(env.ctx, mintC, mintA)
	assert.Equal(t, ErrRouteNotFound, err)
}

func TestAdapter_Swap_TwoHops(t *testing.T) {
	env := setup(t)
	env.saveRoute(t, mintA, mintC,
		dexadapter.RouteHop{AmmIndex: 0, TokenOut: mintB},
		dexadapter.RouteHop{AmmIndex: 1, TokenOut: mintC},
	)

	amountIn := uint64(10_000)
	require.NoError(t, env.ledger.MintTo(env.ctx, mintA, "trader", amountIn))

	// Expected output is hop 2's output given hop 1's output as its input
	hop1Out, err := env.pools.Quote(env.ctx, 0, mintA, mintB, amountIn)
	require.NoError(t, err)
	expected, err := env.pools.Quote(env.ctx, 1, mintB, mintC, hop1Out)
	require.NoError(t, err)

	amountOut, err := env.processor.Swap(env.ctx, "trader", &SwapArgs{
		MintIn:            mintA,
		MintOut:           mintC,
		AmountIn:          amountIn,
		AmountOutMinimum:  1,
		RemainingAccounts: hopAccounts(mintB, mintC),
	})
	require.NoError(t, err)
	assert.Equal(t, expected, amountOut)

	balance, err := env.ledger.Balance(env.ctx, mintC, "trader")
	require.NoError(t, err)
	assert.Equal(t, expected, balance)

	// The intermediate token passes through without residue
	balance, err = env.ledger.Balance(env.ctx, mintB, "trader")
	require.NoError(t, err)
	assert.EqualValues(t, 0, balance)
}

func TestAdapter_Swap_AccountCountMismatch(t *testing.T) {
	env := setup(t)
	env.saveRoute(t, mintA, mintC,
		dexadapter.RouteHop{AmmIndex: 0, TokenOut: mintB},
		dexadapter.RouteHop{AmmIndex: 1, TokenOut: mintC},
	)

	require.NoError(t, env.ledger.MintTo(env.ctx, mintA, "trader", 10_000))

	// One hop's worth of accounts for a two-hop route
	_, err := env.processor.Swap(env.ctx, "trader", &SwapArgs{
		MintIn:            mintA,
		MintOut:           mintC,
		AmountIn:          10_000,
		AmountOutMinimum:  1,
		RemainingAccounts: hopAccounts(mintC),
	})
	assert.Equal(t, ErrAccountCountMismatch, err)

	// Not a multiple of the per-hop account count
	_, err = env.processor.Swap(env.ctx, "trader", &SwapArgs{
		MintIn:            mintA,
		MintOut:           mintC,
		AmountIn:          10_000,
		AmountOutMinimum:  1,
		RemainingAccounts: hopAccounts(mintB, mintC)[:10],
	})
	assert.Equal(t, ErrAccountCountMismatch, err)

	// Right length, wrong hop order
	_, err = env.processor.Swap(env.ctx, "trader", &SwapArgs{
		MintIn:            mintA,
		MintOut:           mintC,
		AmountIn:          10_000,
		AmountOutMinimum:  1,
		RemainingAccounts: hopAccounts(mintC, mintB),
	})
	assert.Equal(t, ErrAccountCountMismatch, err)

	// Nothing moved
	balance, err := env.ledger.Balance(env.ctx, mintA, "trader")
	require.NoError(t, err)
	assert.EqualValues(t, 10_000, balance)
}

func TestAdapter_Swap_RouteNotFound(t *testing.T) {
	env := setup(t)

	_, err := env.processor.Swap(env.ctx, "trader", &SwapArgs{
		MintIn:            mintA,
		MintOut:           mintC,
		AmountIn:          10_000,
		AmountOutMinimum:  1,
		RemainingAccounts: hopAccounts(mintC),
	})
	assert.Equal(t, ErrRouteNotFound, err)
}

func TestAdapter_Swap_Slippage(t *testing.T) {
	env := setup(t)
	env.saveRoute(t, mintA, mintB,
		dexadapter.RouteHop{AmmIndex: 0, TokenOut: mintB},
	)

	amountIn := uint64(10_000)
	require.NoError(t, env.ledger.MintTo(env.ctx, mintA, "trader", amountIn))

	quoted, err := env.pools.Quote(env.ctx, 0, mintA, mintB, amountIn)
	require.NoError(t, err)

	_, err = env.processor.Swap(env.ctx, "trader", &SwapArgs{
		MintIn:            mintA,
		MintOut:           mintB,
		AmountIn:          amountIn,
		AmountOutMinimum:  quoted + 1,
		RemainingAccounts: hopAccounts(mintB),
	})
	assert.Equal(t, ErrSlippageExceeded, err)

	// The rejected swap settled nothing
	balance, err := env.ledger.Balance(env.ctx, mintA, "trader")
	require.NoError(t, err)
	assert.Equal(t, amountIn, balance)

	balance, err = env.ledger.Balance(env.ctx, mintB, "trader")
	require.NoError(t, err)
	assert.EqualValues(t, 0, balance)

	requoted, err := env.pools.Quote(env.ctx, 0, mintA, mintB, amountIn)
	require.NoError(t, err)
	assert.Equal(t, quoted, requoted)
}

func TestAdapter_Swap_Paused(t *testing.T) {
	env := setup(t)
	env.saveRoute(t, mintA, mintB,
		dexadapter.RouteHop{AmmIndex: 0, TokenOut: mintB},
	)

	require.NoError(t, env.processor.UpdateConfig(env.ctx, testAdmin, &UpdateConfigArgs{
		IsPaused: pointer.Bool(true),
	}))

	_, err := env.processor.Swap(env.ctx, "trader", &SwapArgs{
		MintIn:            mintA,
		MintOut:           mintB,
		AmountIn:          10_000,
		AmountOutMinimum:  1,
		RemainingAccounts: hopAccounts(mintB),
	})
	assert.Equal(t, ErrPaused, err)
}

func TestAdapter_SwapAndActivate(t *testing.T) {
	env := setup(t)
	env.saveRoute(t, mintA, mintC,
		dexadapter.RouteHop{AmmIndex: 0, TokenOut: mintB},
		dexadapter.RouteHop{AmmIndex: 1, TokenOut: mintC},
	)

	identity, err := env.registry.CreateAccount(env.ctx, "user_wallet", 256)
	require.NoError(t, err)
	assert.False(t, identity.IsActivated)

	amountIn := uint64(10_000)
	require.NoError(t, env.ledger.MintTo(env.ctx, mintA, "user_wallet", amountIn))

	amountOut, err := env.processor.SwapAndActivate(env.ctx, "user_wallet", identity.UserId, &SwapArgs{
		MintIn:            mintA,
		MintOut:           mintC,
		AmountIn:          amountIn,
		AmountOutMinimum:  testFeeAmount,
		RemainingAccounts: hopAccounts(mintB, mintC),
	})
	require.NoError(t, err)
	assert.True(t, amountOut >= testFeeAmount)

	identity, err = env.registry.GetUser(env.ctx, "user_wallet")
	require.NoError(t, err)
	assert.True(t, identity.IsActivated)

	// The full output landed in the revenue vault
	vaultBalance, err := env.ledger.Balance(env.ctx, mintC, env.registry.RevenueVault())
	require.NoError(t, err)
	assert.Equal(t, amountOut, vaultBalance)

	balance, err := env.ledger.Balance(env.ctx, mintC, "user_wallet")
	require.NoError(t, err)
	assert.EqualValues(t, 0, balance)
}

func TestAdapter_SwapAndActivate_Preconditions(t *testing.T) {
	env := setup(t)
	env.saveRoute(t, mintA, mintC,
		dexadapter.RouteHop{AmmIndex: 0, TokenOut: mintB},
		dexadapter.RouteHop{AmmIndex: 1, TokenOut: mintC},
	)
	env.saveRoute(t, mintA, mintB,
		dexadapter.RouteHop{AmmIndex: 0, TokenOut: mintB},
	)

	identity, err := env.registry.CreateAccount(env.ctx, "user_wallet", 256)
	require.NoError(t, err)

	// Route must terminate at the registration fee asset
	_, err = env.processor.SwapAndActivate(env.ctx, "user_wallet", identity.UserId, &SwapArgs{
		MintIn:            mintA,
		MintOut:           mintB,
		AmountIn:          10_000,
		AmountOutMinimum:  testFeeAmount,
		RemainingAccounts: hopAccounts(mintB),
	})
	assert.Error(t, err)

	// Minimum output must cover the fee
	_, err = env.processor.SwapAndActivate(env.ctx, "user_wallet", identity.UserId, &SwapArgs{
		MintIn:            mintA,
		MintOut:           mintC,
		AmountIn:          10_000,
		AmountOutMinimum:  testFeeAmount - 1,
		RemainingAccounts: hopAccounts(mintB, mintC),
	})
	assert.Error(t, err)

	// Unknown user id
	require.NoError(t, env.ledger.MintTo(env.ctx, mintA, "user_wallet", 10_000))
	_, err = env.processor.SwapAndActivate(env.ctx, "user_wallet", 42, &SwapArgs{
		MintIn:            mintA,
		MintOut:           mintC,
		AmountIn:          10_000,
		AmountOutMinimum:  testFeeAmount,
		RemainingAccounts: hopAccounts(mintB, mintC),
	})
	assert.Equal(t, registryprocessor.ErrUserNotFound, err)
}

func TestAdapter_SwapAndActivate_AlreadyActivated(t *testing.T) {
	env := setup(t)
	env.saveRoute(t, mintA, mintC,
		dexadapter.RouteHop{AmmIndex: 0, TokenOut: mintB},
		dexadapter.RouteHop{AmmIndex: 1, TokenOut: mintC},
	)

	identity, err := env.registry.CreateAccount(env.ctx, "user_wallet", 256)
	require.NoError(t, err)

	require.NoError(t, env.ledger.MintTo(env.ctx, mintC, "user_wallet", testFeeAmount))
	require.NoError(t, env.registry.ActivateAccount(env.ctx, "user_wallet", "user_wallet"))

	amountIn := uint64(10_000)
	require.NoError(t, env.ledger.MintTo(env.ctx, mintA, "user_wallet", amountIn))

	// The doomed activation rejects before any swap leg settles
	_, err = env.processor.SwapAndActivate(env.ctx, "user_wallet", identity.UserId, &SwapArgs{
		MintIn:            mintA,
		MintOut:           mintC,
		AmountIn:          amountIn,
		AmountOutMinimum:  testFeeAmount,
		RemainingAccounts: hopAccounts(mintB, mintC),
	})
	assert.Equal(t, registryprocessor.ErrAlreadyActivated, err)

	balance, err := env.ledger.Balance(env.ctx, mintA, "user_wallet")
	require.NoError(t, err)
	assert.Equal(t, amountIn, balance)
}

func TestAdapter_SwapAndActivate_NotLinked(t *testing.T) {
	env := setup(t)

	unlinked := New(memory.New(), env.ledger, env.pools)
	require.NoError(t, unlinked.Init(env.ctx, testAdmin, &InitArgs{
		Dex: testDexProgram,
	}))

	_, err := unlinked.SwapAndActivate(env.ctx, "user_wallet", 1, &SwapArgs{
		MintIn:            mintA,
		MintOut:           mintC,
		AmountIn:          10_000,
		AmountOutMinimum:  testFeeAmount,
		RemainingAccounts: hopAccounts(mintB, mintC),
	})
	assert.Equal(t, ErrRegistryNotLinked, err)
}

func TestAdapter_SwapAndUnwrapWsol(t *testing.T) {
	env := setup(t)
	env.saveRoute(t, mintA, token.NativeMint,
		dexadapter.RouteHop{AmmIndex: 2, TokenOut: token.NativeMint},
	)

	amountIn := uint64(10_000)
	require.NoError(t, env.ledger.MintTo(env.ctx, mintA, "trader", amountIn))

	quoted, err := env.pools.Quote(env.ctx, 2, mintA, token.NativeMint, amountIn)
	require.NoError(t, err)

	lamports, err := env.processor.SwapAndUnwrapWsol(env.ctx, "trader", &SwapArgs{
		MintIn:            mintA,
		MintOut:           token.NativeMint,
		AmountIn:          amountIn,
		AmountOutMinimum:  1,
		RemainingAccounts: hopAccounts(token.NativeMint),
	})
	require.NoError(t, err)
	assert.Equal(t, quoted, lamports)

	// The wSOL account is gone and the balance is native now
	native, err := env.ledger.Lamports(env.ctx, "trader")
	require.NoError(t, err)
	assert.Equal(t, quoted, native)

	balance, err := env.ledger.Balance(env.ctx, token.NativeMint, "trader")
	require.NoError(t, err)
	assert.EqualValues(t, 0, balance)
}

func TestAdapter_SwapAndUnwrapWsol_WrongOutput(t *testing.T) {
	env := setup(t)
	env.saveRoute(t, mintA, mintB,
		dexadapter.RouteHop{AmmIndex: 0, TokenOut: mintB},
	)

	_, err := env.processor.SwapAndUnwrapWsol(env.ctx, "trader", &SwapArgs{
		MintIn:            mintA,
		MintOut:           mintB,
		AmountIn:          10_000,
		AmountOutMinimum:  1,
		RemainingAccounts: hopAccounts(mintB),
	})
	assert.Error(t, err)
}
