package processor

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdaeva/registry-server/pkg/database/query"
	"github.com/mdaeva/registry-server/pkg/pointer"
	"github.com/mdaeva/registry-server/pkg/registry"
	"github.com/mdaeva/registry-server/pkg/registry/memory"
	"github.com/mdaeva/registry-server/pkg/token"
)

const (
	testFeeMint      = "fee_mint"
	testFeeAmount    = uint64(100)
	testRevenueVault = "revenue_vault"
	testAdmin        = "admin_wallet"
)

type testEnv struct {
	ctx       context.Context
	store     registry.Store
	ledger    *token.Ledger
	processor *Processor
	clock     time.Time
}

func setup(t *testing.T) *testEnv {
	env := &testEnv{
		ctx:    context.Background(),
		store:  memory.New(),
		ledger: token.NewLedger(),
		clock:  time.Now(),
	}
	env.ledger.RegisterMint(testFeeMint, token.ProgramSplToken)
	env.processor = New(env.store, env.ledger, testRevenueVault, WithClock(func() time.Time {
		return env.clock
	}))

	require.NoError(t, env.processor.Init(env.ctx, testAdmin, &InitArgs{
		RegistrationFee: AssetItem{
			Amount: testFeeAmount,
			Asset:  testFeeMint,
		},
	}))
	return env
}

func (env *testEnv) fund(t *testing.T, wallet string, amount uint64) {
	require.NoError(t, env.ledger.MintTo(env.ctx, testFeeMint, wallet, amount))
}

func TestProcessor_Init(t *testing.T) {
	env := setup(t)

	config, err := env.processor.GetConfig(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, testAdmin, config.Admin)
	assert.False(t, config.IsPaused)
	assert.Equal(t, DefaultRotationTimeout, config.RotationTimeout)
	assert.Equal(t, testFeeAmount, config.FeeAmount)
	assert.Equal(t, testFeeMint, config.FeeAsset)
	assert.Equal(t, DefaultMinDataSize, config.MinDataSize)
	assert.Equal(t, DefaultMaxDataSize, config.MaxDataSize)

	assert.Equal(t, ErrAlreadyInitialized, env.processor.Init(env.ctx, "somebody_else", &InitArgs{
		RegistrationFee: AssetItem{Amount: 1, Asset: testFeeMint},
	}))
}

func TestProcessor_NotInitialized(t *testing.T) {
	processor := New(memory.New(), token.NewLedger(), testRevenueVault)

	_, err := processor.GetConfig(context.Background())
	assert.Equal(t, ErrNotInitialized, err)

	_, err = processor.CreateAccount(context.Background(), "wallet", 256)
	assert.Equal(t, ErrNotInitialized, err)
}

func TestProcessor_CreateAccount(t *testing.T) {
	env := setup(t)

	identity, err := env.processor.CreateAccount(env.ctx, "wallet_1", 256)
	require.NoError(t, err)
	assert.EqualValues(t, 1, identity.UserId)
	assert.True(t, identity.IsOpen)
	assert.False(t, identity.IsActivated)

	_, err = env.processor.CreateAccount(env.ctx, "wallet_1", 256)
	assert.Equal(t, ErrAccountAlreadyOpen, err)

	identity, err = env.processor.CreateAccount(env.ctx, "wallet_2", 256)
	require.NoError(t, err)
	assert.EqualValues(t, 2, identity.UserId)

	lastUserId, err := env.processor.GetLastUserId(env.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, lastUserId)

	data, err := env.processor.GetUserData(env.ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, data.Data)
	assert.EqualValues(t, 0, data.Nonce)
	assert.EqualValues(t, 256, data.MaxSize)
}

func TestProcessor_CreateAccount_SizeBounds(t *testing.T) {
	env := setup(t)

	require.NoError(t, env.processor.UpdateConfig(env.ctx, testAdmin, &UpdateConfigArgs{
		DataSizeRange: &Range{Min: 10, Max: 100},
	}))

	for _, size := range []uint32{9, 101} {
		_, err := env.processor.CreateAccount(env.ctx, "wallet", size)
		assert.Equal(t, ErrOutOfRange, err)
	}

	// Bounds are inclusive
	for i, size := range []uint32{10, 100} {
		_, err := env.processor.CreateAccount(env.ctx, fmt.Sprintf("wallet_%d", i), size)
		assert.NoError(t, err)
	}
}

func TestProcessor_IdStability(t *testing.T) {
	env := setup(t)

	identity, err := env.processor.CreateAccount(env.ctx, "wallet_1", 256)
	require.NoError(t, err)
	assert.EqualValues(t, 1, identity.UserId)

	// Close and recreate: same wallet keeps its id, and the id is never
	// handed to anyone else in between.
	require.NoError(t, env.processor.CloseAccount(env.ctx, "wallet_1"))

	identity, err = env.processor.CreateAccount(env.ctx, "wallet_2", 256)
	require.NoError(t, err)
	assert.EqualValues(t, 2, identity.UserId)

	identity, err = env.processor.CreateAccount(env.ctx, "wallet_1", 512)
	require.NoError(t, err)
	assert.EqualValues(t, 1, identity.UserId)

	lastUserId, err := env.processor.GetLastUserId(env.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, lastUserId)
}

func TestProcessor_Activation(t *testing.T) {
	env := setup(t)
	env.fund(t, "wallet_1", 3*testFeeAmount)

	_, err := env.processor.CreateAccount(env.ctx, "wallet_1", 256)
	require.NoError(t, err)

	require.NoError(t, env.processor.ActivateAccount(env.ctx, "wallet_1", "wallet_1"))

	identity, err := env.processor.GetUser(env.ctx, "wallet_1")
	require.NoError(t, err)
	assert.True(t, identity.IsActivated)

	// Re-activation fails and does not double charge
	assert.Equal(t, ErrAlreadyActivated, env.processor.ActivateAccount(env.ctx, "wallet_1", "wallet_1"))

	vaultBalance, err := env.ledger.Balance(env.ctx, testFeeMint, testRevenueVault)
	require.NoError(t, err)
	assert.Equal(t, testFeeAmount, vaultBalance)

	senderBalance, err := env.ledger.Balance(env.ctx, testFeeMint, "wallet_1")
	require.NoError(t, err)
	assert.Equal(t, 2*testFeeAmount, senderBalance)
}

func TestProcessor_Activation_InsufficientFunds(t *testing.T) {
	env := setup(t)
	env.fund(t, "wallet_1", testFeeAmount-1)

	_, err := env.processor.CreateAccount(env.ctx, "wallet_1", 256)
	require.NoError(t, err)

	assert.Equal(t, token.ErrInsufficientFunds, env.processor.ActivateAccount(env.ctx, "wallet_1", "wallet_1"))

	identity, err := env.processor.GetUser(env.ctx, "wallet_1")
	require.NoError(t, err)
	assert.False(t, identity.IsActivated)
}

func TestProcessor_Activation_Sponsored(t *testing.T) {
	env := setup(t)
	env.fund(t, "sponsor_wallet", testFeeAmount)

	_, err := env.processor.CreateAccount(env.ctx, "wallet_1", 256)
	require.NoError(t, err)

	require.NoError(t, env.processor.ActivateAccount(env.ctx, "sponsor_wallet", "wallet_1"))

	identity, err := env.processor.GetUser(env.ctx, "wallet_1")
	require.NoError(t, err)
	assert.True(t, identity.IsActivated)
}

func TestProcessor_Activation_RejectedBeforeCharging(t *testing.T) {
	env := setup(t)
	env.fund(t, "wallet_1", 2*testFeeAmount)

	_, err := env.processor.CreateAccount(env.ctx, "wallet_1", 256)
	require.NoError(t, err)
	require.NoError(t, env.processor.ActivateAccount(env.ctx, "wallet_1", "wallet_1"))
	require.NoError(t, env.processor.CloseAccount(env.ctx, "wallet_1"))

	// A closed account cannot activate, and the failed attempt costs nothing
	assert.Equal(t, ErrAccountNotOpen, env.processor.ActivateAccount(env.ctx, "wallet_1", "wallet_1"))

	senderBalance, err := env.ledger.Balance(env.ctx, testFeeMint, "wallet_1")
	require.NoError(t, err)
	assert.Equal(t, testFeeAmount, senderBalance)

	vaultBalance, err := env.ledger.Balance(env.ctx, testFeeMint, testRevenueVault)
	require.NoError(t, err)
	assert.Equal(t, testFeeAmount, vaultBalance)
}

func TestProcessor_WriteData(t *testing.T) {
	env := setup(t)

	_, err := env.processor.CreateAccount(env.ctx, "wallet_1", 4)
	require.NoError(t, err)

	// Capacity is inclusive
	require.NoError(t, env.processor.WriteData(env.ctx, "wallet_1", "abcd", 1))
	assert.Equal(t, ErrOutOfRange, env.processor.WriteData(env.ctx, "wallet_1", "abcde", 2))

	// The nonce is stored verbatim, even moving backwards
	require.NoError(t, env.processor.WriteData(env.ctx, "wallet_1", "xy", 42))
	require.NoError(t, env.processor.WriteData(env.ctx, "wallet_1", "z", 7))

	data, err := env.processor.GetUserData(env.ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "z", data.Data)
	assert.EqualValues(t, 7, data.Nonce)

	assert.Equal(t, ErrUserNotFound, env.processor.WriteData(env.ctx, "unknown_wallet", "a", 1))
}

func TestProcessor_CloseAndReopen(t *testing.T) {
	env := setup(t)
	env.fund(t, "wallet_1", testFeeAmount)

	_, err := env.processor.CreateAccount(env.ctx, "wallet_1", 256)
	require.NoError(t, err)
	require.NoError(t, env.processor.ActivateAccount(env.ctx, "wallet_1", "wallet_1"))
	require.NoError(t, env.processor.WriteData(env.ctx, "wallet_1", "payload", 5))

	require.NoError(t, env.processor.CloseAccount(env.ctx, "wallet_1"))

	assert.Equal(t, ErrAccountNotOpen, env.processor.CloseAccount(env.ctx, "wallet_1"))
	assert.Equal(t, ErrAccountNotOpen, env.processor.WriteData(env.ctx, "wallet_1", "a", 6))

	_, err = env.processor.GetUserData(env.ctx, 1)
	assert.Equal(t, ErrUserNotFound, err)

	require.NoError(t, env.processor.ReopenAccount(env.ctx, "wallet_1", 512))

	// The id survives, the activation sticks, the payload does not
	identity, err := env.processor.GetUser(env.ctx, "wallet_1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, identity.UserId)
	assert.True(t, identity.IsOpen)
	assert.True(t, identity.IsActivated)

	data, err := env.processor.GetUserData(env.ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, data.Data)
	assert.EqualValues(t, 0, data.Nonce)
	assert.EqualValues(t, 512, data.MaxSize)

	assert.Equal(t, ErrAccountAlreadyOpen, env.processor.ReopenAccount(env.ctx, "wallet_1", 512))

	// No second fee for the reopened account
	assert.Equal(t, ErrAlreadyActivated, env.processor.ActivateAccount(env.ctx, "wallet_1", "wallet_1"))
	vaultBalance, err := env.ledger.Balance(env.ctx, testFeeMint, testRevenueVault)
	require.NoError(t, err)
	assert.Equal(t, testFeeAmount, vaultBalance)
}

func TestProcessor_AccountRotation(t *testing.T) {
	env := setup(t)

	_, err := env.processor.CreateAccount(env.ctx, "old_wallet", 256)
	require.NoError(t, err)
	require.NoError(t, env.processor.WriteData(env.ctx, "old_wallet", "payload", 1))

	require.NoError(t, env.processor.RequestAccountRotation(env.ctx, "old_wallet", "new_wallet"))

	assert.Equal(t, ErrUnauthorized, env.processor.ConfirmAccountRotation(env.ctx, "somebody_else", 1))

	require.NoError(t, env.processor.ConfirmAccountRotation(env.ctx, "new_wallet", 1))

	// The identity moved atomically: new wallet resolves, old one doesn't
	identity, err := env.processor.GetUser(env.ctx, "new_wallet")
	require.NoError(t, err)
	assert.EqualValues(t, 1, identity.UserId)
	assert.True(t, identity.IsOpen)

	_, err = env.processor.GetUser(env.ctx, "old_wallet")
	assert.Equal(t, ErrUserNotFound, err)

	// Data stays anchored to the id through the handoff
	data, err := env.processor.GetUserData(env.ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "payload", data.Data)

	// The request was consumed
	assert.Equal(t, ErrNoPendingRotation, env.processor.ConfirmAccountRotation(env.ctx, "new_wallet", 1))
}

func TestProcessor_AccountRotation_NoPending(t *testing.T) {
	env := setup(t)

	_, err := env.processor.CreateAccount(env.ctx, "old_wallet", 256)
	require.NoError(t, err)

	assert.Equal(t, ErrNoPendingRotation, env.processor.ConfirmAccountRotation(env.ctx, "new_wallet", 1))
}

func TestProcessor_AccountRotation_Expired(t *testing.T) {
	env := setup(t)

	_, err := env.processor.CreateAccount(env.ctx, "old_wallet", 256)
	require.NoError(t, err)
	require.NoError(t, env.processor.RequestAccountRotation(env.ctx, "old_wallet", "new_wallet"))

	env.clock = env.clock.Add(time.Duration(DefaultRotationTimeout+1) * time.Second)

	assert.Equal(t, ErrRotationExpired, env.processor.ConfirmAccountRotation(env.ctx, "new_wallet", 1))

	identity, err := env.processor.GetUser(env.ctx, "old_wallet")
	require.NoError(t, err)
	assert.EqualValues(t, 1, identity.UserId)

	// A fresh request supersedes the lapsed one
	require.NoError(t, env.processor.RequestAccountRotation(env.ctx, "old_wallet", "new_wallet"))
	require.NoError(t, env.processor.ConfirmAccountRotation(env.ctx, "new_wallet", 1))
}

func TestProcessor_AccountRotation_WalletAlreadyRegistered(t *testing.T) {
	env := setup(t)

	_, err := env.processor.CreateAccount(env.ctx, "old_wallet", 256)
	require.NoError(t, err)
	_, err = env.processor.CreateAccount(env.ctx, "other_wallet", 256)
	require.NoError(t, err)

	require.NoError(t, env.processor.RequestAccountRotation(env.ctx, "old_wallet", "other_wallet"))
	assert.Equal(t, ErrWalletAlreadyRegistered, env.processor.ConfirmAccountRotation(env.ctx, "other_wallet", 1))
}

func TestProcessor_AdminRotation(t *testing.T) {
	env := setup(t)

	require.NoError(t, env.processor.UpdateConfig(env.ctx, testAdmin, &UpdateConfigArgs{
		Admin: pointer.String("new_admin"),
	}))

	// Staging a new admin does not grant authority yet
	config, err := env.processor.GetConfig(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, testAdmin, config.Admin)
	assert.Equal(t, ErrUnauthorized, env.processor.UpdateConfig(env.ctx, "new_admin", &UpdateConfigArgs{
		IsPaused: pointer.Bool(true),
	}))

	assert.Equal(t, ErrUnauthorized, env.processor.ConfirmAdminRotation(env.ctx, "somebody_else"))

	require.NoError(t, env.processor.ConfirmAdminRotation(env.ctx, "new_admin"))

	config, err = env.processor.GetConfig(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, "new_admin", config.Admin)

	require.NoError(t, env.processor.UpdateConfig(env.ctx, "new_admin", &UpdateConfigArgs{
		IsPaused: pointer.Bool(true),
	}))
	assert.Equal(t, ErrUnauthorized, env.processor.UpdateConfig(env.ctx, testAdmin, &UpdateConfigArgs{
		IsPaused: pointer.Bool(false),
	}))
}

func TestProcessor_Paused(t *testing.T) {
	env := setup(t)
	env.fund(t, "wallet_1", testFeeAmount)

	_, err := env.processor.CreateAccount(env.ctx, "wallet_1", 256)
	require.NoError(t, err)

	require.NoError(t, env.processor.UpdateConfig(env.ctx, testAdmin, &UpdateConfigArgs{
		IsPaused: pointer.Bool(true),
	}))

	_, err = env.processor.CreateAccount(env.ctx, "wallet_2", 256)
	assert.Equal(t, ErrPaused, err)
	assert.Equal(t, ErrPaused, env.processor.ActivateAccount(env.ctx, "wallet_1", "wallet_1"))
	assert.Equal(t, ErrPaused, env.processor.RequestAccountRotation(env.ctx, "wallet_1", "wallet_2"))

	require.NoError(t, env.processor.UpdateConfig(env.ctx, testAdmin, &UpdateConfigArgs{
		IsPaused: pointer.Bool(false),
	}))

	_, err = env.processor.CreateAccount(env.ctx, "wallet_2", 256)
	assert.NoError(t, err)
}

func TestProcessor_WithdrawRevenue(t *testing.T) {
	env := setup(t)
	env.fund(t, "wallet_1", testFeeAmount)

	_, err := env.processor.CreateAccount(env.ctx, "wallet_1", 256)
	require.NoError(t, err)
	require.NoError(t, env.processor.ActivateAccount(env.ctx, "wallet_1", "wallet_1"))

	assert.Equal(t, ErrUnauthorized, env.processor.WithdrawRevenue(env.ctx, "wallet_1", "wallet_1", nil))

	require.NoError(t, env.processor.WithdrawRevenue(env.ctx, testAdmin, "treasury_wallet", pointer.Uint64(40)))

	vaultBalance, err := env.ledger.Balance(env.ctx, testFeeMint, testRevenueVault)
	require.NoError(t, err)
	assert.Equal(t, testFeeAmount-40, vaultBalance)

	// Nil amount drains the vault
	require.NoError(t, env.processor.WithdrawRevenue(env.ctx, testAdmin, "treasury_wallet", nil))

	vaultBalance, err = env.ledger.Balance(env.ctx, testFeeMint, testRevenueVault)
	require.NoError(t, err)
	assert.EqualValues(t, 0, vaultBalance)

	recipientBalance, err := env.ledger.Balance(env.ctx, testFeeMint, "treasury_wallet")
	require.NoError(t, err)
	assert.Equal(t, testFeeAmount, recipientBalance)
}

func TestProcessor_ListUsers(t *testing.T) {
	env := setup(t)

	for i := 0; i < 5; i++ {
		_, err := env.processor.CreateAccount(env.ctx, fmt.Sprintf("wallet_%d", i), 256)
		require.NoError(t, err)
	}

	// Closed accounts still enumerate
	require.NoError(t, env.processor.CloseAccount(env.ctx, "wallet_2"))

	records, err := env.processor.ListUsers(env.ctx, query.EmptyCursor, 10, query.Ascending)
	require.NoError(t, err)
	require.Len(t, records, 5)
	for i, record := range records {
		assert.EqualValues(t, i+1, record.UserId)
	}
	assert.False(t, records[2].IsOpen)

	records, err = env.processor.ListUsers(env.ctx, query.ToCursor(3), 10, query.Ascending)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.EqualValues(t, 4, records[0].UserId)
	assert.EqualValues(t, 5, records[1].UserId)
}
