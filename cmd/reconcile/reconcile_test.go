package main

import (
	"context"
	"strings"
	"testing"

	"github.com/ArowuTest/conomy-backend/internal/models"
	"github.com/ArowuTest/conomy-backend/internal/repositories/memory"
	"github.com/ArowuTest/conomy-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.Users().Create(ctx, &models.User{ID: "u1", Email: "u1@example.com", ReferralCode: "U1"}))

	ledger := services.NewLedgerService(store, store.Users(), store.Investments(), store.Recharges(), store.Withdrawals())
	settlement := services.NewSettlementService(store, store.Users(), store.Recharges(), store.Withdrawals())
	sess := services.Session{UserID: "u1"}
	for _, amount := range []int64{5000, 5000, 12000} {
		_, err := ledger.RequestDeposit(ctx, sess, amount, "0772000000")
		require.NoError(t, err)
	}

	statement := strings.Join([]string{
		"momoNumber,amount,reference",
		"0772000000,5000,TX-1",
		"0772000000,\"12,000\",TX-2",
		"0772000000,5000,TX-3",
		"0772000000,5000,TX-4",
		"0772000000,abc,TX-5",
		"0772000000",
	}, "\n")

	summary, err := reconcile(ctx, settlement, strings.NewReader(statement))
	require.NoError(t, err)
	assert.Equal(t, Summary{Approved: 3, Unmatched: 1, Skipped: 2}, summary)

	user, err := store.Users().FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(22000), user.Balance)

	pending, err := store.Recharges().FindByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	settled, err := store.Recharges().FindByReference(ctx, "TX-2")
	require.NoError(t, err)
	assert.Equal(t, int64(12000), settled.Amount)
}

func TestReconcileSameStatementTwice(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.Users().Create(ctx, &models.User{ID: "u1", Email: "u1@example.com", ReferralCode: "U1"}))

	ledger := services.NewLedgerService(store, store.Users(), store.Investments(), store.Recharges(), store.Withdrawals())
	settlement := services.NewSettlementService(store, store.Users(), store.Recharges(), store.Withdrawals())
	sess := services.Session{UserID: "u1"}
	for i := 0; i < 3; i++ {
		_, err := ledger.RequestDeposit(ctx, sess, 5000, "0772000000")
		require.NoError(t, err)
	}

	statement := "0772000000,5000,TX-1\n0772000000,5000,TX-2\n"

	first, err := reconcile(ctx, settlement, strings.NewReader(statement))
	require.NoError(t, err)
	assert.Equal(t, Summary{Approved: 2}, first)

	second, err := reconcile(ctx, settlement, strings.NewReader(statement))
	require.NoError(t, err)
	assert.Equal(t, Summary{Duplicates: 2}, second)

	user, err := store.Users().FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(10000), user.Balance)

	pending, err := store.Recharges().FindByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}
