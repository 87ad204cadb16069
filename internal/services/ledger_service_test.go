package services

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/ArowuTest/conomy-backend/internal/models"
	"github.com/ArowuTest/conomy-backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingUserRepo is a UserRepository whose reads fail
type failingUserRepo struct {
	repositories.UserRepository
	err error
}

func (r failingUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return nil, r.err
}

func TestRequestDepositValidation(t *testing.T) {
	f := newFixture(t)
	sess := f.seedUser(t, "alice0001", 0)
	ctx := context.Background()

	_, err := f.ledger.RequestDeposit(ctx, sess, 999, "0772000000")
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "amount", validation.Field)

	_, err = f.ledger.RequestDeposit(ctx, sess, 1000, "   ")
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "momoNumber", validation.Field)

	recharge, err := f.ledger.RequestDeposit(ctx, sess, 1000, " 0772000000 ")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, recharge.Status)
	assert.Equal(t, models.MethodMobileMoney, recharge.Method)
	assert.Equal(t, "0772000000", recharge.MomoNumber)
	assert.False(t, recharge.RequestDate.IsZero())

	// A deposit request alone never changes the balance.
	assert.Equal(t, int64(0), f.balance(t, "alice0001"))

	_, err = f.ledger.RequestDeposit(ctx, Session{}, 5000, "0772000000")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRequestWithdrawal(t *testing.T) {
	f := newFixture(t)
	sess := f.seedUser(t, "bob000001", 15000)
	ctx := context.Background()

	_, err := f.ledger.RequestWithdrawal(ctx, sess, 9999, "0772000000")
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "amount", validation.Field)

	_, err = f.ledger.RequestWithdrawal(ctx, sess, 10000, "")
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "payoutNumber", validation.Field)

	_, err = f.ledger.RequestWithdrawal(ctx, sess, 20000, "0772000000")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	withdrawal, err := f.ledger.RequestWithdrawal(ctx, sess, 10000, "0772000000")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, withdrawal.Status)
	assert.Equal(t, int64(15000), f.balance(t, "bob000001"))

	_, err = f.ledger.RequestWithdrawal(ctx, Session{UserID: "ghost"}, 10000, "0772000000")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestInvestDeductsAndRecords(t *testing.T) {
	f := newFixture(t)
	sess := f.seedUser(t, "carol0001", 50000)
	ctx := context.Background()

	balance, err := f.ledger.Invest(ctx, sess, "starter", "Starter Plan", 20000, 30, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), balance)
	assert.Equal(t, int64(30000), f.balance(t, "carol0001"))

	investments, err := f.ledger.ListInvestments(ctx, sess)
	require.NoError(t, err)
	require.Len(t, investments, 1)
	inv := investments[0]
	assert.Equal(t, "starter", inv.ProductID)
	assert.Equal(t, int64(20000), inv.InvestmentAmount)
	assert.Equal(t, int64(30000), inv.TotalIncome)
	assert.Equal(t, models.InvestmentActive, inv.Status)
	assert.Equal(t, 0, inv.DaysProgress)
}

func TestInvestInsufficientFundsLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	sess := f.seedUser(t, "dave00001", 19999)
	ctx := context.Background()

	_, err := f.ledger.Invest(ctx, sess, "starter", "Starter Plan", 20000, 30, 1000)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	assert.Equal(t, int64(19999), f.balance(t, "dave00001"))
	investments, err := f.ledger.ListInvestments(ctx, sess)
	require.NoError(t, err)
	assert.Empty(t, investments)
}

func TestInvestValidation(t *testing.T) {
	f := newFixture(t)
	sess := f.seedUser(t, "erin00001", 50000)
	ctx := context.Background()

	tests := []struct {
		name      string
		productID string
		price     int64
		cycleDays int
		income    int64
		field     string
	}{
		{"missing product", "", 1000, 10, 10, "productId"},
		{"zero price", "p", 0, 10, 10, "price"},
		{"negative price", "p", -5, 10, 10, "price"},
		{"zero cycle", "p", 1000, 0, 10, "cycleDays"},
		{"negative income", "p", 1000, 10, -1, "dailyIncome"},
		{"total income overflows", "p", 1000, 365, math.MaxInt64 / 100, "dailyIncome"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ledger.Invest(ctx, sess, tt.productID, "P", tt.price, tt.cycleDays, tt.income)
			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.field, validation.Field)
		})
	}
	assert.Equal(t, int64(50000), f.balance(t, "erin00001"))

	_, err := f.ledger.Invest(ctx, Session{UserID: "ghost"}, "p", "P", 10, 1, 1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestConcurrentInvestmentsNeverOverdraw(t *testing.T) {
	f := newFixture(t)
	sess := f.seedUser(t, "frank0001", 1000)
	ctx := context.Background()

	const workers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.Invest(ctx, sess, "p", "Product", 300, 10, 40)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrInsufficientFunds):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	assert.Equal(t, workers-3, rejected)
	assert.Equal(t, int64(100), f.balance(t, "frank0001"))
	investments, err := f.ledger.ListInvestments(ctx, sess)
	require.NoError(t, err)
	assert.Len(t, investments, 3)
}

func TestGetBalance(t *testing.T) {
	f := newFixture(t)
	sess := f.seedUser(t, "gina00001", 0)
	ctx := context.Background()

	signedOut, err := f.ledger.GetBalance(ctx, Session{})
	require.NoError(t, err)
	assert.False(t, signedOut.Available)

	first, err := f.ledger.GetBalance(ctx, sess)
	require.NoError(t, err)
	second, err := f.ledger.GetBalance(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, first.Available)
	assert.Equal(t, int64(0), first.Amount)
	assert.NotEqual(t, signedOut, first)
}

func TestStoreFailureIsUnavailable(t *testing.T) {
	f := newFixture(t)
	sess := f.seedUser(t, "hank00001", 1000)
	ledger := NewLedgerService(f.store, failingUserRepo{err: errStoreDown}, f.store.Investments(), f.store.Recharges(), f.store.Withdrawals())

	_, err := ledger.GetBalance(context.Background(), sess)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, errStoreDown)

	_, err = ledger.Invest(context.Background(), sess, "p", "P", 10, 1, 1)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestBalanceConservation(t *testing.T) {
	f := newFixture(t)
	sess := f.seedUser(t, "ivan00001", 0)
	ctx := context.Background()

	approveDeposit := func(amount int64) {
		recharge, err := f.ledger.RequestDeposit(ctx, sess, amount, "0772000000")
		require.NoError(t, err)
		_, err = f.settlement.ApproveRecharge(ctx, adminSession, recharge.ID)
		require.NoError(t, err)
	}
	approveDeposit(50000)
	approveDeposit(30000)

	// Rejected and pending requests do not count.
	rejected, err := f.ledger.RequestDeposit(ctx, sess, 99000, "0772000000")
	require.NoError(t, err)
	_, err = f.settlement.RejectRecharge(ctx, adminSession, rejected.ID)
	require.NoError(t, err)
	_, err = f.ledger.RequestDeposit(ctx, sess, 7000, "0772000000")
	require.NoError(t, err)

	withdrawal, err := f.ledger.RequestWithdrawal(ctx, sess, 15000, "0772000000")
	require.NoError(t, err)
	_, err = f.settlement.ApproveWithdrawal(ctx, adminSession, withdrawal.ID)
	require.NoError(t, err)

	_, err = f.ledger.Invest(ctx, sess, "starter", "Starter Plan", 20000, 30, 1000)
	require.NoError(t, err)
	_, err = f.ledger.Invest(ctx, sess, "big", "Big Plan", 100000, 30, 1000)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	assert.Equal(t, int64(50000+30000-15000-20000), f.balance(t, "ivan00001"))
}
