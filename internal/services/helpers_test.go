package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ArowuTest/conomy-backend/internal/models"
	"github.com/ArowuTest/conomy-backend/internal/repositories/memory"
	"github.com/ArowuTest/conomy-backend/pkg/jwt"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("connection refused")

// testClock is a settable clock for server timestamps
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type fixture struct {
	store      *memory.Store
	clock      *testClock
	tokens     *jwt.TokenService
	ledger     *LedgerServiceImpl
	referrals  *ReferralServiceImpl
	activity   *ActivityServiceImpl
	settlement *SettlementServiceImpl
	auth       *AuthServiceImpl
}

func newFixture(t *testing.T, authOpts ...AuthOption) *fixture {
	t.Helper()
	clock := newTestClock()
	store := memory.New(memory.WithClock(clock.Now))
	tokens := jwt.NewTokenService("test-secret", time.Hour, "conomy-test")
	referrals := NewReferralService(store.Users(), store.Team())
	return &fixture{
		store:      store,
		clock:      clock,
		tokens:     tokens,
		ledger:     NewLedgerService(store, store.Users(), store.Investments(), store.Recharges(), store.Withdrawals()),
		referrals:  referrals,
		activity:   NewActivityService(store.Recharges(), store.Withdrawals(), store.Investments()),
		settlement: NewSettlementService(store, store.Users(), store.Recharges(), store.Withdrawals()),
		auth:       NewAuthService(store, store.Users(), referrals, tokens, authOpts...),
	}
}

// seedUser creates a user with the given balance and returns its session
func (f *fixture) seedUser(t *testing.T, id string, balance int64) Session {
	t.Helper()
	err := f.store.Users().Create(context.Background(), &models.User{
		ID:           id,
		FullName:     "User " + id,
		Email:        id + "@example.com",
		Balance:      balance,
		ReferralCode: DeriveReferralCode(id),
	})
	require.NoError(t, err)
	return Session{UserID: id, Email: id + "@example.com", Role: models.RoleUser}
}

func (f *fixture) balance(t *testing.T, id string) int64 {
	t.Helper()
	user, err := f.store.Users().FindByID(context.Background(), id)
	require.NoError(t, err)
	return user.Balance
}

var adminSession = Session{UserID: "admin", Email: "admin@example.com", Role: models.RoleAdmin}
