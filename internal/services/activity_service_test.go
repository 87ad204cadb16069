package services

import (
	"context"
	"testing"
	"time"

	"github.com/ArowuTest/conomy-backend/internal/models"
	"github.com/ArowuTest/conomy-backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWithdrawalRepo struct {
	repositories.WithdrawalRepository
}

func (failingWithdrawalRepo) FindByUserID(ctx context.Context, userID string) ([]*models.WithdrawalRequest, error) {
	return nil, errStoreDown
}

func TestGetActivityMergesNewestFirst(t *testing.T) {
	f := newFixture(t)
	sess := f.seedUser(t, "alice0001", 50000)
	ctx := context.Background()
	base := f.clock.Now()

	t2 := base.Add(1 * time.Hour)
	t1 := base.Add(2 * time.Hour)
	t3 := base.Add(3 * time.Hour)

	f.clock.Set(t2)
	_, err := f.ledger.RequestWithdrawal(ctx, sess, 10000, "0701000000")
	require.NoError(t, err)
	f.clock.Set(t1)
	_, err = f.ledger.RequestDeposit(ctx, sess, 5000, "0772000000")
	require.NoError(t, err)
	f.clock.Set(t3)
	_, err = f.ledger.Invest(ctx, sess, "starter", "Starter Plan", 20000, 30, 1000)
	require.NoError(t, err)

	entries, err := f.activity.GetActivity(ctx, sess)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, models.ActivityInvestment, entries[0].Type)
	assert.Equal(t, int64(-20000), entries[0].Amount)
	assert.Equal(t, models.ActivityCompleted, entries[0].Status)
	assert.Equal(t, "Starter Plan", entries[0].Detail)
	assert.True(t, entries[0].Date.Equal(t3))

	assert.Equal(t, models.ActivityDeposit, entries[1].Type)
	assert.Equal(t, int64(5000), entries[1].Amount)
	assert.Equal(t, string(models.StatusPending), entries[1].Status)
	assert.Equal(t, "MTN Mobile Money 0772000000", entries[1].Detail)

	assert.Equal(t, models.ActivityWithdrawal, entries[2].Type)
	assert.Equal(t, int64(-10000), entries[2].Amount)
	assert.True(t, entries[2].Date.Equal(t2))
}

func TestGetActivityIsNotCached(t *testing.T) {
	f := newFixture(t)
	sess := f.seedUser(t, "bob000001", 0)
	ctx := context.Background()

	entries, err := f.activity.GetActivity(ctx, sess)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = f.ledger.RequestDeposit(ctx, sess, 5000, "0772000000")
	require.NoError(t, err)

	entries, err = f.activity.GetActivity(ctx, sess)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGetActivityFailsWhole(t *testing.T) {
	f := newFixture(t)
	sess := f.seedUser(t, "carol0001", 0)
	ctx := context.Background()
	_, err := f.ledger.RequestDeposit(ctx, sess, 5000, "0772000000")
	require.NoError(t, err)

	activity := NewActivityService(f.store.Recharges(), failingWithdrawalRepo{}, f.store.Investments())
	entries, err := activity.GetActivity(ctx, sess)
	assert.Nil(t, entries)

	var aggregation *AggregationError
	require.ErrorAs(t, err, &aggregation)
	assert.Equal(t, "withdrawal", aggregation.Source)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestGetActivityRequiresSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.activity.GetActivity(context.Background(), Session{})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
