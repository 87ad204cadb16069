package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveReferralCode(t *testing.T) {
	assert.Equal(t, "3F2A9C", DeriveReferralCode("3f2a9c41-7d1e-4b8a-9e0f-2c5d6a7b8c9d"))
	assert.Equal(t, DeriveReferralCode("abcdefgh"), DeriveReferralCode("abcdefgh"))
	assert.Equal(t, "AB", DeriveReferralCode("ab"))
	assert.Equal(t, "ABC123", NormalizeReferralCode("  abc123 "))
}

func TestRegisterReferralLinksReferrer(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "referrer1", 0)
	ctx := context.Background()

	referrer, err := f.referrals.RegisterReferral(ctx, "newuser01", "New User", "refer")
	require.NoError(t, err)
	assert.Nil(t, referrer, "partial code must not match")

	referrer, err = f.referrals.RegisterReferral(ctx, "newuser01", "New User", " referr ")
	require.NoError(t, err)
	require.NotNil(t, referrer)
	assert.Equal(t, "referrer1", referrer.ID)

	user, err := f.store.Users().FindByID(ctx, "referrer1")
	require.NoError(t, err)
	assert.Equal(t, 1, user.ReferralCount)

	team, err := f.referrals.ListTeam(ctx, Session{UserID: "referrer1"})
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, "newuser01", team[0].MemberID)
	assert.Equal(t, "New User", team[0].FullName)
}

func TestRegisterReferralWithoutCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	referrer, err := f.referrals.RegisterReferral(ctx, "newuser01", "New User", "")
	require.NoError(t, err)
	assert.Nil(t, referrer)

	referrer, err = f.referrals.RegisterReferral(ctx, "newuser01", "New User", "NOSUCH")
	require.NoError(t, err)
	assert.Nil(t, referrer)
}

func TestListTeamRequiresSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.referrals.ListTeam(context.Background(), Session{})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	team, err := f.referrals.ListTeam(context.Background(), Session{UserID: "lonely"})
	require.NoError(t, err)
	assert.Empty(t, team)
}
