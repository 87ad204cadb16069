package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ArowuTest/conomy-backend/internal/metrics"
	"github.com/ArowuTest/conomy-backend/internal/models"
	"github.com/ArowuTest/conomy-backend/internal/repositories"
)

// ReferralCodeLength is the number of identifier characters in a referral code
const ReferralCodeLength = 6

// DeriveReferralCode returns the first six characters of the user ID, upper-cased.
// Codes are not guaranteed unique; registration checks for collisions.
func DeriveReferralCode(userID string) string {
	code := userID
	if len(code) > ReferralCodeLength {
		code = code[:ReferralCodeLength]
	}
	return strings.ToUpper(code)
}

// NormalizeReferralCode trims and upper-cases a code typed by a user
func NormalizeReferralCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

var _ ReferralService = (*ReferralServiceImpl)(nil)

// ReferralServiceImpl maintains referral counts and team lists
type ReferralServiceImpl struct {
	userRepo repositories.UserRepository
	teamRepo repositories.TeamRepository
}

// NewReferralService creates a new ReferralServiceImpl
func NewReferralService(userRepo repositories.UserRepository, teamRepo repositories.TeamRepository) *ReferralServiceImpl {
	return &ReferralServiceImpl{
		userRepo: userRepo,
		teamRepo: teamRepo,
	}
}

// RegisterReferral credits the owner of referredByCode with the new user.
// An empty or unknown code is not an error: the registration simply has no
// referrer and nil is returned. When called with a transaction context both
// writes join that transaction.
func (s *ReferralServiceImpl) RegisterReferral(ctx context.Context, newUserID, newUserFullName, referredByCode string) (referrer *models.User, err error) {
	code := NormalizeReferralCode(referredByCode)
	if code == "" {
		return nil, nil
	}
	defer func() { metrics.RecordOperation("register_referral", outcome(err)) }()

	matches, err := s.userRepo.FindByReferralCode(ctx, code)
	if err != nil {
		return nil, storeErr("find referrer", err)
	}
	if len(matches) == 0 {
		slog.Info("Referral code did not match any user", "code", code, "userId", newUserID)
		return nil, nil
	}
	if len(matches) > 1 {
		slog.Warn("Referral code matches more than one user, crediting the first", "code", code, "matches", len(matches))
	}
	referrer = matches[0]
	if referrer.ID == newUserID {
		return nil, nil
	}

	if err := s.userRepo.IncrementReferralCount(ctx, referrer.ID); err != nil {
		return nil, storeErr("increment referral count", err)
	}
	member := &models.TeamMember{
		OwnerID:  referrer.ID,
		MemberID: newUserID,
		FullName: newUserFullName,
	}
	if err := s.teamRepo.Add(ctx, member); err != nil {
		return nil, storeErr("add team member", err)
	}

	slog.Info("Referral registered", "referrerId", referrer.ID, "userId", newUserID, "code", code)
	return referrer, nil
}

// ListTeam returns the members the user referred
func (s *ReferralServiceImpl) ListTeam(ctx context.Context, sess Session) ([]*models.TeamMember, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	members, err := s.teamRepo.FindByOwner(ctx, sess.UserID)
	if err != nil {
		slog.Error("Failed to load team", "error", err, "userId", sess.UserID)
		return nil, storeErr("list team", err)
	}
	return members, nil
}
