package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/ArowuTest/conomy-backend/internal/metrics"
	"github.com/ArowuTest/conomy-backend/internal/models"
	"github.com/ArowuTest/conomy-backend/internal/repositories"
	"golang.org/x/sync/errgroup"
)

var _ ActivityService = (*ActivityServiceImpl)(nil)

// ActivityServiceImpl merges deposits, withdrawals and investments into one history
type ActivityServiceImpl struct {
	rechargeRepo   repositories.RechargeRepository
	withdrawalRepo repositories.WithdrawalRepository
	investmentRepo repositories.InvestmentRepository
}

// NewActivityService creates a new ActivityServiceImpl
func NewActivityService(
	rechargeRepo repositories.RechargeRepository,
	withdrawalRepo repositories.WithdrawalRepository,
	investmentRepo repositories.InvestmentRepository,
) *ActivityServiceImpl {
	return &ActivityServiceImpl{
		rechargeRepo:   rechargeRepo,
		withdrawalRepo: withdrawalRepo,
		investmentRepo: investmentRepo,
	}
}

// GetActivity queries the three record streams concurrently and returns them
// newest first. If any query fails the whole result is discarded.
func (s *ActivityServiceImpl) GetActivity(ctx context.Context, sess Session) (entries []models.ActivityEntry, err error) {
	defer func() { metrics.RecordOperation("activity", outcome(err)) }()

	if err := requireSession(sess); err != nil {
		return nil, err
	}

	var (
		recharges   []*models.RechargeRequest
		withdrawals []*models.WithdrawalRequest
		investments []*models.Investment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if recharges, err = s.rechargeRepo.FindByUserID(gctx, sess.UserID); err != nil {
			return &AggregationError{Source: "deposit", Err: err}
		}
		return nil
	})
	g.Go(func() (err error) {
		if withdrawals, err = s.withdrawalRepo.FindByUserID(gctx, sess.UserID); err != nil {
			return &AggregationError{Source: "withdrawal", Err: err}
		}
		return nil
	})
	g.Go(func() (err error) {
		if investments, err = s.investmentRepo.FindByUserID(gctx, sess.UserID); err != nil {
			return &AggregationError{Source: "investment", Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		slog.Error("Failed to load activity", "error", err, "userId", sess.UserID)
		return nil, err
	}

	entries = make([]models.ActivityEntry, 0, len(recharges)+len(withdrawals)+len(investments))
	for _, r := range recharges {
		entries = append(entries, models.ActivityEntry{
			Type:   models.ActivityDeposit,
			Amount: r.Amount,
			Date:   r.RequestDate,
			Status: string(r.Status),
			Detail: fmt.Sprintf("%s %s", r.Method, r.MomoNumber),
		})
	}
	for _, w := range withdrawals {
		entries = append(entries, models.ActivityEntry{
			Type:   models.ActivityWithdrawal,
			Amount: -w.Amount,
			Date:   w.RequestDate,
			Status: string(w.Status),
			Detail: fmt.Sprintf("%s %s", w.Method, w.PayoutNumber),
		})
	}
	for _, inv := range investments {
		// The purchase itself is complete even while the payout cycle runs.
		entries = append(entries, models.ActivityEntry{
			Type:   models.ActivityInvestment,
			Amount: -inv.InvestmentAmount,
			Date:   inv.StartDate,
			Status: models.ActivityCompleted,
			Detail: inv.ProductName,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries, nil
}
