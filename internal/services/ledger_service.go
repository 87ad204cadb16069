package services

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"

	"github.com/ArowuTest/conomy-backend/internal/metrics"
	"github.com/ArowuTest/conomy-backend/internal/models"
	"github.com/ArowuTest/conomy-backend/internal/repositories"
)

// Amount limits in UGX
const (
	MinDepositAmount    int64 = 1000
	MinWithdrawalAmount int64 = 10000
)

// Balance is the result of GetBalance. Available is false for a signed-out
// session, which is distinct from a zero balance.
type Balance struct {
	Amount    int64 `json:"balance"`
	Available bool  `json:"available"`
}

// Compile-time check to ensure LedgerServiceImpl implements LedgerService
var _ LedgerService = (*LedgerServiceImpl)(nil)

// LedgerServiceImpl owns every operation that reads or moves a user's balance
type LedgerServiceImpl struct {
	tx             repositories.Transactor
	userRepo       repositories.UserRepository
	investmentRepo repositories.InvestmentRepository
	rechargeRepo   repositories.RechargeRepository
	withdrawalRepo repositories.WithdrawalRepository
}

// NewLedgerService creates a new LedgerServiceImpl
func NewLedgerService(
	tx repositories.Transactor,
	userRepo repositories.UserRepository,
	investmentRepo repositories.InvestmentRepository,
	rechargeRepo repositories.RechargeRepository,
	withdrawalRepo repositories.WithdrawalRepository,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		tx:             tx,
		userRepo:       userRepo,
		investmentRepo: investmentRepo,
		rechargeRepo:   rechargeRepo,
		withdrawalRepo: withdrawalRepo,
	}
}

// RequestDeposit records a pending deposit request
func (s *LedgerServiceImpl) RequestDeposit(ctx context.Context, sess Session, amount int64, momoNumber string) (recharge *models.RechargeRequest, err error) {
	defer func() { metrics.RecordOperation("deposit_request", outcome(err)) }()

	if err := requireSession(sess); err != nil {
		return nil, err
	}
	momoNumber = strings.TrimSpace(momoNumber)
	if amount < MinDepositAmount {
		return nil, invalid("amount", "minimum deposit amount is UGX %d", MinDepositAmount)
	}
	if momoNumber == "" {
		return nil, invalid("momoNumber", "mobile money number is required")
	}

	recharge = &models.RechargeRequest{
		UserID:     sess.UserID,
		Amount:     amount,
		Method:     models.MethodMobileMoney,
		MomoNumber: momoNumber,
		Status:     models.StatusPending,
	}
	if err := s.rechargeRepo.Create(ctx, recharge); err != nil {
		slog.Error("Failed to submit recharge request", "error", err, "userId", sess.UserID)
		return nil, storeErr("create recharge request", err)
	}

	slog.Info("Recharge request submitted", "userId", sess.UserID, "amount", amount, "rechargeId", recharge.ID)
	return recharge, nil
}

// RequestWithdrawal records a pending withdrawal request. The balance is
// checked but not held; the deduction happens when the request is approved.
func (s *LedgerServiceImpl) RequestWithdrawal(ctx context.Context, sess Session, amount int64, payoutNumber string) (withdrawal *models.WithdrawalRequest, err error) {
	defer func() { metrics.RecordOperation("withdrawal_request", outcome(err)) }()

	if err := requireSession(sess); err != nil {
		return nil, err
	}
	payoutNumber = strings.TrimSpace(payoutNumber)
	if amount < MinWithdrawalAmount {
		return nil, invalid("amount", "minimum withdrawal amount is UGX %d", MinWithdrawalAmount)
	}
	if payoutNumber == "" {
		return nil, invalid("payoutNumber", "payout number is required")
	}

	user, err := s.findUser(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if amount > user.Balance {
		return nil, ErrInsufficientFunds
	}

	withdrawal = &models.WithdrawalRequest{
		UserID:       sess.UserID,
		Amount:       amount,
		Method:       models.MethodMobileMoney,
		PayoutNumber: payoutNumber,
		Status:       models.StatusPending,
	}
	if err := s.withdrawalRepo.Create(ctx, withdrawal); err != nil {
		slog.Error("Failed to submit withdrawal request", "error", err, "userId", sess.UserID)
		return nil, storeErr("create withdrawal request", err)
	}

	slog.Info("Withdrawal request submitted", "userId", sess.UserID, "amount", amount, "withdrawalId", withdrawal.ID)
	return withdrawal, nil
}

// Invest buys a product with the user's balance. The balance check, the
// deduction and the investment record commit together or not at all; on a
// conflicting concurrent write the whole unit of work runs again against the
// fresh balance.
func (s *LedgerServiceImpl) Invest(ctx context.Context, sess Session, productID, productName string, price int64, cycleDays int, dailyIncome int64) (balance int64, err error) {
	defer func() { metrics.RecordOperation("invest", outcome(err)) }()

	if err := requireSession(sess); err != nil {
		return 0, err
	}
	switch {
	case productID == "":
		return 0, invalid("productId", "product is required")
	case price <= 0:
		return 0, invalid("price", "price must be positive")
	case cycleDays <= 0:
		return 0, invalid("cycleDays", "cycle must be at least one day")
	case dailyIncome < 0:
		return 0, invalid("dailyIncome", "daily income cannot be negative")
	case dailyIncome > math.MaxInt64/int64(cycleDays):
		return 0, invalid("dailyIncome", "total income over %d days is out of range", cycleDays)
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.FindByID(ctx, sess.UserID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if user.Balance < price {
			return ErrInsufficientFunds
		}

		if err := s.userRepo.AdjustBalance(ctx, user.ID, -price); err != nil {
			return err
		}
		investment := &models.Investment{
			UserID:           user.ID,
			ProductID:        productID,
			ProductName:      productName,
			InvestmentAmount: price,
			CycleDays:        cycleDays,
			DailyIncome:      dailyIncome,
			TotalIncome:      dailyIncome * int64(cycleDays),
			Status:           models.InvestmentActive,
			DaysProgress:     0,
		}
		if err := s.investmentRepo.Create(ctx, investment); err != nil {
			return err
		}
		balance = user.Balance - price
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			slog.Warn("Investment rejected: insufficient funds", "userId", sess.UserID, "productId", productID, "price", price)
		} else {
			slog.Error("Investment failed", "error", err, "userId", sess.UserID, "productId", productID)
		}
		return 0, storeErr("invest", err)
	}

	slog.Info("Investment purchased", "userId", sess.UserID, "productId", productID, "price", price, "balance", balance)
	return balance, nil
}

// GetBalance returns the signed-in user's balance
func (s *LedgerServiceImpl) GetBalance(ctx context.Context, sess Session) (Balance, error) {
	if !sess.SignedIn() {
		return Balance{}, nil
	}
	user, err := s.findUser(ctx, sess.UserID)
	if err != nil {
		return Balance{}, err
	}
	return Balance{Amount: user.Balance, Available: true}, nil
}

// ListInvestments returns the user's investments, newest first
func (s *LedgerServiceImpl) ListInvestments(ctx context.Context, sess Session) ([]*models.Investment, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	investments, err := s.investmentRepo.FindByUserID(ctx, sess.UserID)
	if err != nil {
		slog.Error("Failed to load investments", "error", err, "userId", sess.UserID)
		return nil, storeErr("list investments", err)
	}
	return investments, nil
}

func (s *LedgerServiceImpl) findUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeErr("find user", err)
	}
	return user, nil
}
