package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ArowuTest/conomy-backend/internal/metrics"
	"github.com/ArowuTest/conomy-backend/internal/models"
	"github.com/ArowuTest/conomy-backend/internal/repositories"
)

var _ SettlementService = (*SettlementServiceImpl)(nil)

// SettlementServiceImpl settles pending deposit and withdrawal requests
type SettlementServiceImpl struct {
	tx             repositories.Transactor
	userRepo       repositories.UserRepository
	rechargeRepo   repositories.RechargeRepository
	withdrawalRepo repositories.WithdrawalRepository
}

// NewSettlementService creates a new SettlementServiceImpl
func NewSettlementService(
	tx repositories.Transactor,
	userRepo repositories.UserRepository,
	rechargeRepo repositories.RechargeRepository,
	withdrawalRepo repositories.WithdrawalRepository,
) *SettlementServiceImpl {
	return &SettlementServiceImpl{
		tx:             tx,
		userRepo:       userRepo,
		rechargeRepo:   rechargeRepo,
		withdrawalRepo: withdrawalRepo,
	}
}

func requireAdmin(sess Session) error {
	if !sess.SignedIn() {
		return ErrUnauthenticated
	}
	if !sess.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// PendingRecharges lists recharge requests awaiting settlement, oldest first
func (s *SettlementServiceImpl) PendingRecharges(ctx context.Context, sess Session) ([]*models.RechargeRequest, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	recharges, err := s.rechargeRepo.FindByStatus(ctx, models.StatusPending)
	if err != nil {
		return nil, storeErr("list pending recharges", err)
	}
	return recharges, nil
}

// PendingWithdrawals lists withdrawal requests awaiting settlement, oldest first
func (s *SettlementServiceImpl) PendingWithdrawals(ctx context.Context, sess Session) ([]*models.WithdrawalRequest, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	withdrawals, err := s.withdrawalRepo.FindByStatus(ctx, models.StatusPending)
	if err != nil {
		return nil, storeErr("list pending withdrawals", err)
	}
	return withdrawals, nil
}

// ApproveRecharge marks the request approved and credits its amount
func (s *SettlementServiceImpl) ApproveRecharge(ctx context.Context, sess Session, id string) (recharge *models.RechargeRequest, err error) {
	defer func() { metrics.RecordOperation("approve_recharge", outcome(err)) }()

	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	recharge, err = s.settleRecharge(ctx, id, models.StatusApproved)
	if err != nil {
		return nil, err
	}
	slog.Info("Recharge approved", "rechargeId", id, "userId", recharge.UserID, "amount", recharge.Amount, "admin", sess.UserID)
	return recharge, nil
}

// RejectRecharge marks the request rejected. The balance is not touched.
func (s *SettlementServiceImpl) RejectRecharge(ctx context.Context, sess Session, id string) (recharge *models.RechargeRequest, err error) {
	defer func() { metrics.RecordOperation("reject_recharge", outcome(err)) }()

	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	recharge, err = s.settleRecharge(ctx, id, models.StatusRejected)
	if err != nil {
		return nil, err
	}
	slog.Info("Recharge rejected", "rechargeId", id, "userId", recharge.UserID, "admin", sess.UserID)
	return recharge, nil
}

// ReconcileRecharge approves the oldest pending recharge for momoNumber and
// amount and records reference on it. A reference that already settled a
// request is rejected with ErrAlreadyReconciled, so replaying a statement
// credits nothing twice.
func (s *SettlementServiceImpl) ReconcileRecharge(ctx context.Context, sess Session, momoNumber string, amount int64, reference string) (recharge *models.RechargeRequest, err error) {
	defer func() { metrics.RecordOperation("reconcile_recharge", outcome(err)) }()

	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	momoNumber = strings.TrimSpace(momoNumber)
	reference = strings.TrimSpace(reference)
	switch {
	case momoNumber == "":
		return nil, invalid("momoNumber", "mobile money number is required")
	case amount <= 0:
		return nil, invalid("amount", "amount must be positive")
	case reference == "":
		return nil, invalid("reference", "statement reference is required")
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.rechargeRepo.FindByReference(ctx, reference); err == nil {
			return ErrAlreadyReconciled
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		matches, err := s.rechargeRepo.FindPendingByMomoNumber(ctx, momoNumber, amount)
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return ErrRequestNotFound
		}
		recharge, err = s.settleRechargeTx(ctx, matches[0].ID, models.StatusApproved, reference)
		return err
	})
	if err != nil {
		return nil, settlementErr("reconcile recharge", reference, err)
	}
	slog.Info("Recharge reconciled", "rechargeId", recharge.ID, "userId", recharge.UserID, "amount", recharge.Amount, "reference", reference, "admin", sess.UserID)
	return recharge, nil
}

func (s *SettlementServiceImpl) settleRecharge(ctx context.Context, id string, to models.RequestStatus) (*models.RechargeRequest, error) {
	var recharge *models.RechargeRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		recharge, err = s.settleRechargeTx(ctx, id, to, "")
		return err
	})
	if err != nil {
		return nil, settlementErr("settle recharge", id, err)
	}
	return recharge, nil
}

// settleRechargeTx settles a pending recharge within the caller's transaction.
func (s *SettlementServiceImpl) settleRechargeTx(ctx context.Context, id string, to models.RequestStatus, reference string) (*models.RechargeRequest, error) {
	found, err := s.rechargeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found.Status != models.StatusPending {
		return nil, ErrAlreadySettled
	}
	if to == models.StatusApproved {
		if err := s.userRepo.AdjustBalance(ctx, found.UserID, found.Amount); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}
	if err := s.rechargeRepo.UpdateStatus(ctx, id, models.StatusPending, to); err != nil {
		return nil, err
	}
	if reference != "" {
		if err := s.rechargeRepo.SetReference(ctx, id, reference); err != nil {
			return nil, err
		}
		found.Reference = reference
	}
	found.Status = to
	return found, nil
}

// ApproveWithdrawal marks the request approved and deducts its amount. The
// balance is checked again here; a request that would overdraw stays pending.
func (s *SettlementServiceImpl) ApproveWithdrawal(ctx context.Context, sess Session, id string) (withdrawal *models.WithdrawalRequest, err error) {
	defer func() { metrics.RecordOperation("approve_withdrawal", outcome(err)) }()

	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	withdrawal, err = s.settleWithdrawal(ctx, id, models.StatusApproved)
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			slog.Warn("Withdrawal approval rejected: insufficient funds", "withdrawalId", id)
		}
		return nil, err
	}
	slog.Info("Withdrawal approved", "withdrawalId", id, "userId", withdrawal.UserID, "amount", withdrawal.Amount, "admin", sess.UserID)
	return withdrawal, nil
}

// RejectWithdrawal marks the request rejected
func (s *SettlementServiceImpl) RejectWithdrawal(ctx context.Context, sess Session, id string) (withdrawal *models.WithdrawalRequest, err error) {
	defer func() { metrics.RecordOperation("reject_withdrawal", outcome(err)) }()

	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	withdrawal, err = s.settleWithdrawal(ctx, id, models.StatusRejected)
	if err != nil {
		return nil, err
	}
	slog.Info("Withdrawal rejected", "withdrawalId", id, "userId", withdrawal.UserID, "admin", sess.UserID)
	return withdrawal, nil
}

func (s *SettlementServiceImpl) settleWithdrawal(ctx context.Context, id string, to models.RequestStatus) (*models.WithdrawalRequest, error) {
	var withdrawal *models.WithdrawalRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		found, err := s.withdrawalRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if found.Status != models.StatusPending {
			return ErrAlreadySettled
		}
		if to == models.StatusApproved {
			user, err := s.userRepo.FindByID(ctx, found.UserID)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return ErrUserNotFound
				}
				return err
			}
			if user.Balance < found.Amount {
				return ErrInsufficientFunds
			}
			if err := s.userRepo.AdjustBalance(ctx, user.ID, -found.Amount); err != nil {
				return err
			}
		}
		if err := s.withdrawalRepo.UpdateStatus(ctx, id, models.StatusPending, to); err != nil {
			return err
		}
		found.Status = to
		withdrawal = found
		return nil
	})
	if err != nil {
		return nil, settlementErr("settle withdrawal", id, err)
	}
	return withdrawal, nil
}

func settlementErr(op, id string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrRequestNotFound
	case errors.Is(err, repositories.ErrStatusMismatch):
		return ErrAlreadySettled
	case errors.Is(err, repositories.ErrDuplicateReference):
		return ErrAlreadyReconciled
	}
	if !isDomainError(err) {
		slog.Error("Settlement failed", "error", err, "op", op, "id", id)
	}
	return storeErr(op, err)
}
