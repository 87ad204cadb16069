package services

import (
	"context"

	"github.com/ArowuTest/conomy-backend/internal/models"
)

// LedgerService defines the balance-affecting operations of a signed-in user
type LedgerService interface {
	// RequestDeposit records a pending mobile money deposit. No balance effect.
	RequestDeposit(ctx context.Context, sess Session, amount int64, momoNumber string) (*models.RechargeRequest, error)

	// RequestWithdrawal records a pending payout after checking the balance covers it. No balance effect.
	RequestWithdrawal(ctx context.Context, sess Session, amount int64, payoutNumber string) (*models.WithdrawalRequest, error)

	// Invest deducts price and creates the investment in one transaction, returning the new balance
	Invest(ctx context.Context, sess Session, productID, productName string, price int64, cycleDays int, dailyIncome int64) (int64, error)

	// GetBalance returns the current balance, or an unavailable Balance when signed out
	GetBalance(ctx context.Context, sess Session) (Balance, error)

	// ListInvestments returns the user's purchased products
	ListInvestments(ctx context.Context, sess Session) ([]*models.Investment, error)
}

// ReferralService defines the referral index operations
type ReferralService interface {
	// RegisterReferral links a newly registered user to the owner of referredByCode
	RegisterReferral(ctx context.Context, newUserID, newUserFullName, referredByCode string) (*models.User, error)

	// ListTeam returns the members the user referred, in store order
	ListTeam(ctx context.Context, sess Session) ([]*models.TeamMember, error)
}

// ActivityService defines the merged transaction history
type ActivityService interface {
	GetActivity(ctx context.Context, sess Session) ([]models.ActivityEntry, error)
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Profile(ctx context.Context, sess Session) (*models.Profile, error)
	// Authenticate resolves a session token into a Session
	Authenticate(token string) (Session, error)
}

// SettlementService defines the admin approval path for deposits and withdrawals
type SettlementService interface {
	PendingRecharges(ctx context.Context, sess Session) ([]*models.RechargeRequest, error)
	PendingWithdrawals(ctx context.Context, sess Session) ([]*models.WithdrawalRequest, error)
	ApproveRecharge(ctx context.Context, sess Session, id string) (*models.RechargeRequest, error)
	RejectRecharge(ctx context.Context, sess Session, id string) (*models.RechargeRequest, error)
	ApproveWithdrawal(ctx context.Context, sess Session, id string) (*models.WithdrawalRequest, error)
	RejectWithdrawal(ctx context.Context, sess Session, id string) (*models.WithdrawalRequest, error)
	// ReconcileRecharge approves the oldest pending recharge matching a mobile money
	// statement line and records the line's reference. Each reference settles at most one request.
	ReconcileRecharge(ctx context.Context, sess Session, momoNumber string, amount int64, reference string) (*models.RechargeRequest, error)
}

// ProductCatalog defines the investment products on offer
type ProductCatalog interface {
	List() []models.Product
	Find(id string) (models.Product, error)
}
