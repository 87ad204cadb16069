package repositories

import (
	"context"
	"errors"

	"github.com/ArowuTest/conomy-backend/internal/models"
)

var (
	// ErrNotFound is returned when no document matches the lookup
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateEmail is returned when a user with the same email exists
	ErrDuplicateEmail = errors.New("duplicate email")
	// ErrDuplicateReferralCode is returned when the referral code index rejects an insert
	ErrDuplicateReferralCode = errors.New("duplicate referral code")
	// ErrDuplicateReference is returned when a statement reference is already attached to a request
	ErrDuplicateReference = errors.New("duplicate statement reference")
	// ErrStatusMismatch is returned by conditional status updates when the current status differs
	ErrStatusMismatch = errors.New("status mismatch")
	// ErrTransactionAborted is returned when a transaction keeps conflicting until the retry budget is spent
	ErrTransactionAborted = errors.New("transaction aborted after repeated conflicts")
)

// Transactor runs a unit of work atomically. Repository calls made with the
// ctx passed to fn take part in the transaction. Implementations retry fn on
// conflicting writes, so fn must be safe to run more than once.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByReferralCode(ctx context.Context, code string) ([]*models.User, error)
	// AdjustBalance applies delta with an atomic increment
	AdjustBalance(ctx context.Context, id string, delta int64) error
	IncrementReferralCount(ctx context.Context, id string) error
}

// TeamRepository defines the interface for referral team operations
type TeamRepository interface {
	Add(ctx context.Context, member *models.TeamMember) error
	FindByOwner(ctx context.Context, ownerID string) ([]*models.TeamMember, error)
}

// InvestmentRepository defines the interface for investment data operations
type InvestmentRepository interface {
	Create(ctx context.Context, investment *models.Investment) error
	FindByUserID(ctx context.Context, userID string) ([]*models.Investment, error)
}

// RechargeRepository defines the interface for deposit request operations
type RechargeRepository interface {
	Create(ctx context.Context, recharge *models.RechargeRequest) error
	FindByID(ctx context.Context, id string) (*models.RechargeRequest, error)
	FindByUserID(ctx context.Context, userID string) ([]*models.RechargeRequest, error)
	FindByStatus(ctx context.Context, status models.RequestStatus) ([]*models.RechargeRequest, error)
	// FindPendingByMomoNumber returns pending requests for the number and amount, oldest first
	FindPendingByMomoNumber(ctx context.Context, momoNumber string, amount int64) ([]*models.RechargeRequest, error)
	// FindByReference returns the request settled by a statement reference
	FindByReference(ctx context.Context, reference string) (*models.RechargeRequest, error)
	UpdateStatus(ctx context.Context, id string, from, to models.RequestStatus) error
	// SetReference attaches a statement reference; references are unique across requests
	SetReference(ctx context.Context, id, reference string) error
}

// WithdrawalRepository defines the interface for withdrawal request operations
type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal *models.WithdrawalRequest) error
	FindByID(ctx context.Context, id string) (*models.WithdrawalRequest, error)
	FindByUserID(ctx context.Context, userID string) ([]*models.WithdrawalRequest, error)
	FindByStatus(ctx context.Context, status models.RequestStatus) ([]*models.WithdrawalRequest, error)
	UpdateStatus(ctx context.Context, id string, from, to models.RequestStatus) error
}
