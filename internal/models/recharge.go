package models

import (
	"time"
)

// RequestStatus is the settlement state of a deposit or withdrawal request
type RequestStatus string

const (
	StatusPending  RequestStatus = "Pending"
	StatusApproved RequestStatus = "Approved"
	StatusRejected RequestStatus = "Rejected"
)

// MethodMobileMoney is the only payment rail offered
const MethodMobileMoney = "MTN Mobile Money"

// RechargeRequest is a deposit submitted by a user, credited once approved
type RechargeRequest struct {
	ID          string        `bson:"_id,omitempty" json:"id"`
	UserID      string        `bson:"userId" json:"userId"`
	Amount      int64         `bson:"amount" json:"amount"`
	Method      string        `bson:"method" json:"method"`
	MomoNumber  string        `bson:"momoNumber" json:"momoNumber"`
	Status      RequestStatus `bson:"status" json:"status"`
	RequestDate time.Time     `bson:"requestDate,omitempty" json:"requestDate"`
	SettledAt   *time.Time    `bson:"settledAt,omitempty" json:"settledAt,omitempty"`
	// Reference is the statement reference that settled the request, set by reconciliation
	Reference string `bson:"reference,omitempty" json:"reference,omitempty"`
}

// WithdrawalRequest is a payout requested by a user, debited once approved
type WithdrawalRequest struct {
	ID           string        `bson:"_id,omitempty" json:"id"`
	UserID       string        `bson:"userId" json:"userId"`
	Amount       int64         `bson:"amount" json:"amount"`
	Method       string        `bson:"method" json:"method"`
	PayoutNumber string        `bson:"payoutNumber" json:"payoutNumber"`
	Status       RequestStatus `bson:"status" json:"status"`
	RequestDate  time.Time     `bson:"requestDate,omitempty" json:"requestDate"`
	SettledAt    *time.Time    `bson:"settledAt,omitempty" json:"settledAt,omitempty"`
}

// DepositRequest is the body of POST /recharges
type DepositRequest struct {
	Amount     int64  `json:"amount" binding:"required"`
	MomoNumber string `json:"momoNumber" binding:"required"`
}

// WithdrawRequest is the body of POST /withdrawals
type WithdrawRequest struct {
	Amount       int64  `json:"amount" binding:"required"`
	PayoutNumber string `json:"payoutNumber" binding:"required"`
}
