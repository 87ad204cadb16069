package models

import (
	"time"
)

// ActivityType names the record stream an activity entry came from
type ActivityType string

const (
	ActivityDeposit    ActivityType = "Deposit"
	ActivityWithdrawal ActivityType = "Withdrawal"
	ActivityInvestment ActivityType = "Investment"
)

// ActivityCompleted is reported for every investment purchase
const ActivityCompleted = "Completed"

// ActivityEntry is one line of the merged transaction history.
// Amount is signed: deposits are positive, withdrawals and investments negative.
type ActivityEntry struct {
	Type   ActivityType `json:"type"`
	Amount int64        `json:"amount"`
	Date   time.Time    `json:"date"`
	Status string       `json:"status"`
	Detail string       `json:"detail"`
}
