package models

import (
	"time"
)

// InvestmentStatus is the lifecycle state of an investment
type InvestmentStatus string

const (
	InvestmentActive    InvestmentStatus = "active"
	InvestmentCompleted InvestmentStatus = "completed"
	InvestmentPending   InvestmentStatus = "pending"
)

// Investment records a product purchased with the user's balance
type Investment struct {
	ID               string           `bson:"_id,omitempty" json:"id"`
	UserID           string           `bson:"userId" json:"userId"`
	ProductID        string           `bson:"productId" json:"productId"`
	ProductName      string           `bson:"productName" json:"productName"`
	InvestmentAmount int64            `bson:"investmentAmount" json:"investmentAmount"`
	CycleDays        int              `bson:"cycleDays" json:"cycleDays"`
	DailyIncome      int64            `bson:"dailyIncome" json:"dailyIncome"`
	TotalIncome      int64            `bson:"totalIncome" json:"totalIncome"`
	TotalEarned      int64            `bson:"totalEarned" json:"totalEarned"`
	Status           InvestmentStatus `bson:"status" json:"status"`
	StartDate        time.Time        `bson:"startDate,omitempty" json:"startDate"`
	DaysProgress     int              `bson:"daysProgress" json:"daysProgress"`
}

// Product is an investment product offered in the catalog
type Product struct {
	ID          string `mapstructure:"id" json:"id"`
	Name        string `mapstructure:"name" json:"name"`
	Price       int64  `mapstructure:"price" json:"price"`
	CycleDays   int    `mapstructure:"cycleDays" json:"cycleDays"`
	DailyIncome int64  `mapstructure:"dailyIncome" json:"dailyIncome"`
}

// TotalIncome is the full payout over the product cycle
func (p Product) TotalIncome() int64 {
	return p.DailyIncome * int64(p.CycleDays)
}

// InvestRequest is the body of POST /investments
type InvestRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// InvestResponse is returned after a successful purchase
type InvestResponse struct {
	Balance int64 `json:"balance"`
}
