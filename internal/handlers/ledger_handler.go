package handlers

import (
	"net/http"

	"github.com/ArowuTest/conomy-backend/internal/middleware"
	"github.com/ArowuTest/conomy-backend/internal/models"
	"github.com/ArowuTest/conomy-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// LedgerHandler handles balance, deposit, withdrawal and investment requests
type LedgerHandler struct {
	ledgerService services.LedgerService
	catalog       services.ProductCatalog
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService services.LedgerService, catalog services.ProductCatalog) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
		catalog:       catalog,
	}
}

// GetBalance handles GET /balance
func (h *LedgerHandler) GetBalance(c *gin.Context) {
	balance, err := h.ledgerService.GetBalance(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

// RequestDeposit handles POST /recharges
func (h *LedgerHandler) RequestDeposit(c *gin.Context) {
	var req models.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recharge, err := h.ledgerService.RequestDeposit(c.Request.Context(), middleware.SessionFrom(c), req.Amount, req.MomoNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recharge)
}

// RequestWithdrawal handles POST /withdrawals
func (h *LedgerHandler) RequestWithdrawal(c *gin.Context) {
	var req models.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	withdrawal, err := h.ledgerService.RequestWithdrawal(c.Request.Context(), middleware.SessionFrom(c), req.Amount, req.PayoutNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, withdrawal)
}

// Invest handles POST /investments
func (h *LedgerHandler) Invest(c *gin.Context) {
	var req models.InvestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.catalog.Find(req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	balance, err := h.ledgerService.Invest(c.Request.Context(), middleware.SessionFrom(c),
		product.ID, product.Name, product.Price, product.CycleDays, product.DailyIncome)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.InvestResponse{Balance: balance})
}

// ListInvestments handles GET /investments
func (h *LedgerHandler) ListInvestments(c *gin.Context) {
	investments, err := h.ledgerService.ListInvestments(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, investments)
}

// ListProducts handles GET /products
func (h *LedgerHandler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.List())
}
