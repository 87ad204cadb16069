package handlers

import (
	"context"
	"net/http"

	"github.com/ArowuTest/conomy-backend/internal/middleware"
	"github.com/ArowuTest/conomy-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles settlement of pending requests
type AdminHandler struct {
	settlementService services.SettlementService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(settlementService services.SettlementService) *AdminHandler {
	return &AdminHandler{
		settlementService: settlementService,
	}
}

// PendingRecharges handles GET /admin/recharges/pending
func (h *AdminHandler) PendingRecharges(c *gin.Context) {
	recharges, err := h.settlementService.PendingRecharges(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recharges)
}

// PendingWithdrawals handles GET /admin/withdrawals/pending
func (h *AdminHandler) PendingWithdrawals(c *gin.Context) {
	withdrawals, err := h.settlementService.PendingWithdrawals(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, withdrawals)
}

// ApproveRecharge handles POST /admin/recharges/:id/approve
func (h *AdminHandler) ApproveRecharge(c *gin.Context) {
	settle(c, func(ctx context.Context, sess services.Session, id string) (interface{}, error) {
		return h.settlementService.ApproveRecharge(ctx, sess, id)
	})
}

// RejectRecharge handles POST /admin/recharges/:id/reject
func (h *AdminHandler) RejectRecharge(c *gin.Context) {
	settle(c, func(ctx context.Context, sess services.Session, id string) (interface{}, error) {
		return h.settlementService.RejectRecharge(ctx, sess, id)
	})
}

// ApproveWithdrawal handles POST /admin/withdrawals/:id/approve
func (h *AdminHandler) ApproveWithdrawal(c *gin.Context) {
	settle(c, func(ctx context.Context, sess services.Session, id string) (interface{}, error) {
		return h.settlementService.ApproveWithdrawal(ctx, sess, id)
	})
}

// RejectWithdrawal handles POST /admin/withdrawals/:id/reject
func (h *AdminHandler) RejectWithdrawal(c *gin.Context) {
	settle(c, func(ctx context.Context, sess services.Session, id string) (interface{}, error) {
		return h.settlementService.RejectWithdrawal(ctx, sess, id)
	})
}

func settle(c *gin.Context, fn func(ctx context.Context, sess services.Session, id string) (interface{}, error)) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request ID is required"})
		return
	}
	result, err := fn(c.Request.Context(), middleware.SessionFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
