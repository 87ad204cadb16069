package handlers

import (
	"net/http"

	"github.com/ArowuTest/conomy-backend/internal/middleware"
	"github.com/ArowuTest/conomy-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// TeamHandler serves the team list and the activity history
type TeamHandler struct {
	referralService services.ReferralService
	activityService services.ActivityService
}

// NewTeamHandler creates a new TeamHandler
func NewTeamHandler(referralService services.ReferralService, activityService services.ActivityService) *TeamHandler {
	return &TeamHandler{
		referralService: referralService,
		activityService: activityService,
	}
}

// ListTeam handles GET /team
func (h *TeamHandler) ListTeam(c *gin.Context) {
	members, err := h.referralService.ListTeam(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// GetActivity handles GET /activity
func (h *TeamHandler) GetActivity(c *gin.Context) {
	entries, err := h.activityService.GetActivity(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
