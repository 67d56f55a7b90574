package admin

import (
	"fmt"
	"net/http"

	"github.com/ecorank/ecorank-server/internal/database"
	"github.com/ecorank/ecorank-server/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// recalculateScore rebuilds a user's cached totals from their valid
// submissions. Useful after manual database surgery or a scoring bug.
func (h *Handler) recalculateScore(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	user, err := database.GetUserByID(h.db, req.UserID)
	if err != nil {
		util.Error(c, http.StatusNotFound, "user not found")
		return
	}

	// Empty challenge and submission IDs mark the history row as an
	// admin-triggered recalculation.
	if err := database.RecalculateUserScore(h.db, user.ID, "", "admin-recalc"); err != nil {
		util.Error(c, http.StatusInternalServerError, fmt.Errorf("failed to recalculate scores: %w", err))
		return
	}
	if user.CrewID != "" {
		if err := database.RecalculateCrewScore(h.db, user.CrewID); err != nil {
			util.Error(c, http.StatusInternalServerError, err)
			return
		}
		h.refreshLeaderboards("", user.CrewID)
	}

	zap.S().Infof("admin triggered score recalculation for user %s", user.ID)
	util.Success(c, nil, "Score recalculation triggered successfully")
}
