package admin

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ecorank/ecorank-server/internal/database"
	"github.com/ecorank/ecorank-server/internal/database/models"
	"github.com/ecorank/ecorank-server/internal/scoring"
	"github.com/ecorank/ecorank-server/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type challengeRequest struct {
	Name               string    `json:"name" binding:"required"`
	Type               string    `json:"type" binding:"required"`
	StartTime          time.Time `json:"start_time" binding:"required"`
	EndTime            time.Time `json:"end_time" binding:"required"`
	LowerScoreIsBetter bool      `json:"lower_score_is_better"`
	CrewID             string    `json:"crew_id"`
}

func (r *challengeRequest) validate(db *gorm.DB) error {
	if !scoring.ChallengeType(r.Type).Valid() {
		return fmt.Errorf("unknown challenge type %q", r.Type)
	}
	if !r.EndTime.After(r.StartTime) {
		return fmt.Errorf("end_time must be after start_time")
	}
	if r.CrewID != "" {
		if _, err := database.GetCrewByID(db, r.CrewID); err != nil {
			return fmt.Errorf("crew %s not found", r.CrewID)
		}
	}
	return nil
}

func (h *Handler) getAllChallenges(c *gin.Context) {
	challenges, err := database.GetAllChallenges(h.db)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, challenges, "Challenges retrieved successfully")
}

func (h *Handler) getChallenge(c *gin.Context) {
	challenge, err := database.GetChallengeByID(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, "challenge not found")
		return
	}
	util.Success(c, challenge, "Challenge retrieved successfully")
}

func (h *Handler) createChallenge(c *gin.Context) {
	var req challengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(h.db); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	challenge := models.Challenge{
		ID:                 uuid.NewString(),
		Name:               req.Name,
		Type:               scoring.ChallengeType(req.Type),
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		LowerScoreIsBetter: req.LowerScoreIsBetter,
		CrewID:             req.CrewID,
	}
	if err := database.CreateChallenge(h.db, &challenge); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	zap.S().Infof("challenge %q (%s) created", challenge.Name, challenge.ID)
	util.Success(c, challenge, "Challenge created successfully")
}

func (h *Handler) updateChallenge(c *gin.Context) {
	challenge, err := database.GetChallengeByID(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, "challenge not found")
		return
	}

	var req challengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(h.db); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	challenge.Name = req.Name
	challenge.Type = scoring.ChallengeType(req.Type)
	challenge.StartTime = req.StartTime
	challenge.EndTime = req.EndTime
	challenge.LowerScoreIsBetter = req.LowerScoreIsBetter
	challenge.CrewID = req.CrewID

	if err := database.UpdateChallenge(h.db, challenge); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	h.refreshLeaderboards(challenge.ID, "")
	util.Success(c, challenge, "Challenge updated successfully")
}

func (h *Handler) deleteChallenge(c *gin.Context) {
	challengeID := c.Param("id")
	if _, err := database.GetChallengeByID(h.db, challengeID); err != nil {
		util.Error(c, http.StatusNotFound, "challenge not found")
		return
	}

	if err := database.DeleteChallenge(h.db, challengeID); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	h.cache.Invalidate("leaderboard:challenge:" + challengeID)

	zap.S().Infof("challenge %s deleted", challengeID)
	util.Success(c, nil, "Challenge deleted successfully")
}
