package admin

import (
	"net/http"

	"github.com/ecorank/ecorank-server/internal/database"
	"github.com/ecorank/ecorank-server/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) getAllSubmissions(c *gin.Context) {
	submissions, err := database.GetAllSubmissions(h.db)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, submissions, "Submissions retrieved successfully")
}

func (h *Handler) getSubmission(c *gin.Context) {
	submission, err := database.GetSubmission(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, "submission not found")
		return
	}
	util.Success(c, submission, "Submission retrieved successfully")
}

// updateSubmissionValidity is the moderation hook: flipping a
// submission invalid removes it from every total and leaderboard
// without destroying the record.
func (h *Handler) updateSubmissionValidity(c *gin.Context) {
	submission, err := database.GetSubmission(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, "submission not found")
		return
	}

	var req struct {
		IsValid *bool `json:"is_valid" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	if submission.IsValid == *req.IsValid {
		util.Success(c, submission, "Submission validity unchanged")
		return
	}

	if err := database.UpdateSubmissionValidity(h.db, submission.ID, *req.IsValid); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	if err := database.RecalculateUserScore(h.db, submission.UserID, submission.ChallengeID, submission.ID); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	if submission.CrewID != "" {
		if err := database.RecalculateCrewScore(h.db, submission.CrewID); err != nil {
			util.Error(c, http.StatusInternalServerError, err)
			return
		}
	}

	h.refreshLeaderboards(submission.ChallengeID, submission.CrewID)

	zap.S().Infof("admin set submission %s validity to %t", submission.ID, *req.IsValid)
	util.Success(c, nil, "Submission validity updated")
}
