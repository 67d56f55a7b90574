package user

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ecorank/ecorank-server/internal/database"
	"github.com/ecorank/ecorank-server/internal/database/models"
	"github.com/ecorank/ecorank-server/internal/pubsub"
	"github.com/ecorank/ecorank-server/internal/scoring"
	"github.com/ecorank/ecorank-server/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// checkShowerDailyCaps enforces the per-day entry caps for shower logs,
// counting entries already stored today plus those in the new payload.
func (h *Handler) checkShowerDailyCaps(userID string, payload *scoring.ShowerPayload) error {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	existing, err := database.GetUserSubmissionsForDay(h.db, userID, scoring.TypeShower, dayStart)
	if err != nil {
		return err
	}

	showers, skips := 0, 0
	for _, sub := range existing {
		var stored scoring.ShowerPayload
		if err := json.Unmarshal(sub.Payload, &stored); err != nil {
			continue
		}
		for _, entry := range stored.Entries {
			if entry.Skipped {
				skips++
			} else {
				showers++
			}
		}
	}
	for _, entry := range payload.Entries {
		if entry.Skipped {
			skips++
		} else {
			showers++
		}
	}

	if showers > scoring.MaxShowersPerDay {
		return &scoring.ValidationError{Reason: fmt.Sprintf("at most %d showers can be logged per day", scoring.MaxShowersPerDay)}
	}
	if skips > scoring.MaxSkipsPerDay {
		return &scoring.ValidationError{Reason: fmt.Sprintf("at most %d skipped shower can be logged per day", scoring.MaxSkipsPerDay)}
	}
	return nil
}

// checkRecyclingWindow allows one recycling submission per configured
// window, so the same bin of items cannot be logged twice in a row.
func (h *Handler) checkRecyclingWindow(userID string) error {
	window := time.Duration(h.cfg.Limits.RecyclingWindowHours) * time.Hour
	if window <= 0 {
		return nil
	}
	count, err := database.CountSubmissionsSince(h.db, userID, scoring.TypeRecycling, time.Now().Add(-window))
	if err != nil {
		return err
	}
	if count > 0 {
		return &scoring.ValidationError{Reason: fmt.Sprintf("recycling can only be logged once every %d hours", h.cfg.Limits.RecyclingWindowHours)}
	}
	return nil
}

// publishLeaderboards recomputes and pushes the affected leaderboard
// streams after a submission changes scores.
func (h *Handler) publishLeaderboards(challengeID, crewID string) {
	h.cache.Invalidate("leaderboard:challenge:" + challengeID)
	if entries, err := h.challengeLeaderboard(challengeID); err == nil {
		h.broker.Publish("challenge:"+challengeID, pubsub.FormatMessage("leaderboard", entries))
	}

	if crewID == "" {
		return
	}
	h.cache.Invalidate("leaderboard:crew:" + crewID)
	if entries, err := h.crewLeaderboard(crewID); err == nil {
		h.broker.Publish("crew:"+crewID, pubsub.FormatMessage("leaderboard", entries))
	}
}

func (h *Handler) submitToChallenge(c *gin.Context) {
	userID := c.GetString("userID")
	user, err := database.GetUserByID(h.db, userID)
	if err != nil {
		util.Error(c, http.StatusNotFound, err)
		return
	}
	if user.BannedUntil != nil && user.BannedUntil.After(time.Now()) {
		util.Error(c, http.StatusForbidden, fmt.Sprintf("account suspended until %s: %s", user.BannedUntil.Format(time.RFC3339), user.BanReason))
		return
	}

	challenge, err := database.GetChallengeByID(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, "challenge not found")
		return
	}
	if status := challenge.Status(time.Now()); status != models.ChallengeActive {
		util.Error(c, http.StatusForbidden, fmt.Sprintf("challenge is %s, submissions are closed", status))
		return
	}
	if challenge.CrewID != "" && challenge.CrewID != user.CrewID {
		util.Error(c, http.StatusForbidden, "this challenge is restricted to another crew")
		return
	}

	if !h.limiter.Allow(userID) {
		util.Error(c, http.StatusTooManyRequests, "you are submitting too quickly, slow down")
		return
	}

	var req struct {
		Payload json.RawMessage `json:"payload" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	payload, err := scoring.ParsePayload(challenge.Type, req.Payload)
	if err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}
	if err := payload.Validate(); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	switch p := payload.(type) {
	case *scoring.ShowerPayload:
		if err := h.checkShowerDailyCaps(userID, p); err != nil {
			var vErr *scoring.ValidationError
			if errors.As(err, &vErr) {
				util.Error(c, http.StatusBadRequest, vErr)
			} else {
				util.Error(c, http.StatusInternalServerError, err)
			}
			return
		}
	case *scoring.RecyclingPayload:
		if err := h.checkRecyclingWindow(userID); err != nil {
			var vErr *scoring.ValidationError
			if errors.As(err, &vErr) {
				util.Error(c, http.StatusBadRequest, vErr)
			} else {
				util.Error(c, http.StatusInternalServerError, err)
			}
			return
		}
	}

	score := payload.Score()
	if challenge.Type == scoring.TypeRecycling && score > scoring.MaxRecyclingScore {
		score = scoring.MaxRecyclingScore
	}

	submission := models.Submission{
		ID:          uuid.NewString(),
		UserID:      userID,
		ChallengeID: challenge.ID,
		CrewID:      user.CrewID,
		Type:        challenge.Type,
		Payload:     models.JSONPayload(req.Payload),
		Score:       score,
		IsValid:     true,
	}
	if err := database.ApplySubmission(h.db, &submission); err != nil {
		util.Error(c, http.StatusInternalServerError, fmt.Errorf("failed to record submission: %w", err))
		return
	}

	zap.S().Infof("submission %s: user %s scored %.2f on challenge %s", submission.ID, userID, score, challenge.ID)
	h.publishLeaderboards(challenge.ID, user.CrewID)

	util.Success(c, gin.H{
		"submission_id": submission.ID,
		"score":         score,
	}, "Submission recorded")
}

func (h *Handler) getUserSubmissions(c *gin.Context) {
	userID := c.GetString("userID")
	submissions, err := database.GetSubmissionsByUserID(h.db, userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, submissions, "Submissions retrieved")
}

func (h *Handler) getUserSubmission(c *gin.Context) {
	userID := c.GetString("userID")
	submission, err := database.GetSubmission(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, "submission not found")
		return
	}
	if submission.UserID != userID {
		util.Error(c, http.StatusForbidden, "this submission belongs to another user")
		return
	}
	util.Success(c, submission, "ok")
}

// deleteSubmission lets users retract their own recycling and shower
// logs, which are self-reported and easy to enter by mistake.
func (h *Handler) deleteSubmission(c *gin.Context) {
	userID := c.GetString("userID")
	submission, err := database.GetSubmission(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, "submission not found")
		return
	}
	if submission.UserID != userID {
		util.Error(c, http.StatusForbidden, "this submission belongs to another user")
		return
	}
	if submission.Type != scoring.TypeRecycling && submission.Type != scoring.TypeShower {
		util.Error(c, http.StatusBadRequest, "only recycling and shower logs can be deleted")
		return
	}

	if err := database.RemoveSubmission(h.db, submission); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	h.publishLeaderboards(submission.ChallengeID, submission.CrewID)
	util.Success(c, nil, "Submission deleted")
}
