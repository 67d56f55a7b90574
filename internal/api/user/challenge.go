package user

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ecorank/ecorank-server/internal/database"
	"github.com/ecorank/ecorank-server/internal/database/models"
	"github.com/ecorank/ecorank-server/internal/leaderboard"
	"github.com/ecorank/ecorank-server/internal/util"
	"github.com/gin-gonic/gin"
)

func (h *Handler) getLinks(c *gin.Context) {
	if h.cfg.Links == nil {
		// Ensure we return an empty array instead of null if links are not configured
		util.Success(c, []interface{}{}, "Links retrieved successfully")
		return
	}
	util.Success(c, h.cfg.Links, "Links retrieved successfully")
}

func (h *Handler) getChallenges(c *gin.Context) {
	crewID := c.Query("crew_id")
	challenges, err := database.GetVisibleChallenges(h.db, crewID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	now := time.Now()
	type challengeView struct {
		ID                 string    `json:"id"`
		Name               string    `json:"name"`
		Type               string    `json:"type"`
		StartTime          time.Time `json:"start_time"`
		EndTime            time.Time `json:"end_time"`
		LowerScoreIsBetter bool      `json:"lower_score_is_better"`
		CrewID             string    `json:"crew_id"`
		Status             string    `json:"status"`
	}

	views := make([]challengeView, 0, len(challenges))
	for _, ch := range challenges {
		views = append(views, challengeView{
			ID:                 ch.ID,
			Name:               ch.Name,
			Type:               string(ch.Type),
			StartTime:          ch.StartTime,
			EndTime:            ch.EndTime,
			LowerScoreIsBetter: ch.LowerScoreIsBetter,
			CrewID:             ch.CrewID,
			Status:             string(ch.Status(now)),
		})
	}
	util.Success(c, views, "Challenges loaded")
}

func (h *Handler) getChallenge(c *gin.Context) {
	challenge, err := database.GetChallengeByID(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, fmt.Errorf("challenge not found"))
		return
	}
	util.Success(c, gin.H{
		"challenge": challenge,
		"status":    challenge.Status(time.Now()),
	}, "Challenge found")
}

// challengeLeaderboard computes the ranked view for one challenge,
// through the read-through cache.
func (h *Handler) challengeLeaderboard(challengeID string) ([]leaderboard.Entry, error) {
	cacheKey := "leaderboard:challenge:" + challengeID
	if cached, ok := h.cache.Get(cacheKey); ok {
		return cached.([]leaderboard.Entry), nil
	}

	challenge, err := database.GetChallengeByID(h.db, challengeID)
	if err != nil {
		return nil, err
	}
	subs, err := database.GetValidSubmissionsByChallenge(h.db, challengeID)
	if err != nil {
		return nil, err
	}

	entries := leaderboard.Aggregate(
		database.ScoredSubmissions(subs),
		database.DisplayNameResolver{DB: h.db},
		challenge.LowerScoreIsBetter,
	)
	h.cache.Set(cacheKey, entries)
	return entries, nil
}

func (h *Handler) getChallengeLeaderboard(c *gin.Context) {
	entries, err := h.challengeLeaderboard(c.Param("id"))
	if err != nil {
		if database.IsNotFound(err) {
			util.Error(c, http.StatusNotFound, "challenge not found")
			return
		}
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, entries, "Leaderboard retrieved")
}

// crewLeaderboard ranks the members of one crew across all their valid
// submissions. Crew standings always rank descending.
func (h *Handler) crewLeaderboard(crewID string) ([]leaderboard.Entry, error) {
	cacheKey := "leaderboard:crew:" + crewID
	if cached, ok := h.cache.Get(cacheKey); ok {
		return cached.([]leaderboard.Entry), nil
	}

	subs, err := database.GetValidSubmissionsByCrew(h.db, crewID)
	if err != nil {
		return nil, err
	}
	entries := leaderboard.Aggregate(
		database.ScoredSubmissions(subs),
		database.DisplayNameResolver{DB: h.db},
		false,
	)
	h.cache.Set(cacheKey, entries)
	return entries, nil
}

func (h *Handler) getCrewLeaderboard(c *gin.Context) {
	crewID := c.Param("id")
	if _, err := database.GetCrewByID(h.db, crewID); err != nil {
		util.Error(c, http.StatusNotFound, "crew not found")
		return
	}

	entries, err := h.crewLeaderboard(crewID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, entries, "Leaderboard retrieved")
}

func (h *Handler) getCrewTrend(c *gin.Context) {
	crewID := c.Param("id")
	if _, err := database.GetCrewByID(h.db, crewID); err != nil {
		util.Error(c, http.StatusNotFound, "crew not found")
		return
	}

	entries, err := h.crewLeaderboard(crewID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	// top 10 with ties included
	var top []leaderboard.Entry
	tenthScore := 0.0
	haveTenth := false
	for _, entry := range entries {
		if len(top) < 10 {
			top = append(top, entry)
			if len(top) == 10 {
				tenthScore = entry.Score
				haveTenth = true
			}
		} else if haveTenth && entry.Score == tenthScore {
			top = append(top, entry)
		}
	}

	type trendEntry struct {
		UserID      string                `json:"user_id"`
		DisplayName string                `json:"display_name"`
		History     []models.ScoreHistory `json:"history"`
	}

	trend := make([]trendEntry, 0, len(top))
	for _, entry := range top {
		history, err := database.GetScoreHistoryForUser(h.db, entry.UserID)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, err)
			return
		}
		trend = append(trend, trendEntry{
			UserID:      entry.UserID,
			DisplayName: entry.DisplayName,
			History:     history,
		})
	}
	util.Success(c, trend, "Trend data retrieved")
}
