package user

import (
	"fmt"
	"math/rand"
	"net/http"
	"strings"

	"github.com/ecorank/ecorank-server/internal/database"
	"github.com/ecorank/ecorank-server/internal/database/models"
	"github.com/ecorank/ecorank-server/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const joinCodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func newJoinCode() string {
	var sb strings.Builder
	sb.Grow(8)
	for i := 0; i < 8; i++ {
		sb.WriteByte(joinCodeCharset[rand.Intn(len(joinCodeCharset))])
	}
	return sb.String()
}

func (h *Handler) createCrew(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := database.GetUserByID(h.db, userID)
	if err != nil {
		util.Error(c, http.StatusNotFound, err)
		return
	}
	if user.CrewID != "" {
		util.Error(c, http.StatusConflict, "you already belong to a crew")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	if _, err := database.GetCrewByName(h.db, req.Name); err == nil {
		util.Error(c, http.StatusConflict, "crew name already exists")
		return
	}

	crew := models.Crew{
		ID:       uuid.NewString(),
		Name:     req.Name,
		LeaderID: userID,
		JoinCode: newJoinCode(),
	}
	if err := database.CreateCrew(h.db, &crew); err != nil {
		util.Error(c, http.StatusInternalServerError, fmt.Errorf("failed to create crew: %w", err))
		return
	}

	zap.S().Infof("crew %q created by %s", crew.Name, userID)
	util.Success(c, crew, "Crew created successfully")
}

func (h *Handler) joinCrew(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		JoinCode string `json:"join_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	user, err := database.GetUserByID(h.db, userID)
	if err != nil {
		util.Error(c, http.StatusNotFound, err)
		return
	}
	if user.CrewID != "" {
		util.Error(c, http.StatusConflict, "you already belong to a crew")
		return
	}

	crew, err := database.GetCrewByJoinCode(h.db, strings.ToUpper(req.JoinCode))
	if err != nil {
		util.Error(c, http.StatusNotFound, "invalid join code")
		return
	}

	if err := database.SetUserCrew(h.db, userID, crew.ID); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, gin.H{"crew_id": crew.ID, "crew_name": crew.Name}, "Joined crew successfully")
}

func (h *Handler) getCrew(c *gin.Context) {
	crew, err := database.GetCrewByID(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, "crew not found")
		return
	}

	// the join code is only visible to members
	userID := c.GetString("userID")
	isMember := false
	for _, m := range crew.Members {
		if m.ID == userID {
			isMember = true
			break
		}
	}
	if !isMember {
		crew.JoinCode = ""
	}
	util.Success(c, crew, "ok")
}

func (h *Handler) leaveCrew(c *gin.Context) {
	userID := c.GetString("userID")
	crewID := c.Param("id")

	crew, err := database.GetCrewByID(h.db, crewID)
	if err != nil {
		util.Error(c, http.StatusNotFound, "crew not found")
		return
	}

	user, err := database.GetUserByID(h.db, userID)
	if err != nil || user.CrewID != crewID {
		util.Error(c, http.StatusBadRequest, "you are not a member of this crew")
		return
	}

	if crew.LeaderID == userID {
		util.Error(c, http.StatusForbidden, "the leader cannot leave; transfer leadership or disband the crew")
		return
	}

	if err := database.SetUserCrew(h.db, userID, ""); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, nil, "Left crew successfully")
}

func (h *Handler) kickMember(c *gin.Context) {
	leaderID := c.GetString("userID")
	crewID := c.Param("id")
	memberID := c.Param("userID")

	crew, err := database.GetCrewByID(h.db, crewID)
	if err != nil {
		util.Error(c, http.StatusNotFound, "crew not found")
		return
	}
	if crew.LeaderID != leaderID {
		util.Error(c, http.StatusForbidden, "only the crew leader can remove members")
		return
	}
	if memberID == leaderID {
		util.Error(c, http.StatusBadRequest, "the leader cannot kick themselves")
		return
	}

	member, err := database.GetUserByID(h.db, memberID)
	if err != nil || member.CrewID != crewID {
		util.Error(c, http.StatusNotFound, "member not found in this crew")
		return
	}

	if err := database.SetUserCrew(h.db, memberID, ""); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, nil, "Member removed successfully")
}

func (h *Handler) regenerateJoinCode(c *gin.Context) {
	userID := c.GetString("userID")
	crew, err := database.GetCrewByID(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, "crew not found")
		return
	}
	if crew.LeaderID != userID {
		util.Error(c, http.StatusForbidden, "only the crew leader can regenerate the join code")
		return
	}

	crew.JoinCode = newJoinCode()
	if err := database.UpdateCrew(h.db, crew); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, gin.H{"join_code": crew.JoinCode}, "Join code regenerated")
}

func (h *Handler) disbandCrew(c *gin.Context) {
	userID := c.GetString("userID")
	crew, err := database.GetCrewByID(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, "crew not found")
		return
	}
	if crew.LeaderID != userID {
		util.Error(c, http.StatusForbidden, "only the crew leader can disband the crew")
		return
	}

	if err := database.DisbandCrew(h.db, crew.ID); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	zap.S().Infof("crew %q disbanded by %s", crew.Name, userID)
	util.Success(c, nil, "Crew disbanded successfully")
}
