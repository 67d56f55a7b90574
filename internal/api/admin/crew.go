package admin

import (
	"net/http"

	"github.com/ecorank/ecorank-server/internal/database"
	"github.com/ecorank/ecorank-server/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) getAllCrews(c *gin.Context) {
	crews, err := database.GetAllCrews(h.db)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, crews, "Crews retrieved successfully")
}

func (h *Handler) getCrew(c *gin.Context) {
	crew, err := database.GetCrewByID(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, "crew not found")
		return
	}
	util.Success(c, crew, "Crew retrieved successfully")
}

func (h *Handler) disbandCrew(c *gin.Context) {
	crew, err := database.GetCrewByID(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, "crew not found")
		return
	}

	if err := database.DisbandCrew(h.db, crew.ID); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	h.cache.Invalidate("leaderboard:crew:" + crew.ID)

	zap.S().Warnf("admin disbanded crew %q (%s)", crew.Name, crew.ID)
	util.Success(c, nil, "Crew disbanded successfully")
}
