package user

import (
	"net/http"

	"github.com/ecorank/ecorank-server/internal/util"
	"github.com/gin-gonic/gin"
)

func (h *Handler) lookupVehicle(c *gin.Context) {
	vehicleMake := c.Query("make")
	model := c.Query("model")
	if vehicleMake == "" || model == "" {
		util.Error(c, http.StatusBadRequest, "make and model query parameters are required")
		return
	}

	info, err := h.vehicles.Lookup(c.Request.Context(), vehicleMake, model)
	if err != nil {
		util.Error(c, http.StatusBadGateway, err)
		return
	}
	util.Success(c, info, "Vehicle data retrieved")
}

func (h *Handler) previewRoute(c *gin.Context) {
	var req struct {
		FromLat float64 `json:"from_lat" binding:"required"`
		FromLng float64 `json:"from_lng" binding:"required"`
		ToLat   float64 `json:"to_lat" binding:"required"`
		ToLng   float64 `json:"to_lng" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	route, err := h.routes.Route(c.Request.Context(), req.FromLat, req.FromLng, req.ToLat, req.ToLng)
	if err != nil {
		util.Error(c, http.StatusBadGateway, err)
		return
	}
	util.Success(c, route, "Route resolved")
}
