package user

import (
	"net/http"

	"github.com/ecorank/ecorank-server/internal/auth"
	"github.com/ecorank/ecorank-server/internal/database"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleLeaderboardWs streams live leaderboard updates for one scope
// ("challenge" or "crew"). The broker retains the latest standings, so
// a new subscriber sees the current state before any update arrives.
func (h *Handler) handleLeaderboardWs(c *gin.Context) {
	scope := c.Param("scope")
	id := c.Param("id")
	tokenString := c.Query("token")

	if tokenString == "" {
		c.String(http.StatusUnauthorized, "token query parameter is required")
		return
	}
	if _, err := auth.ValidateJWT(tokenString, h.cfg.Auth.JWT.Secret); err != nil {
		c.String(http.StatusUnauthorized, "invalid token")
		return
	}

	switch scope {
	case "challenge":
		if _, err := database.GetChallengeByID(h.db, id); err != nil {
			c.String(http.StatusNotFound, "challenge not found")
			return
		}
	case "crew":
		if _, err := database.GetCrewByID(h.db, id); err != nil {
			c.String(http.StatusNotFound, "crew not found")
			return
		}
	default:
		c.String(http.StatusBadRequest, "scope must be challenge or crew")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.S().Errorf("failed to upgrade websocket: %v", err)
		return
	}
	defer conn.Close()

	topic := scope + ":" + id
	msgChan, unsubscribe := h.broker.Subscribe(topic)
	defer unsubscribe()

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for msg := range msgChan {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				zap.S().Warnf("error writing to websocket: %v", err)
				return
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.S().Infof("websocket unexpected close error: %v", err)
			}
			break
		}
	}
	unsubscribe()
	<-clientClosed

	zap.S().Debugf("leaderboard websocket closed for %s", topic)
}
