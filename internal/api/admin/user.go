package admin

import (
	"net/http"
	"time"

	"github.com/ecorank/ecorank-server/internal/auth"
	"github.com/ecorank/ecorank-server/internal/database"
	"github.com/ecorank/ecorank-server/internal/database/models"
	"github.com/ecorank/ecorank-server/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *Handler) getAllUsers(c *gin.Context) {
	searchQuery := c.Query("query")
	dbQuery := h.db

	if searchQuery != "" {
		likeQuery := "%" + searchQuery + "%"
		dbQuery = dbQuery.Where("id = ? OR username LIKE ? OR nickname LIKE ?", searchQuery, likeQuery, likeQuery)
	}

	var users []models.User
	if err := dbQuery.Find(&users).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	util.Success(c, users, "Users retrieved successfully")
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := database.GetUserByID(h.db, c.Param("id"))
	if err != nil {
		if database.IsNotFound(err) {
			util.Error(c, http.StatusNotFound, "user not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}
	util.Success(c, user, "User retrieved successfully")
}

func (h *Handler) createUser(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password"`
		Nickname string `json:"nickname"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	user := models.User{
		ID:       uuid.NewString(),
		Username: req.Username,
		Nickname: req.Nickname,
		Level:    1,
	}
	if user.Nickname == "" {
		user.Nickname = user.Username
	}
	if req.Password != "" {
		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, "failed to hash password")
			return
		}
		user.PasswordHash = hashed
	}

	if err := database.CreateUser(h.db, &user); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, user, "User created successfully")
}

func (h *Handler) updateUser(c *gin.Context) {
	user, err := database.GetUserByID(h.db, c.Param("id"))
	if err != nil {
		if database.IsNotFound(err) {
			util.Error(c, http.StatusNotFound, "user not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	var reqBody struct {
		Nickname    *string `json:"nickname"`
		BanReason   *string `json:"ban_reason"`
		BannedUntil *string `json:"banned_until"` // Receive as string to handle null/empty
	}
	if err := c.ShouldBindJSON(&reqBody); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	if reqBody.Nickname != nil {
		user.Nickname = *reqBody.Nickname
	}

	// Handle ban logic
	if reqBody.BanReason != nil {
		user.BanReason = *reqBody.BanReason
	}
	if reqBody.BannedUntil != nil {
		if *reqBody.BannedUntil == "" {
			user.BannedUntil = nil // Unban by sending empty string
			user.BanReason = ""    // Clear reason on unban
		} else {
			t, err := time.Parse(time.RFC3339, *reqBody.BannedUntil)
			if err != nil {
				// Fallback for HTML datetime-local input which doesn't include timezone
				t, err = time.Parse("2006-01-02T15:04", *reqBody.BannedUntil)
				if err != nil {
					util.Error(c, http.StatusBadRequest, "invalid banned_until time format")
					return
				}
			}
			user.BannedUntil = &t
		}
	}

	if err := database.UpdateUser(h.db, user); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, user, "User profile updated successfully")
}

func (h *Handler) deleteUser(c *gin.Context) {
	if err := database.DeleteUser(h.db, c.Param("id")); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, nil, "User deleted successfully")
}

func (h *Handler) getUserScoreHistory(c *gin.Context) {
	userID := c.Param("id")
	if _, err := database.GetUserByID(h.db, userID); err != nil {
		util.Error(c, http.StatusNotFound, "user not found")
		return
	}

	history, err := database.GetScoreHistoryForUser(h.db, userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, history, "User score history retrieved successfully")
}

func (h *Handler) resetUserPassword(c *gin.Context) {
	user, err := database.GetUserByID(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, "user not found")
		return
	}

	if user.OIDCSubject != nil {
		util.Error(c, http.StatusBadRequest, "cannot reset password for SSO user")
		return
	}

	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to hash new password")
		return
	}

	user.PasswordHash = hashedPassword
	if err := database.UpdateUser(h.db, user); err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to update user password")
		return
	}

	zap.S().Warnf("admin reset password for user %s (%s)", user.Username, user.ID)
	util.Success(c, nil, "User password reset successfully")
}
