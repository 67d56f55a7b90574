package admin

import (
	"github.com/ecorank/ecorank-server/internal/api"
	"github.com/ecorank/ecorank-server/internal/cache"
	"github.com/ecorank/ecorank-server/internal/config"
	"github.com/ecorank/ecorank-server/internal/pubsub"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewAdminRouter creates and configures the admin Gin engine. It is
// served on a separate listener so the admin surface is never exposed
// alongside the public API.
func NewAdminRouter(
	cfg *config.Config,
	db *gorm.DB,
	lbCache *cache.Cache,
	broker *pubsub.Broker) *gin.Engine {

	r := gin.Default()

	r.Use(api.CORSMiddleware(cfg.CORS))

	h := NewHandler(cfg, db, lbCache, broker)

	v1 := r.Group("/api/v1")
	{
		// User Management
		users := v1.Group("/users")
		{
			users.GET("", h.getAllUsers)
			users.POST("", h.createUser)
			users.GET("/:id", h.getUser)
			users.PATCH("/:id", h.updateUser)
			users.DELETE("/:id", h.deleteUser)
			users.GET("/:id/history", h.getUserScoreHistory)
			users.POST("/:id/reset-password", h.resetUserPassword)
		}

		// Submission Management
		submissions := v1.Group("/submissions")
		{
			submissions.GET("", h.getAllSubmissions)
			submissions.GET("/:id", h.getSubmission)
			submissions.PATCH("/:id/validity", h.updateSubmissionValidity)
		}

		// Challenge Management
		challenges := v1.Group("/challenges")
		{
			challenges.GET("", h.getAllChallenges)
			challenges.POST("", h.createChallenge)
			challenges.GET("/:id", h.getChallenge)
			challenges.PUT("/:id", h.updateChallenge)
			challenges.DELETE("/:id", h.deleteChallenge)
		}

		// Crew Management
		crews := v1.Group("/crews")
		{
			crews.GET("", h.getAllCrews)
			crews.GET("/:id", h.getCrew)
			crews.DELETE("/:id", h.disbandCrew)
		}

		// Score Management
		scores := v1.Group("/scores")
		{
			scores.POST("/recalculate", h.recalculateScore)
		}
	}

	return r
}
