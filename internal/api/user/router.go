package user

import (
	"github.com/ecorank/ecorank-server/internal/api"
	"github.com/gin-gonic/gin"
)

// NewUserRouter creates and configures the user Gin engine.
func NewUserRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	r.Use(api.CORSMiddleware(h.cfg.CORS))

	v1 := r.Group("/api/v1")
	{
		// Auth
		authGroup := v1.Group("/auth")
		{
			authGroup.GET("/status", h.getAuthStatus)
			if h.oidcHandler != nil {
				ssoGroup := authGroup.Group("/sso")
				ssoGroup.GET("/login", h.oidcHandler.Login)
				ssoGroup.GET("/callback", h.oidcHandler.Callback)
			}
			if h.cfg.Auth.Local.Enabled {
				localAuthGroup := authGroup.Group("/local")
				{
					localAuthGroup.POST("/register", h.localRegister)
					localAuthGroup.POST("/login", h.localLogin)
				}
			}
		}

		// Websocket live leaderboard with token authorization
		v1.GET("/ws/leaderboards/:scope/:id", h.handleLeaderboardWs)

		// Publicly accessible info
		v1.GET("/links", h.getLinks)
		v1.GET("/challenges", h.getChallenges)
		v1.GET("/challenges/:id", h.getChallenge)
		v1.GET("/challenges/:id/leaderboard", h.getChallengeLeaderboard)
		v1.GET("/crews/:id/leaderboard", h.getCrewLeaderboard)
		v1.GET("/crews/:id/trend", h.getCrewTrend)
		v1.GET("/users/:id", h.getPublicUserProfile)
		v1.GET("/vehicles", h.lookupVehicle)

		// Publicly accessible assets
		v1.GET("/assets/avatars/:filename", h.serveAvatar)

		// Authenticated routes
		authed := v1.Group("/")
		authed.Use(api.AuthMiddleware(h.cfg.Auth.JWT.Secret))
		{
			// User Profile
			profile := authed.Group("/user")
			{
				profile.GET("/profile", h.getUserProfile)
				profile.PATCH("/profile", h.updateUserProfile)
				profile.POST("/avatar", h.uploadAvatar)
				profile.GET("/history", h.getScoreHistory)
			}

			// Crews
			crews := authed.Group("/crews")
			{
				crews.POST("", h.createCrew)
				crews.POST("/join", h.joinCrew)
				crews.GET("/:id", h.getCrew)
				crews.POST("/:id/leave", h.leaveCrew)
				crews.POST("/:id/kick/:userID", h.kickMember)
				crews.POST("/:id/regenerate-code", h.regenerateJoinCode)
				crews.DELETE("/:id", h.disbandCrew)
			}

			// Submissions
			authed.POST("/challenges/:id/submit", h.submitToChallenge)
			authed.POST("/routes/preview", h.previewRoute)

			submissions := authed.Group("/submissions")
			{
				submissions.GET("", h.getUserSubmissions)
				submissions.GET("/:id", h.getUserSubmission)
				submissions.DELETE("/:id", h.deleteSubmission)
			}
		}
	}

	return r
}
