package admin

import (
	"github.com/ecorank/ecorank-server/internal/cache"
	"github.com/ecorank/ecorank-server/internal/config"
	"github.com/ecorank/ecorank-server/internal/database"
	"github.com/ecorank/ecorank-server/internal/leaderboard"
	"github.com/ecorank/ecorank-server/internal/pubsub"
	"gorm.io/gorm"
)

// Handler holds all dependencies for the admin API handlers.
type Handler struct {
	cfg    *config.Config
	db     *gorm.DB
	cache  *cache.Cache
	broker *pubsub.Broker
}

func NewHandler(cfg *config.Config, db *gorm.DB, lbCache *cache.Cache, broker *pubsub.Broker) *Handler {
	return &Handler{
		cfg:    cfg,
		db:     db,
		cache:  lbCache,
		broker: broker,
	}
}

// refreshLeaderboards drops the cached views and pushes fresh standings
// to live subscribers after an admin action changes scores.
func (h *Handler) refreshLeaderboards(challengeID, crewID string) {
	if challengeID != "" {
		h.cache.Invalidate("leaderboard:challenge:" + challengeID)
		if challenge, err := database.GetChallengeByID(h.db, challengeID); err == nil {
			if subs, err := database.GetValidSubmissionsByChallenge(h.db, challengeID); err == nil {
				entries := leaderboard.Aggregate(
					database.ScoredSubmissions(subs),
					database.DisplayNameResolver{DB: h.db},
					challenge.LowerScoreIsBetter,
				)
				h.broker.Publish("challenge:"+challengeID, pubsub.FormatMessage("leaderboard", entries))
			}
		}
	}

	if crewID != "" {
		h.cache.Invalidate("leaderboard:crew:" + crewID)
		if subs, err := database.GetValidSubmissionsByCrew(h.db, crewID); err == nil {
			entries := leaderboard.Aggregate(
				database.ScoredSubmissions(subs),
				database.DisplayNameResolver{DB: h.db},
				false,
			)
			h.broker.Publish("crew:"+crewID, pubsub.FormatMessage("leaderboard", entries))
		}
	}
}
