package user

import (
	"github.com/ecorank/ecorank-server/internal/auth"
	"github.com/ecorank/ecorank-server/internal/cache"
	"github.com/ecorank/ecorank-server/internal/config"
	"github.com/ecorank/ecorank-server/internal/providers"
	"github.com/ecorank/ecorank-server/internal/pubsub"
	"github.com/ecorank/ecorank-server/internal/ratelimit"
	"gorm.io/gorm"
)

// Handler holds all dependencies for the user API handlers.
type Handler struct {
	cfg         *config.Config
	db          *gorm.DB
	cache       *cache.Cache
	limiter     *ratelimit.Limiter
	broker      *pubsub.Broker
	routes      providers.RouteProvider
	vehicles    providers.VehicleDataProvider
	oidcHandler *auth.OIDCHandler
}

// NewHandler creates a new user handler with its dependencies.
// oidcHandler may be nil when SSO login is disabled.
func NewHandler(
	cfg *config.Config,
	db *gorm.DB,
	lbCache *cache.Cache,
	limiter *ratelimit.Limiter,
	broker *pubsub.Broker,
	routes providers.RouteProvider,
	vehicles providers.VehicleDataProvider,
	oidcHandler *auth.OIDCHandler,
) *Handler {
	return &Handler{
		cfg:         cfg,
		db:          db,
		cache:       lbCache,
		limiter:     limiter,
		broker:      broker,
		routes:      routes,
		vehicles:    vehicles,
		oidcHandler: oidcHandler,
	}
}
