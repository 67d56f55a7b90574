package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecorank/ecorank-server/internal/api/admin"
	"github.com/ecorank/ecorank-server/internal/api/user"
	"github.com/ecorank/ecorank-server/internal/auth"
	"github.com/ecorank/ecorank-server/internal/cache"
	"github.com/ecorank/ecorank-server/internal/config"
	"github.com/ecorank/ecorank-server/internal/database"
	"github.com/ecorank/ecorank-server/internal/providers"
	"github.com/ecorank/ecorank-server/internal/pubsub"
	"github.com/ecorank/ecorank-server/internal/ratelimit"

	"go.uber.org/zap"
)

var Version = "dev-build"

func main() {

	fmt.Fprintf(os.Stderr, "EcoRank %s - Environmental Impact Scoring Server\n\n", Version)

	// config
	var configPath string
	flag.StringVar(&configPath, "c", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// logger
	var logger *zap.Logger
	if cfg.Logger.Level == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// database
	db, err := database.Init(cfg.Storage.Database)
	if err != nil {
		zap.S().Fatalf("failed to initialize database: %v", err)
	}
	zap.S().Info("database initialized successfully")

	// shared components
	lbCache := cache.New(time.Duration(cfg.Cache.LeaderboardTTLSeconds) * time.Second)
	limiter := ratelimit.New(time.Duration(cfg.Limits.SubmissionIntervalSeconds) * time.Second)
	broker := pubsub.NewBroker()

	routeProvider := providers.NewOSRMRouteProvider(cfg.Providers.RouteBaseURL)
	vehicleProvider := providers.NewHTTPVehicleProvider(cfg.Providers.VehicleBaseURL)

	// SSO is optional; without it only local auth is served
	var oidcHandler *auth.OIDCHandler
	if cfg.Auth.OIDC.Enabled {
		oidcHandler, err = auth.NewOIDCHandler(cfg, db)
		if err != nil {
			zap.S().Fatalf("failed to initialize OIDC handler: %v", err)
		}
		zap.S().Infof("SSO login enabled via %s", cfg.Auth.OIDC.Issuer)
	}

	// API routers
	userHandler := user.NewHandler(cfg, db, lbCache, limiter, broker, routeProvider, vehicleProvider, oidcHandler)
	userEngine := user.NewUserRouter(userHandler)
	adminEngine := admin.NewAdminRouter(cfg, db, lbCache, broker)

	// start servers
	go func() {
		zap.S().Infof("starting user server at %s", cfg.Listen)
		if err := userEngine.Run(cfg.Listen); err != nil {
			zap.S().Fatalf("failed to start user server: %v", err)
		}
	}()

	if cfg.Admin.Enabled {
		go func() {
			zap.S().Infof("starting admin server at %s", cfg.Admin.Listen)
			if err := adminEngine.Run(cfg.Admin.Listen); err != nil {
				zap.S().Fatalf("failed to start admin server: %v", err)
			}
		}()
	}

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.S().Info("shutting down server...")
}
