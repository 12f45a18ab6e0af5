package app

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockcharts/config"
	"github.com/guttosm/stockcharts/internal/api"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the stocks service (calendar, Polygon client, aggregator, presenter).
//   - Creates the HTTP handler layer to handle requests.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to release upstream connections.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp(cfg config.Config) (*gin.Engine, func(), error) {
	if len(cfg.Stocks.Companies) == 0 {
		return nil, nil, errors.New("no companies configured")
	}

	svc, cleanup := NewStocksService(cfg)

	handler := api.NewHandler(svc)
	router := api.NewRouter(handler, cfg.Server.RateLimitPerMinute)

	healthHandler := api.NewHealthHandler(readiness(cfg))
	healthHandler.Register(router)

	return router, cleanup, nil
}

// readiness reports degraded until the upstream credentials are present.
func readiness(cfg config.Config) func() error {
	return func() error {
		if cfg.Polygon.APIKey == "" {
			return errors.New("polygon api key not configured")
		}
		return nil
	}
}
