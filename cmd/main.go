package main

//
//  @title           stockcharts API
//  @version         1.0
//  @description     Stock chart and metrics widgets over Polygon.io daily prices.
//  @termsOfService  https://github.com/guttosm/stockcharts
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/stockcharts
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        stocks
//  @tag.description Chart and metrics widgets backed by Polygon prices
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/guttosm/stockcharts/config"
	_ "github.com/guttosm/stockcharts/docs" // swagger docs
	"github.com/guttosm/stockcharts/internal/app"
	"github.com/guttosm/stockcharts/internal/logger"
	"github.com/guttosm/stockcharts/internal/service"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown blocks until SIGINT or SIGTERM, then drains the server
// and runs cleanup.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// printMetrics runs one metrics computation and writes the table to w,
// one row per line.
func printMetrics(ctx context.Context, w io.Writer, svc service.StocksService, companies []string) error {
	payload, err := svc.Metrics(ctx, companies)
	if err != nil {
		return err
	}
	for _, row := range payload.Metrics {
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
	}
	return nil
}

// main is the entry point of the stockcharts application.
//
// Modes (selected via --mode flag):
//   - api:   Starts the REST API serving the chart and metrics widgets.
//   - print: Prints the metrics table for the configured companies and exits.
//
// Flags:
//   - --mode:      Execution mode ("api" or "print"). Default: "api".
//   - --port:      Port for the API server. Defaults to SERVER_PORT.
//   - --companies: Comma-separated subset for print mode. Default: all.
func main() {
	ctx := context.Background()

	// Initialize JSON logger first so configuration failures are structured.
	logger.Init()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.L().Fatal().Err(err).Msg("invalid configuration")
	}

	mode := flag.String("mode", "api", "Mode: api or print")
	port := flag.String("port", cfg.Server.Port, "Port for API mode")
	companies := flag.String("companies", "", "Comma-separated companies for print mode (default: all)")
	flag.Parse()

	switch *mode {
	case "api":
		logger.L().Info().Int("companies", len(cfg.Stocks.Companies)).Int("window", cfg.Stocks.Window).Msg("starting API server")

		router, cleanup, err := app.InitializeApp(cfg)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	case "print":
		svc, cleanup := app.NewStocksService(cfg)
		defer cleanup()

		reqCtx, cancel := context.WithTimeout(ctx, 2*cfg.Polygon.Timeout)
		defer cancel()

		var names []string
		for _, n := range strings.Split(*companies, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
		if err := printMetrics(reqCtx, os.Stdout, svc, names); err != nil {
			logger.L().Error().Err(err).Msg("metrics failed")
			cancel()
			cleanup()
			os.Exit(1)
		}

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
