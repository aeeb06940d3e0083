package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gitschema/gitschema"
	"github.com/gitschema/gitschema/infrastructure/api"
	apimiddleware "github.com/gitschema/gitschema/infrastructure/api/middleware"
	"github.com/gitschema/gitschema/internal/log"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                 Server host to bind to (default: 0.0.0.0)
  PORT                 Server port to listen on (default: 8080)
  DATA_DIR             Data directory (default: ~/.gitschema)
  DB_URL               Database URL (default: sqlite:///{data_dir}/gitschema.db)
  LOG_LEVEL            Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT           Log format: pretty, json (default: pretty)
  API_KEYS             Comma-separated list of valid API keys
  VCS_TIMEOUT_SECONDS  Provider fetch timeout in seconds (default: 30)
  VCS_MAX_RETRIES      Provider fetch retry budget (default: 3)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(envFile, host string, port int) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	cfg = cfg.WithHost(host).WithPort(port)

	addr := cfg.Addr()

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	logger := log.Configure(cfg)
	slogger := logger.Slog()

	opts := []gitschema.Option{
		gitschema.WithDatabaseURL(cfg.DBURL()),
		gitschema.WithLogger(slogger),
		gitschema.WithVCSTimeout(cfg.VCSTimeout()),
		gitschema.WithVCSMaxRetries(cfg.VCSMaxRetries()),
	}
	if keys := cfg.APIKeys(); len(keys) > 0 {
		opts = append(opts, gitschema.WithAPIKeys(keys...))
	}

	slogger.Info("starting gitschema",
		slog.String("version", version),
		slog.String("db_url", cfg.DBURL()),
		slog.String("log_level", cfg.LogLevel()),
	)

	client, err := gitschema.New(opts...)
	if err != nil {
		return fmt.Errorf("create gitschema client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slogger.Error("failed to close gitschema client", slog.Any("error", err))
		}
	}()

	apiServer := api.NewAPIServer(client.Webhook, client.Issues, client.APIKeys(), slogger)
	router := apiServer.Router()

	// Custom middleware MUST be applied before MountRoutes.
	router.Use(apimiddleware.Logging(slogger))
	router.Use(apimiddleware.CorrelationID)

	apiServer.MountRoutes()

	// Root endpoint with API info.
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, `{"name":"gitschema","version":"%s","docs":"/docs"}`, version)
	})

	docsRouter := apiServer.DocsRouter("/docs/openapi.json")
	router.Mount("/docs", docsRouter.Routes())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(addr, slogger)
	server.Router().Mount("/", router)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		slogger.Info("starting server", slog.String("addr", addr))
		return server.Start()
	})
	group.Go(func() error {
		<-ctx.Done()
		slogger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
