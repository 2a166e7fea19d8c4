package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/courier_ledger/internal/core/services"
	"github.com/SscSPs/courier_ledger/internal/dto"
	"github.com/SscSPs/courier_ledger/internal/handlers"
	"github.com/SscSPs/courier_ledger/internal/jobs"
	"github.com/SscSPs/courier_ledger/internal/middleware"
	"github.com/SscSPs/courier_ledger/internal/platform/config"
	"github.com/SscSPs/courier_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/courier_ledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Bool("skip-migrations", false, "Do not apply pending migrations on startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	skipMigrations, _ := cmd.Flags().GetBool("skip-migrations")

	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return fmt.Errorf("failed to initialize database pool: %w", err)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if !skipMigrations {
		logger.Info("Running database migrations...")
		if err := database.MigrateUp(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return err
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	serviceContainer := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool))

	if cfg.LedgerAuditInterval > 0 {
		auditJob, err := jobs.NewLedgerAuditJob(serviceContainer.LedgerAudit, cfg.LedgerAuditInterval, logger)
		if err != nil {
			return err
		}
		auditJob.Start()
		defer func() {
			if err := auditJob.Stop(); err != nil {
				logger.Error("Failed to stop ledger audit job", slog.String("error", err.Error()))
			}
		}()
	}

	router, err := newRouter(cfg, logger, redisClient)
	if err != nil {
		return err
	}
	handlers.RegisterRoutes(router, cfg, serviceContainer)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newRouter builds the engine with global middleware: recovery, logging, CORS and rate limiting.
func newRouter(cfg *config.Config, logger *slog.Logger, redisClient *redis.Client) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		dto.RegisterValidations(v)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	if len(cfg.CORSAllowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", middleware.RequestIDHeader)
		corsCfg.ExposeHeaders = []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"}
		r.Use(cors.New(corsCfg))
	}

	if cfg.RateLimit != "" {
		limiterInstance, err := middleware.NewLimiter(cfg.RateLimit, redisClient)
		if err != nil {
			return nil, err
		}
		r.Use(middleware.RateLimit(limiterInstance))
	}
	return r, nil
}
