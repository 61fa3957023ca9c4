// @title Health Vault API
// @version 1.0
// @description Registros médicos del paciente y accesos temporales (token + PIN) para médicos.
// @BasePath /
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auditsink "health-vault/internal/adapters/audit"
	"health-vault/internal/adapters/auth/jwtauth"
	pg "health-vault/internal/adapters/storage/postgres"
	"health-vault/internal/config"
	"health-vault/internal/limiter"
	"health-vault/internal/migrate"
	"health-vault/internal/platform/httpclient"
	"health-vault/internal/platform/logger"
	"health-vault/internal/ports/audit"
	"health-vault/internal/ports/auth"
	"health-vault/internal/router"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "health-vault",
		Short: "Health Vault API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(auditCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var autoMigrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg, autoMigrate)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Run database migrations",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{migrate.CommandUp, migrate.CommandDown, migrate.CommandStatus},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.UsesPostgres() {
				return errors.New("DATABASE_URL is required")
			}
			command := migrate.CommandUp
			if len(args) == 1 {
				command = args[0]
			}
			return migrate.Run(cmd.Context(), cfg.DatabaseURL, command)
		},
	}
}

// auditCmd lista la auditoría local (AUDIT_SQLITE_PATH), más nueva primero.
func auditCmd() *cobra.Command {
	var (
		userID string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recent audit entries from the local SQLite log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.AuditSQLitePath == "" {
				return errors.New("AUDIT_SQLITE_PATH is required")
			}
			lite, err := auditsink.OpenSQLiteSink(cfg.AuditSQLitePath)
			if err != nil {
				return fmt.Errorf("audit sqlite: %w", err)
			}
			defer lite.Close()

			entries, err := lite.Recent(cmd.Context(), userID, limit)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().IntVar(&limit, "limit", 50, "max entries")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runServer(ctx context.Context, cfg *config.Config, autoMigrate bool) error {
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
		Env:    cfg.Env,
	})
	defer func() { _ = log.Sync() }()

	opts := router.Options{
		Logger:            log,
		ShareBaseURL:      cfg.ShareBaseURL,
		ShareDefaultHours: cfg.ShareDefaultHours,
		ShareMaxHours:     cfg.ShareMaxHours,
		PIN: limiter.Config{
			Window:   cfg.PINFailureWindow,
			MaxFails: cfg.PINMaxFailures,
			BlockFor: cfg.PINLockout,
		},
		RequestTimeout: cfg.RequestTimeout,
	}

	// Sin secret => headers X-Debug-* (Validate ya exige ENV=development)
	var verifier auth.AuthVerifier
	if cfg.AuthJWTSecret != "" {
		verifier = jwtauth.NewVerifier(cfg.AuthJWTSecret, "")
	} else {
		log.Warn("AUTH_JWT_SECRET empty, accepting debug headers")
	}
	opts.AuthVerifier = verifier

	if cfg.UsesPostgres() {
		if autoMigrate {
			if err := migrate.Up(ctx, cfg.DatabaseURL); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Info("migrations applied")
		}
		db, err := pg.Open(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()
		opts.DB = db
		log.Info("storage: postgres")
	} else {
		log.Info("storage: in-memory")
	}

	sinks, closeSinks, err := auditSinks(cfg, opts.DB)
	if err != nil {
		return err
	}
	defer closeSinks()
	if len(sinks) > 0 {
		// Fuera del request: un sink lento no demora el acceso.
		async := audit.NewAsync(audit.Multi(sinks...), audit.DefaultQueueSize, func(e audit.Entry, err error) {
			log.Warn("audit delivery failed",
				zap.String("action", string(e.Action)),
				zap.String("user_id", e.UserID),
				zap.Error(err),
			)
		})
		// corre antes que closeSinks y db.Close: vacía la cola primero
		defer async.Close()
		opts.AuditSinks = []audit.Sink{async}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(opts),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info("shutting down server", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// auditSinks arma los sinks persistentes (postgres, webhook, sqlite) según config.
func auditSinks(cfg *config.Config, db *pg.DB) ([]audit.Sink, func(), error) {
	var (
		sinks   []audit.Sink
		closers []func()
	)
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	if db != nil {
		sinks = append(sinks, pg.NewAuditRepo(db))
	}

	if cfg.AuditWebhookURL != "" {
		wh, err := auditsink.NewWebhookSink(httpclient.New(5*time.Second), cfg.AuditWebhookURL, cfg.AuditWebhookKey)
		if err != nil {
			return nil, closeAll, fmt.Errorf("audit webhook: %w", err)
		}
		sinks = append(sinks, wh)
	}

	if cfg.AuditSQLitePath != "" {
		lite, err := auditsink.OpenSQLiteSink(cfg.AuditSQLitePath)
		if err != nil {
			return nil, closeAll, fmt.Errorf("audit sqlite: %w", err)
		}
		closers = append(closers, func() { _ = lite.Close() })
		sinks = append(sinks, lite)
	}

	return sinks, closeAll, nil
}
