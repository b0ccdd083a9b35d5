package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/authd/internal/config"
	"github.com/xxxsen/authd/internal/db"
	"github.com/xxxsen/authd/internal/handler"
	"github.com/xxxsen/authd/internal/repo"
	"github.com/xxxsen/authd/internal/service"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "authd",
		Short: "authd credential service",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the authd server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			logger.Init("", cfg.LogLevel, 0, 0, 0, true)

			conn, err := db.Open(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}

			// An unreachable store at startup is not fatal; requests
			// fail with 500 until connectivity returns and the pool
			// reconnects on its own.
			pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := conn.PingContext(pingCtx); err != nil {
				logutil.GetLogger(context.Background()).Warn("database unreachable at startup", zap.Error(err))
			} else if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}

			return runServer(cfg, conn)
		},
	}

	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	userRepo := repo.NewUserRepo(conn)
	authService := service.NewAuthService(
		userRepo,
		[]byte(cfg.JWTSecret),
		time.Hour*time.Duration(cfg.JWTTTLHours),
		cfg.ProfileCacheSize,
	)

	router := handler.NewRouter(handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService),
		Profile:   handler.NewProfileHandler(authService),
		Health:    handler.NewHealthHandler(userRepo),
		JWTSecret: []byte(cfg.JWTSecret),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", srv.Addr))

	select {
	case err := <-errCh:
		// Failing to bind the port is the one fatal startup error.
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logutil.GetLogger(context.Background()).Info("server stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
