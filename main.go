package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snapbook-backend/config"
	"snapbook-backend/routes"
	"snapbook-backend/services"
	"snapbook-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.IsProduction(), cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("main: server stopped with error", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return errors.New("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = utils.GenerateJWTSecret()
		logger.Warn("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = config.ConnectDB(cfg.DatabaseURL, cfg.IsProduction())
		if err != nil {
			return err
		}
		logger.Info("connected to database")
	}

	var accounts services.Accounts
	if db != nil {
		accounts = services.NewGormAccounts(db)
	} else {
		logger.Warn("DB_URL not set, accounts are kept in memory")
		accounts = services.NewMemoryAccounts()
	}

	kv, closeStore, err := config.OpenStore(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer closeStore()
	logger.Info("panel store ready", zap.String("driver", cfg.StoreDriver))

	var notifier services.Notifier
	if cfg.TwilioEnabled() {
		notifier = services.NewTwilioNotifier(services.TwilioConfig{
			AccountSID: cfg.TwilioAccountSID,
			AuthToken:  cfg.TwilioAuthToken,
			From:       cfg.TwilioFrom,
			Channel:    cfg.TwilioChannel,
		}, logger)
		logger.Info("client notifications via Twilio", zap.String("channel", cfg.TwilioChannel))
	} else {
		notifier = services.NewLogNotifier(logger)
	}

	sessions := services.NewSessions(kv, services.Deps{
		Location: loc,
		Logger:   logger,
		Notifier: notifier,
	})

	reminders := services.NewReminderService(sessions, notifier, cfg.ReminderWindow(), logger)
	if err := reminders.StartScheduler(cfg.ReminderCron); err != nil {
		return err
	}
	defer reminders.Stop()

	r := routes.SetupRouter(routes.Deps{
		Config:    cfg,
		Logger:    logger,
		Accounts:  accounts,
		Sessions:  sessions,
		Catalog:   services.NewCatalog(),
		Reminders: reminders,
	})
	if !cfg.IsProduction() {
		printRoutes(r)
	}

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return err
	case <-quit:
	}
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("main: server stopped gracefully")
	return nil
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
