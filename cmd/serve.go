package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todo_list/internal/config"
	"todo_list/internal/handlers"
	"todo_list/internal/logger"
	"todo_list/internal/memlist"
	"todo_list/internal/models"
	"todo_list/internal/repository"
	"todo_list/internal/repository/db"
	"todo_list/internal/server"
	"todo_list/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Log.Level != logger.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	var router http.Handler
	switch cfg.Mode {
	case config.ModeMemory:
		log.Infow("mode_memory", "note", "todos are kept in memory only")
		router = memlist.NewHandler(memlist.NewList(), log.Named("memlist")).InitRoutes()
	default:
		gdb, err := openStore(cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := db.Close(gdb); cerr != nil {
				log.Errorw("db_close_failed", "err", cerr)
			}
		}()

		router, err = newStoreRouter(cfg, gdb, log)
		if err != nil {
			return err
		}
	}

	srv := server.New(cfg.Port, router)
	errCh := make(chan error, 1)
	go func() {
		log.Infow("http_server_starting", "addr", srv.Addr(), "mode", cfg.Mode)
		errCh <- srv.Run()
	}()

	return waitForShutdown(cmd.Context(), srv, errCh, log)
}

// openStore applies the hasher choice and opens the backing store with its schema.
func openStore(cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	if err := models.SetDefaultHasher(cfg.Auth.Hasher); err != nil {
		return nil, err
	}
	gdb, err := db.InitDB(db.Options{
		Driver: cfg.DB.Driver,
		Path:   cfg.DB.Path,
		DSN:    cfg.DB.DSN,
		Logger: logger.NewGormLogger(log.Named("gorm"), cfg.Log.Level),
	})
	if err != nil {
		return nil, fmt.Errorf("init %s store: %w", cfg.DB.Driver, err)
	}
	log.Infow("db_ready", "driver", cfg.DB.Driver)
	return gdb, nil
}

// newStoreRouter wires repositories, services and handlers for the multi-user mode.
func newStoreRouter(cfg *config.Config, gdb *gorm.DB, log *logger.Logger) (http.Handler, error) {
	sessionStore, err := handlers.NewSessionStore(cfg.Session, gdb)
	if err != nil {
		return nil, err
	}
	tokens := service.NewTokenManager(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	services := service.NewService(repository.NewStore(gdb), tokens)
	h := handlers.NewHandler(services, log.Named("http"), handlers.SessionSettings{
		Name:  cfg.Session.Name,
		Store: sessionStore,
	})
	return h.InitRoutes(), nil
}

// waitForShutdown blocks until a termination signal or a server failure, then
// gives in-flight requests shutdownTimeout to complete.
func waitForShutdown(ctx context.Context, srv *server.Server, errCh <-chan error, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			log.Errorw("http_server_failed", "err", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server_forced_shutdown", "err", err)
		return err
	}
	return <-errCh
}
