package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sidhant-sriv/roomshare-api/config"
	"github.com/sidhant-sriv/roomshare-api/db"
	"github.com/sidhant-sriv/roomshare-api/db/memstore"
	"github.com/sidhant-sriv/roomshare-api/realtime"
	"github.com/sidhant-sriv/roomshare-api/routes"
	"github.com/sidhant-sriv/roomshare-api/service"
	"github.com/sidhant-sriv/roomshare-api/storage"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := cfg.Logger()
	slog.SetDefault(logger)

	// Set Gin to release mode in production
	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := realtime.NewHub(logger)
	repo, publisher, err := openStore(ctx, cfg, hub, logger)
	if err != nil {
		return err
	}

	var objects storage.ObjectStore
	if cfg.MongoURI != "" {
		client, err := storage.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())
		objects = storage.NewGridFSStore(client, cfg.MongoDatabase)
		logger.Info("object storage enabled", "database", cfg.MongoDatabase)
	}

	svc := service.New(repo, service.WithPublisher(publisher), service.WithLogger(logger))
	router := routes.NewRouter(routes.Options{
		Service:              svc,
		JWTSecret:            cfg.JWTSecret,
		Logger:               logger,
		Hub:                  hub,
		Objects:              objects,
		WSInsecureSkipVerify: cfg.WSInsecureSkipVerify,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", "port", cfg.Port, "realtime", cfg.RealtimeMode, "in_memory", cfg.InMemory)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore picks the repository and the change-event publisher. In
// postgres realtime mode events go out through NOTIFY and come back to the
// local hub through a listener, so every instance sees every event.
func openStore(ctx context.Context, cfg config.Config, hub *realtime.Hub, logger *slog.Logger) (service.Repository, realtime.Publisher, error) {
	if cfg.InMemory {
		logger.Warn("using the in-memory store; data is lost on exit")
		return memstore.New(), hub, nil
	}

	gdb, err := db.Connect(cfg.DSN(), cfg.DBDebug, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := db.MakeMigration(gdb, logger); err != nil {
		return nil, nil, err
	}
	store := db.NewStore(gdb)

	if cfg.RealtimeMode != config.RealtimePostgres {
		return store, hub, nil
	}
	listener := &realtime.Listener{
		URL:     cfg.DSN(),
		Channel: realtime.NotifyChannel,
		Target:  hub,
		Logger:  logger,
	}
	go func() {
		// TODO: reconnect with backoff; until then a dropped connection stops local delivery.
		if err := listener.Run(ctx); err != nil {
			logger.Error("realtime listener stopped", "error", err)
		}
	}()
	return store, &db.Notifier{DB: gdb, Channel: realtime.NotifyChannel}, nil
}
