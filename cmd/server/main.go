package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/product-api/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/product-api/internal/handlers"
	"github.com/Lixing-Zhang/kart-challenge/product-api/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/product-api/pkg/logger"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting product api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"store_driver", cfg.Store.Driver,
		"env", cfg.Env,
		"log_level", cfg.LogLevel,
	)

	// Requests are answered with 503 until the store is set
	store := repository.NewDeferred()

	router := handlers.NewRouter(handlers.RouterConfig{
		Store:  store,
		Auth:   cfg.Auth,
		CORS:   cfg.CORS,
		Logger: log,
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	var client atomic.Pointer[mongo.Client]
	go func() {
		c, err := initStore(cfg.Store, store, log)
		if err != nil {
			log.Error("failed to initialise product store", "error", err)
			os.Exit(1)
		}
		client.Store(c)
	}()

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"product-api": func(ctx context.Context) error {
				log.Info("shutting down server...")
				if err := srv.Shutdown(ctx); err != nil {
					return fmt.Errorf("server shutdown: %w", err)
				}
				// The pool is closed only after in-flight requests have finished
				if c := client.Load(); c != nil {
					return c.Disconnect(ctx)
				}
				return nil
			},
		},
	)

	exitCode := <-wait
	log.Info("server stopped", "exit_code", exitCode)
	os.Exit(exitCode)
}

// initStore connects the configured store and installs it in the shared handle.
// The returned client is nil for the in-memory driver.
func initStore(cfg config.StoreConfig, store *repository.Deferred, log *slog.Logger) (*mongo.Client, error) {
	if cfg.Driver == config.StoreDriverMemory {
		store.Set(repository.NewInMemoryProductRepository(repository.DefaultCatalog()...))
		log.Info("using in-memory product store")
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ConnectTimeout)*time.Second)
	defer cancel()

	client, err := repository.Connect(ctx, cfg.URI)
	if err != nil {
		return nil, err
	}

	repo := repository.NewMongoProductRepository(client.Database(cfg.Database).Collection(cfg.Collection))
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Warn("could not create product indexes", "error", err)
	}

	store.Set(repo)
	log.Info("connected to mongodb", "database", cfg.Database, "collection", cfg.Collection)
	return client, nil
}
