package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/agenthands/knetlabel/internal/config"
	"github.com/agenthands/knetlabel/internal/core"
	"github.com/agenthands/knetlabel/internal/driver"
	"github.com/agenthands/knetlabel/internal/logger"
	"github.com/agenthands/knetlabel/internal/observability"
	"github.com/agenthands/knetlabel/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		log.Fatalf("Failed to apply environment: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.Logging.Mode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, lg, cfg.Tracing)
	if err != nil {
		lg.Fatal("Failed to initialise tracing", "error", err)
	}

	d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph, lg)
	if err != nil {
		lg.Fatal("Failed to connect to Memgraph", "uri", cfg.Memgraph.URI, "error", err)
	}

	labeler := core.NewLabeler(d, cfg, lg)
	if err := labeler.BuildIndices(ctx); err != nil {
		lg.Warn("Failed to build indices", "error", err)
	}

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	serviceName := ""
	if cfg.Tracing.Enabled {
		serviceName = cfg.Tracing.ServiceName
	}
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.NewServer(labeler, lg).SetupRouter(serviceName),
	}

	go func() {
		lg.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	lg.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("Server shutdown failed", "error", err)
	}
	if err := d.Close(shutdownCtx); err != nil {
		lg.Error("Failed to close driver", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		lg.Error("Failed to flush traces", "error", err)
	}
}
