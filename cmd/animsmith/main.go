package main

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

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/animsmith/animsmith/internal/asset"
	"github.com/animsmith/animsmith/internal/config"
	"github.com/animsmith/animsmith/internal/mcp"
	"github.com/animsmith/animsmith/internal/scene"
	"github.com/animsmith/animsmith/internal/service/anim"
	"github.com/animsmith/animsmith/internal/telemetry"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// stdout carries the MCP stdio protocol, so logs go to stderr.
	level := slog.LevelInfo
	if os.Getenv("ANIMSMITH_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	// Load .env file if present (non-fatal; production won't have one).
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.Info("animsmith starting", "version", version, "catalog", cfg.CatalogPath)

	otelShutdown, err := telemetry.Init(ctx, cfg.OTELEndpoint, cfg.ServiceName, version, cfg.OTELInsecure)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() { _ = otelShutdown(context.Background()) }()

	store, err := asset.Open(cfg.CatalogPath, logger)
	if err != nil {
		return fmt.Errorf("asset catalog: %w", err)
	}
	defer store.Close()

	sceneTable := scene.NewMemory()
	svc := anim.New(store, sceneTable, scene.NewAliasResolver(), logger)
	srv := mcp.New(svc, store, logger, version)

	g, ctx := errgroup.WithContext(ctx)

	// stdio transport.
	g.Go(func() error {
		stdio := mcpserver.NewStdioServer(srv.MCPServer())
		stdio.SetErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))
		if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("stdio transport: %w", err)
		}
		return nil
	})

	// Optional StreamableHTTP transport.
	if cfg.HTTPPort > 0 {
		mux := http.NewServeMux()
		mux.Handle("/mcp", mcpserver.NewStreamableHTTPServer(srv.MCPServer()))
		mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})

		httpServer := &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
			Handler:      mux,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		}

		g.Go(func() error {
			slog.Info("http transport listening", "port", cfg.HTTPPort)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http transport: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		})
	}

	err = g.Wait()
	slog.Info("animsmith shutting down")
	return err
}
