package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/pressarchive/newspaper-ocr/internal/async"
	"github.com/pressarchive/newspaper-ocr/internal/common"
	"github.com/pressarchive/newspaper-ocr/internal/ingest"
	"github.com/pressarchive/newspaper-ocr/internal/llm/openai"
	"github.com/pressarchive/newspaper-ocr/internal/pipeline"
	repo "github.com/pressarchive/newspaper-ocr/internal/repository"
	"github.com/pressarchive/newspaper-ocr/internal/script"
)

func main() {
	// Structured logger that outputs messages with variables but no time/level
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	addr := cfg.Server.GRPCAddr
	if !strings.HasPrefix(addr, ":") && !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repo.NewPool(ctx, repo.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := repo.HealthCheck(ctx, pool, 5*time.Second, logger); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	pages := repo.NewPostgresPages(pool)
	if err := pages.Migrate(ctx); err != nil {
		logger.Error("failed to migrate pages table", "error", err)
		os.Exit(1)
	}

	extractor := openai.NewClient(openai.Config{
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
		Lenient:     true,
	}, logger)

	// Traditional Chinese (HK) output; reflow runs before conversion.
	s2hk, err := script.S2HK()
	if err != nil {
		logger.Error("failed to load s2hk conversion", "error", err)
		os.Exit(1)
	}

	processor := pipeline.NewProcessor(logger, pipeline.Config{}, pages, extractor, s2hk)

	queue := async.NewProcessorQueue(processor, logger,
		async.WithWorkers(6),
		async.WithQueueSize(512),
		async.WithProcessTimeout(3*time.Minute),
	)

	scans, watchErrs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       cfg.Ingest.ScanRoots,
		InitialScan: true,
		Debounce:    cfg.Ingest.Debounce,
	})
	if err != nil {
		logger.Error("failed to start scan watcher", "error", err)
		os.Exit(1)
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case path, ok := <-scans:
				if !ok {
					return
				}
				if err := queue.Enqueue(ctx, async.Job{ScanPath: path}); err != nil {
					logger.Warn("failed to enqueue scan", "path", path, "error", err)
				}
			case err, ok := <-watchErrs:
				if ok && err != nil {
					logger.Error("scan watcher error", "error", err)
				}
			}
		}
	}()

	// gRPC health endpoint so orchestrators can probe the daemon.
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error("failed to listen on address", "addr", addr, "error", err)
		os.Exit(1)
	}
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	logger.Info("newspaperd listening", "addr", addr, "scan_roots", strings.Join(cfg.Ingest.ScanRoots, ","))
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			slog.Error("gRPC serve error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	queue.Shutdown(context.Background())
	grpcServer.GracefulStop()
}
