package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/narwhalmedia/catalog/internal/config"
	"github.com/narwhalmedia/catalog/internal/container"
	"github.com/narwhalmedia/catalog/internal/logger"
	grpcmiddleware "github.com/narwhalmedia/catalog/internal/middleware/grpc"
)

const healthCheckInterval = 15 * time.Second

func main() {
	configPath := flag.String("config", "", "path to a config file")
	flag.Parse()

	var paths []string
	if *configPath != "" {
		paths = append(paths, *configPath)
	}

	cfg, err := config.Load(paths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Service, cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("catalog service failed", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting service",
		zap.String("version", cfg.Service.Version),
		zap.String("environment", cfg.Service.Environment),
		zap.String("events_transport", cfg.Events.Transport),
		zap.String("storage", cfg.Storage.Type),
	)

	catalog, cleanup, err := container.InitializeCatalog(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer cleanup()

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpcmiddleware.RecoveryInterceptor(log),
			grpcmiddleware.LoggingInterceptor(log),
		),
		grpc.ChainStreamInterceptor(
			grpcmiddleware.StreamRecoveryInterceptor(log),
			grpcmiddleware.StreamLoggingInterceptor(log),
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(cfg.Service.Name, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Service.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting gRPC server", zap.Int("port", cfg.Service.GRPCPort))
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("failed to serve gRPC: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return catalog.Listener.Start(gctx)
	})

	g.Go(func() error {
		watchHealth(gctx, catalog, healthServer, cfg.Service.Name, log)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down service")
		healthServer.Shutdown()
		shutdownGRPC(grpcServer, cfg.ShutdownTimeout, log)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("service shutdown complete")
	return nil
}

// watchHealth flips the serving status when the database or the broker becomes unreachable
func watchHealth(ctx context.Context, catalog *container.CatalogContainer, healthServer *health.Server, service string, log *zap.Logger) {
	ticker := time.NewTicker(healthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		status := grpc_health_v1.HealthCheckResponse_SERVING
		if err := checkDependencies(ctx, catalog); err != nil {
			log.Warn("health check failed", zap.Error(err))
			status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
		}
		healthServer.SetServingStatus(service, status)
	}
}

func checkDependencies(ctx context.Context, catalog *container.CatalogContainer) error {
	sqlDB, err := catalog.DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	return catalog.Transport.Health(ctx)
}

func shutdownGRPC(server *grpc.Server, timeout time.Duration, log *zap.Logger) {
	stopped := make(chan struct{})
	go func() {
		server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-time.After(timeout):
		log.Warn("shutdown timeout exceeded, forcing stop")
		server.Stop()
	case <-stopped:
		log.Info("gRPC server stopped gracefully")
	}
}
