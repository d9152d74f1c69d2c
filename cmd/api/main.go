package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	amqpcommandsink "github.com/sahakari-society/members-console/internal/adapters/amqp/commandsink"
	"github.com/sahakari-society/members-console/internal/adapters/httpapi"
	memcommandsink "github.com/sahakari-society/members-console/internal/adapters/memory/commandsink"
	memidempotency "github.com/sahakari-society/members-console/internal/adapters/memory/idempotency"
	memmemberrepo "github.com/sahakari-society/members-console/internal/adapters/memory/memberrepo"
	postgres "github.com/sahakari-society/members-console/internal/adapters/postgres"
	pgmemberrepo "github.com/sahakari-society/members-console/internal/adapters/postgres/memberrepo"
	"github.com/sahakari-society/members-console/internal/app/members"
	"github.com/sahakari-society/members-console/internal/app/session"
	platformclock "github.com/sahakari-society/members-console/internal/platform/clock"
	"github.com/sahakari-society/members-console/internal/platform/config"
	"github.com/sahakari-society/members-console/internal/platform/logging"
	commandsinkport "github.com/sahakari-society/members-console/internal/ports/out/commandsink"
	memberrepoport "github.com/sahakari-society/members-console/internal/ports/out/memberrepo"
)

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid config:\n%v\n", err)
		os.Exit(2)
	}

	logger := logging.New(logging.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		Component: logging.ComponentApp,
		Output:    os.Stdout,
	})
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("api exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	repo, closeRepo, err := openMemberRepo(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	sink, closeSink, err := openCommandSink(cfg, logger)
	if err != nil {
		return err
	}
	defer closeSink()

	memberSvc := members.NewService(repo, sink, platformclock.NewSystemClock(), logger)
	api := httpapi.NewServer(memberSvc, session.NewGate(), memidempotency.NewStore(), logger)
	handler := httpapi.NewRouter(api, httpapi.RouterOptions{
		Logger: logger.With(logging.FieldComponent, logging.ComponentHTTP),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("api listening", "addr", srv.Addr, "storage", cfg.StorageBackend, "command_sink", cfg.CommandSink)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openMemberRepo(ctx context.Context, cfg config.Config, logger *slog.Logger) (memberrepoport.Repository, func(), error) {
	log := logger.With(logging.FieldComponent, logging.ComponentStorage)

	switch cfg.StorageBackend {
	case config.StoragePostgres:
		if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, nil, err
		}
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			return nil, nil, fmt.Errorf("invalid postgres config: %w", err)
		}
		log.Info("roster backed by postgres")
		return pgmemberrepo.NewRepo(pool), pool.Close, nil
	default:
		if cfg.RosterFile != "" {
			repo, err := memmemberrepo.LoadFile(cfg.RosterFile)
			if err != nil {
				return nil, nil, err
			}
			log.Info("roster loaded from file", "path", cfg.RosterFile)
			return repo, func() {}, nil
		}
		log.Info("roster seeded with sample members")
		return memmemberrepo.NewSampleRepo(), func() {}, nil
	}
}

func openCommandSink(cfg config.Config, logger *slog.Logger) (commandsinkport.Sink, func(), error) {
	switch cfg.CommandSink {
	case config.SinkAMQP:
		p, err := amqpcommandsink.Dial(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey, logger)
		if err != nil {
			return nil, nil, err
		}
		return p, closer(p, logger), nil
	default:
		return memcommandsink.NewSink(), func() {}, nil
	}
}

func closer(c io.Closer, logger *slog.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			logger.Warn("close failed", "error", err)
		}
	}
}
