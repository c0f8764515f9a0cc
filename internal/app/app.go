package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"card-binder/internal/broker"
	kafka_impl "card-binder/internal/broker/kafka"
	"card-binder/internal/config"
	"card-binder/internal/domain"
	"card-binder/internal/event"
	"card-binder/internal/http-server/handler/card"
	"card-binder/internal/http-server/router"
	"card-binder/internal/repository/download"
	minio_repo "card-binder/internal/repository/download/cloud/minio"
	"card-binder/internal/repository/download/disk"
	"card-binder/internal/usecase/binder"
	"card-binder/internal/usecase/canvas"
	"card-binder/internal/usecase/notice"
	"card-binder/internal/usecase/processor"
	"card-binder/internal/usecase/workspace"
	"card-binder/internal/worker"

	"github.com/wb-go/wbf/zlog"
)

const bucketCheckTimeout = 10 * time.Second

type App struct {
	cfg      *config.Config
	server   *http.Server
	logger   *zlog.Zerolog
	bus      *event.Bus
	producer *kafka_impl.ProducerClient
}

type sink interface {
	Deliver(ctx context.Context, export *domain.Export) error
	Name() string
}

func NewApp(cfg *config.Config, logger *zlog.Zerolog) (*App, error) {
	retries := cfg.DefaultRetryStrategy()

	bus := event.NewBus(cfg.Events.QueueSize, logger)

	board := notice.NewBoard(cfg.Events.NoticeLimit, logger)
	if err := bus.SubscribeNotices(board.Add); err != nil {
		return nil, err
	}

	var producer *kafka_impl.ProducerClient
	if cfg.Kafka.Enabled {
		var err error
		producer, err = kafka_impl.NewProducerClient(cfg.Kafka, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create kafka producer: %w", err)
		}
		notifier := broker.NewExportNotifier(producer, retries, logger)
		if err := bus.SubscribeExports(notifier.Handle); err != nil {
			return nil, err
		}
	}

	downloads, err := newSink(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create download sink: %w", err)
	}

	proc := processor.NewImageProcessor(cfg.Upload.MaxPixels, logger)
	ws := workspace.NewWorkspace(
		canvas.NewSurface(proc, logger),
		binder.NewGallery(proc, logger),
		worker.NewLoader(proc, cfg.Worker.Concurrency, cfg.Upload.MaxSize, logger),
		proc,
		downloads,
		bus,
		workspace.Radii{Card: cfg.Export.CardRadius, Collage: cfg.Export.CollageRadius},
		logger,
	)

	cardHandler := card.NewCardHandler(ws, board, card.Limits{
		MaxUploadSize: cfg.Upload.MaxSize,
		MaxFiles:      cfg.Upload.MaxFiles,
	}, logger)

	h := &router.Handler{
		CardHandler:    cardHandler,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
	}

	mux := router.SetupRouter(h)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info().
		Str("download_target", string(cfg.Download.Target)).
		Bool("kafka", cfg.Kafka.Enabled).
		Int("concurrency", cfg.Worker.Concurrency).
		Msg("App configured")

	return &App{
		cfg:      cfg,
		server:   server,
		logger:   logger,
		bus:      bus,
		producer: producer,
	}, nil
}

func newSink(cfg *config.Config, logger *zlog.Zerolog) (sink, error) {
	switch cfg.Download.Target {
	case config.TargetNone:
		return download.Discard{}, nil
	case config.TargetDisk:
		repo, err := disk.NewFileRepository(cfg.Download.Dir, logger)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case config.TargetMinIO:
		client, err := minio_repo.NewClient(cfg.MinIO)
		if err != nil {
			return nil, err
		}
		repo := minio_repo.NewMinIORepository(client, cfg.MinIO.Bucket, cfg.DefaultRetryStrategy(), logger)

		ctx, cancel := context.WithTimeout(context.Background(), bucketCheckTimeout)
		defer cancel()
		if err := repo.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown download target %q", cfg.Download.Target)
	}
}

func (a *App) Run() error {
	a.logger.Info().Str("addr", a.cfg.Server.Addr).Msg("Starting server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.handleSignals(cancel)

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		a.logger.Error().Err(err).Msg("Server error")
		a.close()
		return err
	case <-ctx.Done():
		a.logger.Info().Msg("Shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error().Err(err).Msg("Server shutdown failed")
		}

		a.close()

		a.logger.Info().Msg("Server stopped gracefully")
		return nil
	}
}

func (a *App) close() {
	a.bus.Close()

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close producer")
		}
	}
}

func (a *App) handleSignals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	a.logger.Info().Str("signal", sig.String()).Msg("Received signal")
	cancel()
}
