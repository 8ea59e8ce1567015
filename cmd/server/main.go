package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/vytor/heptareview/internal/api"
	"github.com/vytor/heptareview/internal/config"
	"github.com/vytor/heptareview/internal/db"
	"github.com/vytor/heptareview/internal/logger"
	"github.com/vytor/heptareview/internal/repository"
	"github.com/vytor/heptareview/internal/repository/memory"
	"github.com/vytor/heptareview/internal/repository/sqlite"
	"github.com/vytor/heptareview/internal/services"
	"github.com/vytor/heptareview/internal/worker"
)

type storage struct {
	cards    repository.CardRepository
	reviews  repository.ReviewRepository
	subjects repository.SubjectRepository
	pinger   api.Pinger
	close    func() error
}

func openStorage(cfg config.Config) (*storage, error) {
	switch cfg.Storage {
	case "memory":
		store := memory.NewStore()
		return &storage{
			cards:    memory.NewCardRepository(store),
			reviews:  memory.NewReviewRepository(store),
			subjects: memory.NewSubjectRepository(store),
			pinger:   store,
			close:    func() error { return nil },
		}, nil
	case "sqlite":
		database, err := db.Open(cfg.DBDriver, cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return &storage{
			cards:    sqlite.NewCardRepository(database.DB),
			reviews:  sqlite.NewReviewRepository(database.DB),
			subjects: sqlite.NewSubjectRepository(database.DB),
			pinger:   database,
			close:    database.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration:\n%v\n", err)
		os.Exit(2)
	}

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)
	defer func() { _ = log.Sync() }()

	log.Info("===========================================")
	log.Info("HeptaReview Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("storage=%s", cfg.Storage)
	log.Debug("db_driver=%s", cfg.DBDriver)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("timezone=%s", cfg.Timezone)
	log.Debug("worker_count=%d", cfg.WorkerCount)
	log.Debug("queue_size=%d", cfg.QueueSize)
	log.Debug("digest_interval=%s", cfg.DigestInterval)

	store, err := openStorage(cfg)
	if err != nil {
		log.Error("failed to open storage: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing storage")
		if err := store.close(); err != nil {
			log.Error("failed to close storage: %v", err)
		}
	}()

	today := services.TodayIn(cfg.Location())

	// Initialize services
	cardService := services.NewCardService(store.cards, store.reviews)
	reviewService := services.NewReviewService(store.cards, store.reviews, today)
	subjectService := services.NewSubjectService(store.subjects)
	statsService := services.NewStatsService(store.cards, store.reviews, store.subjects, today)

	srv := &api.Server{
		CardService:    cardService,
		ReviewService:  reviewService,
		SubjectService: subjectService,
		StatsService:   statsService,
		Storage:        store.pinger,
	}

	ctx, cancel := context.WithCancel(context.Background())

	// Background digest of due cards
	pool := worker.NewPool(cfg.WorkerCount, cfg.QueueSize)
	pool.Start(ctx)

	var scheduler sync.WaitGroup
	if cfg.DigestInterval > 0 {
		scheduler.Add(1)
		go func() {
			defer scheduler.Done()
			worker.Every(ctx, pool, cfg.DigestInterval, func() worker.Job {
				return &worker.DueDigestJob{Stats: statsService}
			})
		}()
		pool.Submit(&worker.DueDigestJob{Stats: statsService})
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-stop:
		log.Info("received signal %v, initiating graceful shutdown", sig)
	case err := <-serverErr:
		log.Error("HTTP server error: %v", err)
		exitCode = 1
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping digest scheduler")
	cancel()
	scheduler.Wait()

	log.Debug("stopping worker pool")
	pool.Stop()

	log.Info("===========================================")
	log.Info("HeptaReview Server Stopped")
	log.Info("===========================================")

	if exitCode != 0 {
		// Deferred cleanup does not run after os.Exit.
		_ = store.close()
		os.Exit(exitCode)
	}
}
