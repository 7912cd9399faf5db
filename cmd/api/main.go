package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dvloznov/partner-ledger/internal/api"
	"github.com/dvloznov/partner-ledger/internal/app"
	"github.com/dvloznov/partner-ledger/internal/config"
	"github.com/dvloznov/partner-ledger/internal/jobs"
	"github.com/dvloznov/partner-ledger/internal/jobs/inmemory"
	"github.com/dvloznov/partner-ledger/internal/logger"
	"github.com/dvloznov/partner-ledger/internal/summary"
)

func main() {
	// Environment first so flag defaults can read it
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		l := logger.New()
		l.Fatal().Err(err).Msg("Invalid configuration")
	}
	if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
		l := logger.New()
		l.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	// Parse command-line flags
	var (
		port    = flag.String("port", cfg.Port, "HTTP server port (or set PORT env)")
		backend = flag.String("store", cfg.StoreBackend, "Store backend: memory, bigquery or postgres (or set STORE_BACKEND env)")
	)
	flag.Parse()
	cfg.StoreBackend = *backend

	// Initialize logger
	log := logger.WithComponent("api")
	ctx := logger.WithContext(context.Background(), log)

	docStore, err := app.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}
	defer docStore.Close()

	svc := app.NewLedger(docStore, cfg)

	// Initialize job infrastructure
	jobStore := inmemory.NewStore()
	var publisher jobs.Publisher
	var jobQueue *inmemory.Queue

	// Start worker in background to process jobs
	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	summarizer, err := summary.New(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Summaries disabled")
	} else {
		jobQueue = inmemory.NewQueue(100, jobStore)
		if err := jobQueue.Start(workerCtx, jobs.NewSummaryHandler(svc, summarizer)); err != nil {
			log.Fatal().Err(err).Msg("Failed to start job worker")
		}
		publisher = jobQueue
		log.Info().Str("provider", cfg.SummaryProvider).Msg("Summary worker started")
	}

	handler := api.NewRouter(api.Deps{
		Ledger:    svc,
		Publisher: publisher,
		JobStore:  jobStore,
		Log:       log,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", *port).Str("store", cfg.StoreBackend).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Cancel worker context
	cancelWorker()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Stop job queue and wait for in-flight jobs
	if jobQueue != nil {
		if err := jobQueue.Stop(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error stopping job queue")
		}
	}

	log.Info().Msg("Server exited")
}
