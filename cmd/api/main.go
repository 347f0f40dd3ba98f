package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ayethu/voiceledger/internal/api/handlers"
	"github.com/ayethu/voiceledger/internal/api/middleware"
	"github.com/ayethu/voiceledger/internal/config"
	"github.com/ayethu/voiceledger/internal/gemini"
	"github.com/ayethu/voiceledger/internal/logger"
	"github.com/ayethu/voiceledger/internal/notionstore"
	"github.com/ayethu/voiceledger/internal/pipeline"
)

func main() {
	// Parse command-line flags
	port := flag.String("port", "", "HTTP server port (overrides PORT env)")
	flag.Parse()

	// Initialize logger
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *port != "" {
		cfg.Port = *port
	}

	ctx := context.Background()

	// Initialize the model pipeline
	model, err := gemini.NewClient(ctx, cfg.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}

	stages := pipeline.StagesFor(cfg.PipelineMode)
	transcriber := pipeline.NewTranscriber(model, pipeline.NewNormalizer(), stages, log)

	// Initialize the Notion store
	notionClient := notionstore.NewNotionClient(cfg.NotionAPIKey)
	store := notionstore.NewStore(notionClient, cfg.NotionDatabaseID, log)

	// Initialize handlers
	transcribeHandler := handlers.NewTranscribeHandler(transcriber, log)
	saveHandler := handlers.NewSaveHandler(store, log)

	// Create router
	mux := handlers.NewRouter(transcribeHandler, saveHandler)

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("pipeline_mode", cfg.PipelineMode).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
