package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zinister/mentor/internal/api"
	"github.com/zinister/mentor/internal/config"
	"github.com/zinister/mentor/internal/domain"
	"github.com/zinister/mentor/internal/llm"
	"github.com/zinister/mentor/internal/repository"
	"github.com/zinister/mentor/internal/service"
	"github.com/zinister/mentor/internal/session"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Initialize the knowledge store database
	db, err := repository.NewDB(cfg.Storage.DBPath)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	chunkRepo := repository.NewChunkRepository(db)

	// The provider client needs the environment credential. Without it the
	// widget still serves sessions and uploads; chat and reindex fail per-call.
	var generator domain.Generator
	var embedder domain.Embedder
	if client, err := llm.New(llm.Config{
		BaseURL:        cfg.LLM.BaseURL,
		APIKey:         cfg.APIKey(),
		ChatModel:      cfg.LLM.ChatModel,
		EmbeddingModel: cfg.LLM.EmbeddingModel,
	}); err != nil {
		logger.Warn("Model provider unavailable, chat and indexing disabled", zap.Error(err))
	} else {
		generator = client
		embedder = client
	}

	// Initialize services
	sessions := session.NewManager()
	knowledgeService := service.NewKnowledgeService(chunkRepo, embedder, logger)
	ingestService := service.NewIngestService(cfg, knowledgeService, logger)
	chatService := service.NewChatService(cfg, sessions, knowledgeService, generator, logger)

	// Initial rebuild of the knowledge store from the seed and upload
	// directories. Failure is not fatal: the store can be rebuilt later via
	// the admin reindex endpoint.
	if cfg.RAG.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		if result, err := ingestService.Reindex(ctx); err != nil {
			logger.Warn("Initial reindex failed", zap.Error(err))
		} else {
			logger.Info("Initial reindex complete",
				zap.Int("chunks", result.ChunkCount),
				zap.Int("skipped", len(result.Skipped)),
			)
		}
		cancel()
	}

	// Setup router
	router := api.SetupRouter(chatService, ingestService, knowledgeService, sessions, api.RouterConfig{
		APIKey:       cfg.Admin.APIKey,
		AllowOrigins: cfg.Server.AllowOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting mentor server",
			zap.String("address", cfg.Address()),
			zap.Bool("rag_enabled", cfg.RAG.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
