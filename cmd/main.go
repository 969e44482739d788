package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"qp-generator-backend/internal/ai"
	"qp-generator-backend/internal/config"
	"qp-generator-backend/internal/logger"
	"qp-generator-backend/internal/telemetry"
	"qp-generator-backend/internal/vectorstore"
	"qp-generator-backend/middleware"
	"qp-generator-backend/routes"
	"qp-generator-backend/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg)

	if cfg.TracingEnabled {
		shutdown, err := telemetry.InitTracer("qp-generator-backend", cfg.OTLPEndpoint)
		if err != nil {
			log.Fatal("Failed to initialize tracing:", err)
		}
		defer shutdown()
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Fatal("Failed to initialize metrics:", err)
	}

	ctx := context.Background()

	// Gemini model client (shared by all generation tasks)
	modelClient, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTier)
	if err != nil {
		log.Fatal("Failed to create Gemini client:", err)
	}
	defer modelClient.Close()

	// Vector index, one collection per subject
	embedFunc, err := ai.NewGeminiEmbeddingFunc(ctx, cfg.GeminiAPIKey, cfg.GoogleEmbeddingsModel)
	if err != nil {
		log.Fatal("Failed to create embedding function:", err)
	}
	vectors, err := vectorstore.New(cfg.VectorDBDir, embedFunc)
	if err != nil {
		log.Fatal("Failed to open vector store:", err)
	}

	// Services, constructed once and shared read-mostly across requests
	store, err := services.NewDocumentStore(cfg.UploadDir)
	if err != nil {
		log.Fatal("Failed to create document store:", err)
	}
	extractor := services.NewExtractor()
	chunker := services.NewChunker(cfg.ChunkSize)
	generator := services.NewGenerator(modelClient)

	var searcher *services.WebSearcher
	if cfg.WebSearchEnabled {
		searcher = services.NewWebSearcher()
	}
	retriever := services.NewRetriever(vectors, searcher)
	outcomes := services.NewOutcomeService(store, generator)

	// Initialize Gin router
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.MetricsMiddleware(metrics))
	if cfg.TracingEnabled {
		router.Use(middleware.TracingMiddleware())
		router.Use(middleware.EnrichTrace())
	}

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "QP Generator Backend Running"})
	})

	// Setup routes
	routes.SetupSubjectRoutes(router, store, vectors)
	routes.SetupUploadRoutes(router, cfg, store, extractor, chunker, vectors)
	routes.SetupGenerateRoutes(router, retriever, generator, outcomes)
	routes.SetupChatRoutes(router, retriever, generator, outcomes)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
