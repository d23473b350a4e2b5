package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"folio/internal/auth"
	"folio/internal/config"
	"folio/internal/handler"
	"folio/internal/middleware"
	"folio/internal/repository/postgres"
	"folio/internal/service"
	"folio/internal/service/render"
	"folio/internal/service/toc"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

// maxLogFiles bounds how many timestamped log files are kept in LOG_DIR.
const maxLogFiles = 10

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	// Optionally tee logs to a timestamped file (LOG_DIR)
	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, maxLogFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	bookRepo := postgres.NewBookRepository(repoConfig)
	chapterRepo := postgres.NewChapterRepository(repoConfig)
	tocRepo := postgres.NewTOCRepository(repoConfig)
	linkRepo := postgres.NewYouTubeLinkRepository(repoConfig)
	accessRepo := postgres.NewAccessRepository(repoConfig)
	userRepo := postgres.NewUserRepository(repoConfig)

	// Create rendering components
	renderCfg := render.DefaultConfig()
	renderCfg.HighlightStyle = cfg.HighlightStyle
	renderer := render.New(renderCfg)
	tocBuilder := toc.NewBuilder()

	// Create services
	bookService := service.NewBookService(bookRepo, chapterRepo, tocRepo, linkRepo, accessRepo, userRepo, renderer, tocBuilder, logger)
	catalogService := service.NewCatalogService(bookRepo, chapterRepo, tocRepo, linkRepo, userRepo, logger)
	userService := service.NewAdminUserService(userRepo, bookRepo, accessRepo, logger)

	// Create handlers
	bookHandler := handler.NewBookHandler(bookService, logger)
	catalogHandler := handler.NewCatalogHandler(catalogService, logger)
	userHandler := handler.NewUserHandler(userService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", bookHandler.HealthCheck)

	// Reader routes
	mux.HandleFunc("GET /api/books", bookHandler.ListBooks)
	mux.HandleFunc("GET /api/books/purchased", bookHandler.ListPurchased) // Must come before {id} route
	mux.HandleFunc("GET /api/books/{id}", bookHandler.GetBook)
	mux.HandleFunc("GET /api/books/{id}/read", bookHandler.ReadBook)
	mux.HandleFunc("GET /api/books/{id}/content", bookHandler.GetContent)

	// Admin catalog routes
	mux.HandleFunc("GET /api/admin/books", catalogHandler.ListBooks)
	mux.HandleFunc("POST /api/admin/books", catalogHandler.CreateBook)
	mux.HandleFunc("GET /api/admin/books/{id}", catalogHandler.GetBook)
	mux.HandleFunc("PATCH /api/admin/books/{id}", catalogHandler.UpdateBook)
	mux.HandleFunc("DELETE /api/admin/books/{id}", catalogHandler.DeleteBook)
	mux.HandleFunc("GET /api/admin/books/{id}/chapters", catalogHandler.ListChapters)
	mux.HandleFunc("GET /api/admin/books/{id}/toc", catalogHandler.ListTOCEntries)

	mux.HandleFunc("POST /api/admin/chapters", catalogHandler.CreateChapter)
	mux.HandleFunc("PATCH /api/admin/chapters/{id}", catalogHandler.UpdateChapter)
	mux.HandleFunc("DELETE /api/admin/chapters/{id}", catalogHandler.DeleteChapter)

	mux.HandleFunc("POST /api/admin/toc", catalogHandler.CreateTOCEntry)
	mux.HandleFunc("PATCH /api/admin/toc/{id}", catalogHandler.UpdateTOCEntry)
	mux.HandleFunc("DELETE /api/admin/toc/{id}", catalogHandler.DeleteTOCEntry)

	mux.HandleFunc("POST /api/admin/youtube-links", catalogHandler.CreateYouTubeLink)
	mux.HandleFunc("PATCH /api/admin/youtube-links/{id}", catalogHandler.UpdateYouTubeLink)
	mux.HandleFunc("DELETE /api/admin/youtube-links/{id}", catalogHandler.DeleteYouTubeLink)

	// Admin account routes
	mux.HandleFunc("GET /api/admin/users", userHandler.ListUsers)
	mux.HandleFunc("GET /api/admin/users/{id}", userHandler.GetUser)
	mux.HandleFunc("POST /api/admin/users/{id}/toggle-block", userHandler.ToggleBlock)
	mux.HandleFunc("POST /api/admin/access/bulk", userHandler.BulkAccess)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS -> Recovery -> Auth -> Routes
	root = middleware.AuthMiddleware(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
