package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"folio/internal/config"
	"folio/internal/repository/postgres"
	"folio/internal/seed"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't load fixtures")
	fixturesPath := flag.String("fixtures", "seed/fixtures.yaml", "Path to the YAML fixture file")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("🚫 BLOCKED: Cannot run --drop-tables in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	// Exit early if schema-only mode
	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	// Parse the fixture file
	fixtures, err := seed.LoadFixtures(*fixturesPath)
	if err != nil {
		log.Fatalf("Failed to load fixtures: %v", err)
	}
	log.Printf("📝 Loaded fixtures: %d users, %d books, %d access grants",
		len(fixtures.Users), len(fixtures.Books), len(fixtures.Access))

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	bookRepo := postgres.NewBookRepository(repoConfig)
	chapterRepo := postgres.NewChapterRepository(repoConfig)
	tocRepo := postgres.NewTOCRepository(repoConfig)
	linkRepo := postgres.NewYouTubeLinkRepository(repoConfig)
	accessRepo := postgres.NewAccessRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Apply fixtures atomically
	loader := seed.NewLoader(userRepo, bookRepo, chapterRepo, tocRepo, linkRepo, accessRepo, txManager, logger)
	if err := loader.Apply(ctx, fixtures); err != nil {
		log.Fatalf("❌ Seeding failed, database rolled back: %v", err)
	}

	log.Println("🎉 Seeding complete!")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Enable UUID extension
	_, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"")
	if err != nil {
		return err
	}

	// Create users table
	createUsers := `
		CREATE TABLE IF NOT EXISTS ` + tables.Users + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			is_blocked BOOLEAN NOT NULL DEFAULT FALSE,
			is_staff BOOLEAN NOT NULL DEFAULT FALSE,
			is_superuser BOOLEAN NOT NULL DEFAULT FALSE,
			date_joined TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createUsers); err != nil {
		return err
	}

	// Create books table
	createBooks := `
		CREATE TABLE IF NOT EXISTS ` + tables.Books + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			title TEXT NOT NULL,
			author TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			cover_image TEXT,
			content_file TEXT,
			markdown_content TEXT,
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			is_published BOOLEAN NOT NULL DEFAULT TRUE,
			toc_position TEXT NOT NULL DEFAULT 'sidebar',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createBooks); err != nil {
		return err
	}

	// Create chapters table
	createChapters := `
		CREATE TABLE IF NOT EXISTS ` + tables.Chapters + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			book_id UUID NOT NULL REFERENCES ` + tables.Books + `(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0,
			markdown_content TEXT,
			is_preview BOOLEAN NOT NULL DEFAULT FALSE,
			voice_file TEXT
		)
	`
	if _, err := pool.Exec(ctx, createChapters); err != nil {
		return err
	}

	// Create toc_entries table.
	// parent_id carries no FK constraint: deleting an entry leaves its
	// children dangling, and the tree builder drops them from output.
	createTOCEntries := `
		CREATE TABLE IF NOT EXISTS ` + tables.TOCEntries + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			book_id UUID NOT NULL REFERENCES ` + tables.Books + `(id) ON DELETE CASCADE,
			chapter_id UUID REFERENCES ` + tables.Chapters + `(id) ON DELETE SET NULL,
			title TEXT NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			sort_order INTEGER NOT NULL DEFAULT 0,
			parent_id UUID,
			anchor_id TEXT
		)
	`
	if _, err := pool.Exec(ctx, createTOCEntries); err != nil {
		return err
	}

	// Create youtube_links table
	createLinks := `
		CREATE TABLE IF NOT EXISTS ` + tables.YouTubeLinks + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			book_id UUID NOT NULL REFERENCES ` + tables.Books + `(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0
		)
	`
	if _, err := pool.Exec(ctx, createLinks); err != nil {
		return err
	}

	// Create book_access table
	createAccess := `
		CREATE TABLE IF NOT EXISTS ` + tables.BookAccess + ` (
			user_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			book_id UUID NOT NULL REFERENCES ` + tables.Books + `(id) ON DELETE CASCADE,
			unlocked_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, book_id)
		)
	`
	if _, err := pool.Exec(ctx, createAccess); err != nil {
		return err
	}

	// Create indexes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `chapters_book_order ON ` + tables.Chapters + `(book_id, sort_order)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `toc_entries_book_order ON ` + tables.TOCEntries + `(book_id, sort_order)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `youtube_links_book ON ` + tables.YouTubeLinks + `(book_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `book_access_book ON ` + tables.BookAccess + `(book_id)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.BookAccess,
		tables.YouTubeLinks,
		tables.TOCEntries,
		tables.Chapters,
		tables.Books,
		tables.Users,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}
