package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"folio/internal/domain"
	"folio/internal/domain/models"
	"folio/internal/domain/repositories"
)

// PostgresBookRepository implements the BookRepository interface
type PostgresBookRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewBookRepository creates a new book repository
func NewBookRepository(config *RepositoryConfig) repositories.BookRepository {
	return &PostgresBookRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const bookColumns = `id, title, author, description, cover_image, content_file,
		markdown_content, price, is_published, toc_position, created_at`

func scanBook(row interface{ Scan(...any) error }) (*models.Book, error) {
	var book models.Book
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Description,
		&book.CoverImage,
		&book.ContentFile,
		&book.MarkdownContent,
		&book.Price,
		&book.IsPublished,
		&book.TOCPosition,
		&book.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Create inserts a new book
func (r *PostgresBookRepository) Create(ctx context.Context, book *models.Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, author, description, cover_image, content_file,
			markdown_content, price, is_published, toc_position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`, r.tables.Books)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.Description,
		book.CoverImage,
		book.ContentFile,
		book.MarkdownContent,
		book.Price,
		book.IsPublished,
		book.TOCPosition,
		book.CreatedAt,
	).Scan(&book.CreatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("book %s already exists", book.ID),
				ResourceType: "book",
				ResourceID:   book.ID,
			}
		}
		return fmt.Errorf("create book: %w", err)
	}

	return nil
}

// GetByID retrieves a book by ID regardless of publication state
func (r *PostgresBookRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, bookColumns, r.tables.Books)

	book, err := scanBook(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	return book, nil
}

// List retrieves books ordered by creation time, newest first
func (r *PostgresBookRepository) List(ctx context.Context, publishedOnly bool) ([]models.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
	`, bookColumns, r.tables.Books)
	if publishedOnly {
		query += " WHERE is_published = TRUE"
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}

	return books, nil
}

// ListByIDs retrieves the books whose IDs appear in ids
func (r *PostgresBookRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Book, error) {
	if len(ids) == 0 {
		return []models.Book{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = ANY($1)
		ORDER BY created_at DESC, id
	`, bookColumns, r.tables.Books)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list books by ids: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}

	return books, nil
}

// Update persists all mutable fields of the book
func (r *PostgresBookRepository) Update(ctx context.Context, book *models.Book) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, author = $2, description = $3, cover_image = $4,
			content_file = $5, markdown_content = $6, price = $7,
			is_published = $8, toc_position = $9
		WHERE id = $10
	`, r.tables.Books)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		book.Title,
		book.Author,
		book.Description,
		book.CoverImage,
		book.ContentFile,
		book.MarkdownContent,
		book.Price,
		book.IsPublished,
		book.TOCPosition,
		book.ID,
	)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("book %s: %w", book.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a book. Chapters, TOC entries, links and access records
// go with it via ON DELETE CASCADE.
func (r *PostgresBookRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Books)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
