package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"folio/internal/domain"
	"folio/internal/domain/models"
	"folio/internal/domain/repositories"
)

// PostgresYouTubeLinkRepository implements the YouTubeLinkRepository interface
type PostgresYouTubeLinkRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewYouTubeLinkRepository creates a new video link repository
func NewYouTubeLinkRepository(config *RepositoryConfig) repositories.YouTubeLinkRepository {
	return &PostgresYouTubeLinkRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new video link
func (r *PostgresYouTubeLinkRepository) Create(ctx context.Context, link *models.YouTubeLink) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, book_id, title, url, sort_order)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.YouTubeLinks)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		link.ID,
		link.BookID,
		link.Title,
		link.URL,
		link.Order,
	)
	if err != nil {
		if isPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("youtube link %s already exists", link.ID),
				ResourceType: "youtube_link",
				ResourceID:   link.ID,
			}
		}
		if isPgForeignKeyError(err) {
			return fmt.Errorf("book %s: %w", link.BookID, domain.ErrNotFound)
		}
		return fmt.Errorf("create youtube link: %w", err)
	}

	return nil
}

// GetByID retrieves a video link by ID
func (r *PostgresYouTubeLinkRepository) GetByID(ctx context.Context, id string) (*models.YouTubeLink, error) {
	query := fmt.Sprintf(`
		SELECT id, book_id, title, url, sort_order
		FROM %s
		WHERE id = $1
	`, r.tables.YouTubeLinks)

	var link models.YouTubeLink
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&link.ID,
		&link.BookID,
		&link.Title,
		&link.URL,
		&link.Order,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("youtube link %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get youtube link: %w", err)
	}

	return &link, nil
}

// ListByBook retrieves a book's video links ordered by (sort_order, id)
func (r *PostgresYouTubeLinkRepository) ListByBook(ctx context.Context, bookID string) ([]models.YouTubeLink, error) {
	query := fmt.Sprintf(`
		SELECT id, book_id, title, url, sort_order
		FROM %s
		WHERE book_id = $1
		ORDER BY sort_order, id
	`, r.tables.YouTubeLinks)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("list youtube links: %w", err)
	}
	defer rows.Close()

	links := []models.YouTubeLink{}
	for rows.Next() {
		var link models.YouTubeLink
		err := rows.Scan(
			&link.ID,
			&link.BookID,
			&link.Title,
			&link.URL,
			&link.Order,
		)
		if err != nil {
			return nil, fmt.Errorf("scan youtube link: %w", err)
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate youtube links: %w", err)
	}

	return links, nil
}

// Update persists all mutable fields of the video link
func (r *PostgresYouTubeLinkRepository) Update(ctx context.Context, link *models.YouTubeLink) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, url = $2, sort_order = $3
		WHERE id = $4
	`, r.tables.YouTubeLinks)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		link.Title,
		link.URL,
		link.Order,
		link.ID,
	)
	if err != nil {
		return fmt.Errorf("update youtube link: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("youtube link %s: %w", link.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a video link
func (r *PostgresYouTubeLinkRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.YouTubeLinks)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete youtube link: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("youtube link %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
