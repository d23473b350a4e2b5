package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"folio/internal/domain"
	"folio/internal/domain/models"
	"folio/internal/domain/repositories"
)

// PostgresTOCRepository implements the TOCRepository interface
type PostgresTOCRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewTOCRepository creates a new TOC entry repository
func NewTOCRepository(config *RepositoryConfig) repositories.TOCRepository {
	return &PostgresTOCRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new TOC entry
func (r *PostgresTOCRepository) Create(ctx context.Context, entry *models.TOCEntry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, book_id, chapter_id, title, level, sort_order, parent_id, anchor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.TOCEntries)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		entry.ID,
		entry.BookID,
		entry.ChapterID,
		entry.Title,
		entry.Level,
		entry.Order,
		entry.ParentID,
		entry.AnchorID,
	)
	if err != nil {
		if isPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("toc entry %s already exists", entry.ID),
				ResourceType: "toc_entry",
				ResourceID:   entry.ID,
			}
		}
		if isPgForeignKeyError(err) {
			return fmt.Errorf("referenced book or chapter: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create toc entry: %w", err)
	}

	return nil
}

// GetByID retrieves a TOC entry by ID
func (r *PostgresTOCRepository) GetByID(ctx context.Context, id string) (*models.TOCEntry, error) {
	query := fmt.Sprintf(`
		SELECT id, book_id, chapter_id, title, level, sort_order, parent_id, anchor_id
		FROM %s
		WHERE id = $1
	`, r.tables.TOCEntries)

	var entry models.TOCEntry
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&entry.ID,
		&entry.BookID,
		&entry.ChapterID,
		&entry.Title,
		&entry.Level,
		&entry.Order,
		&entry.ParentID,
		&entry.AnchorID,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("toc entry %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get toc entry: %w", err)
	}

	return &entry, nil
}

// ListByBook retrieves all of a book's TOC entries ordered by (sort_order, id)
func (r *PostgresTOCRepository) ListByBook(ctx context.Context, bookID string) ([]models.TOCEntry, error) {
	query := fmt.Sprintf(`
		SELECT id, book_id, chapter_id, title, level, sort_order, parent_id, anchor_id
		FROM %s
		WHERE book_id = $1
		ORDER BY sort_order, id
	`, r.tables.TOCEntries)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("list toc entries: %w", err)
	}
	defer rows.Close()

	entries := []models.TOCEntry{}
	for rows.Next() {
		var entry models.TOCEntry
		err := rows.Scan(
			&entry.ID,
			&entry.BookID,
			&entry.ChapterID,
			&entry.Title,
			&entry.Level,
			&entry.Order,
			&entry.ParentID,
			&entry.AnchorID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan toc entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate toc entries: %w", err)
	}

	return entries, nil
}

// Update persists all mutable fields of the TOC entry
func (r *PostgresTOCRepository) Update(ctx context.Context, entry *models.TOCEntry) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET chapter_id = $1, title = $2, level = $3, sort_order = $4, parent_id = $5, anchor_id = $6
		WHERE id = $7
	`, r.tables.TOCEntries)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		entry.ChapterID,
		entry.Title,
		entry.Level,
		entry.Order,
		entry.ParentID,
		entry.AnchorID,
		entry.ID,
	)
	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("referenced chapter: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("update toc entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("toc entry %s: %w", entry.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a TOC entry. Children of the deleted entry keep their
// parent_id and become dangling; the tree builder drops them from output.
func (r *PostgresTOCRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.TOCEntries)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete toc entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("toc entry %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
