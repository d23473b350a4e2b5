package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"folio/internal/domain"
	"folio/internal/domain/models"
	"folio/internal/domain/repositories"
)

// PostgresChapterRepository implements the ChapterRepository interface
type PostgresChapterRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewChapterRepository creates a new chapter repository
func NewChapterRepository(config *RepositoryConfig) repositories.ChapterRepository {
	return &PostgresChapterRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new chapter
func (r *PostgresChapterRepository) Create(ctx context.Context, chapter *models.Chapter) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, book_id, title, sort_order, markdown_content, is_preview, voice_file)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Chapters)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		chapter.ID,
		chapter.BookID,
		chapter.Title,
		chapter.Order,
		chapter.MarkdownContent,
		chapter.IsPreview,
		chapter.VoiceFile,
	)
	if err != nil {
		if isPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("chapter %s already exists", chapter.ID),
				ResourceType: "chapter",
				ResourceID:   chapter.ID,
			}
		}
		if isPgForeignKeyError(err) {
			return fmt.Errorf("book %s: %w", chapter.BookID, domain.ErrNotFound)
		}
		return fmt.Errorf("create chapter: %w", err)
	}

	return nil
}

// GetByID retrieves a chapter by ID
func (r *PostgresChapterRepository) GetByID(ctx context.Context, id string) (*models.Chapter, error) {
	query := fmt.Sprintf(`
		SELECT id, book_id, title, sort_order, markdown_content, is_preview, voice_file
		FROM %s
		WHERE id = $1
	`, r.tables.Chapters)

	var chapter models.Chapter
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&chapter.ID,
		&chapter.BookID,
		&chapter.Title,
		&chapter.Order,
		&chapter.MarkdownContent,
		&chapter.IsPreview,
		&chapter.VoiceFile,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get chapter: %w", err)
	}

	return &chapter, nil
}

// ListByBook retrieves a book's chapters ordered by (sort_order, id)
func (r *PostgresChapterRepository) ListByBook(ctx context.Context, bookID string, previewOnly bool) ([]models.Chapter, error) {
	query := fmt.Sprintf(`
		SELECT id, book_id, title, sort_order, markdown_content, is_preview, voice_file
		FROM %s
		WHERE book_id = $1
	`, r.tables.Chapters)
	if previewOnly {
		query += " AND is_preview = TRUE"
	}
	query += " ORDER BY sort_order, id"

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	defer rows.Close()

	chapters := []models.Chapter{}
	for rows.Next() {
		var chapter models.Chapter
		err := rows.Scan(
			&chapter.ID,
			&chapter.BookID,
			&chapter.Title,
			&chapter.Order,
			&chapter.MarkdownContent,
			&chapter.IsPreview,
			&chapter.VoiceFile,
		)
		if err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		chapters = append(chapters, chapter)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chapters: %w", err)
	}

	return chapters, nil
}

// Update persists all mutable fields of the chapter
func (r *PostgresChapterRepository) Update(ctx context.Context, chapter *models.Chapter) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, sort_order = $2, markdown_content = $3, is_preview = $4, voice_file = $5
		WHERE id = $6
	`, r.tables.Chapters)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		chapter.Title,
		chapter.Order,
		chapter.MarkdownContent,
		chapter.IsPreview,
		chapter.VoiceFile,
		chapter.ID,
	)
	if err != nil {
		return fmt.Errorf("update chapter: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("chapter %s: %w", chapter.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a chapter
func (r *PostgresChapterRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Chapters)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete chapter: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
