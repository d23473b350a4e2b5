package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"folio/internal/domain"
	"folio/internal/domain/models"
	"folio/internal/domain/repositories"
)

// PostgresAccessRepository implements the AccessRepository interface
type PostgresAccessRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewAccessRepository creates a new book access repository
func NewAccessRepository(config *RepositoryConfig) repositories.AccessRepository {
	return &PostgresAccessRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Exists reports whether the user holds a grant for the book
func (r *PostgresAccessRepository) Exists(ctx context.Context, userID, bookID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE user_id = $1 AND book_id = $2
		)
	`, r.tables.BookAccess)

	var exists bool
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, userID, bookID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check access: %w", err)
	}

	return exists, nil
}

// Grant creates a grant if absent. ON CONFLICT DO NOTHING makes repeated
// grants idempotent; RowsAffected tells us whether a record was created.
func (r *PostgresAccessRepository) Grant(ctx context.Context, userID, bookID string) (bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, book_id, unlocked_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, book_id) DO NOTHING
	`, r.tables.BookAccess)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, userID, bookID)
	if err != nil {
		if isPgForeignKeyError(err) {
			return false, fmt.Errorf("user or book: %w", domain.ErrNotFound)
		}
		return false, fmt.Errorf("grant access: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Revoke removes a grant. Returns true when a record was deleted.
func (r *PostgresAccessRepository) Revoke(ctx context.Context, userID, bookID string) (bool, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE user_id = $1 AND book_id = $2
	`, r.tables.BookAccess)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, userID, bookID)
	if err != nil {
		return false, fmt.Errorf("revoke access: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// ListByUser retrieves the user's grants, most recent first
func (r *PostgresAccessRepository) ListByUser(ctx context.Context, userID string) ([]models.BookAccess, error) {
	query := fmt.Sprintf(`
		SELECT user_id, book_id, unlocked_at
		FROM %s
		WHERE user_id = $1
		ORDER BY unlocked_at DESC, book_id
	`, r.tables.BookAccess)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list access: %w", err)
	}
	defer rows.Close()

	grants := []models.BookAccess{}
	for rows.Next() {
		var grant models.BookAccess
		if err := rows.Scan(&grant.UserID, &grant.BookID, &grant.UnlockedAt); err != nil {
			return nil, fmt.Errorf("scan access: %w", err)
		}
		grants = append(grants, grant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate access: %w", err)
	}

	return grants, nil
}
