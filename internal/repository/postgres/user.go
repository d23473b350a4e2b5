package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"folio/internal/domain"
	"folio/internal/domain/models"
	"folio/internal/domain/repositories"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Insert creates an account row
func (r *PostgresUserRepository) Insert(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, email, name, phone, is_blocked, is_staff, is_superuser, date_joined)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.Users)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Phone,
		user.IsBlocked,
		user.IsStaff,
		user.IsSuperuser,
		user.DateJoined,
	)
	if err != nil {
		if isPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("user %s already exists", user.ID),
				ResourceType: "user",
				ResourceID:   user.ID,
			}
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID retrieves an account by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, email, name, phone, is_blocked, is_staff, is_superuser, date_joined
		FROM %s
		WHERE id = $1
	`, r.tables.Users)

	var user models.User
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Phone,
		&user.IsBlocked,
		&user.IsStaff,
		&user.IsSuperuser,
		&user.DateJoined,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// List retrieves accounts ordered by join date, newest first. A non-empty
// search filters by case-insensitive substring on name, email or phone.
func (r *PostgresUserRepository) List(ctx context.Context, search string) ([]models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, email, name, phone, is_blocked, is_staff, is_superuser, date_joined
		FROM %s
	`, r.tables.Users)

	args := []interface{}{}
	if search != "" {
		query += " WHERE name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1"
		args = append(args, "%"+search+"%")
	}
	query += " ORDER BY date_joined DESC, id"

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Name,
			&user.Phone,
			&user.IsBlocked,
			&user.IsStaff,
			&user.IsSuperuser,
			&user.DateJoined,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// SetBlocked updates the account-level block flag
func (r *PostgresUserRepository) SetBlocked(ctx context.Context, id string, blocked bool) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET is_blocked = $1
		WHERE id = $2
	`, r.tables.Users)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, blocked, id)
	if err != nil {
		return fmt.Errorf("set blocked: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
