package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"taskdeck/internal/auth/models"
	"taskdeck/pkg/platform/sentinel"
)

// pgUniqueViolation is the Postgres error code for unique constraint failures.
const pgUniqueViolation = "23505"

// PostgresStore persists users in PostgreSQL. Pure I/O; no business rules.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed user store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, user models.User) error {
	query := `
		INSERT INTO users (id, handle, display_name, secret_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Handle,
		user.DisplayName,
		user.SecretHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("handle %q already taken: %w", user.Handle, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByHandle(ctx context.Context, handle string) (models.User, error) {
	query := `
		SELECT id, handle, display_name, secret_hash, created_at, updated_at
		FROM users
		WHERE handle = $1
	`
	return scanUser(s.db.QueryRowContext(ctx, query, handle), "handle "+handle)
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (models.User, error) {
	query := `
		SELECT id, handle, display_name, secret_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return scanUser(s.db.QueryRowContext(ctx, query, id), "id "+id)
}

func (s *PostgresStore) ExistsByHandle(ctx context.Context, handle string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE handle = $1)`, handle,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists by handle: %w", err)
	}
	return exists, nil
}

func scanUser(row *sql.Row, desc string) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Handle, &u.DisplayName, &u.SecretHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("user with %s: %w", desc, sentinel.ErrNotFound)
		}
		return models.User{}, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}
