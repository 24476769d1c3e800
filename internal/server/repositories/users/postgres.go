// Package users provides the PostgreSQL-backed user directory.
package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dbelyav/notekeep/internal/common"
	"github.com/dbelyav/notekeep/internal/dbx"
	"github.com/dbelyav/notekeep/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresRepository implements user storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user. Username uniqueness is enforced by the table
// constraint, not a pre-check, so two concurrent signups with the same
// username cannot race past each other; the loser gets ErrUsernameTaken.
func (r *PostgresRepository) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
	}

	query :=
		`INSERT INTO users (id, username, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Username, user.PasswordHash).Scan(&user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, common.ErrUsernameTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query :=
		`SELECT id, username, password_hash, created_at FROM users
		 WHERE username = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// FilterExisting returns the candidate ids that resolve to existing users.
// Unknown and malformed ids simply fall out of the result. The candidate
// list travels as a JSONB array so ids never touch SQL syntax.
func (r *PostgresRepository) FilterExisting(ctx context.Context, ids []string) ([]string, error) {
	existing := []string{}

	if len(ids) == 0 {
		return existing, nil
	}

	candidates, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("marshal candidates: %w", err)
	}

	query :=
		`SELECT id FROM users
		 WHERE id IN (SELECT jsonb_array_elements_text($1::jsonb))
		 `

	rows, err := r.db.QueryContext(ctx, query, string(candidates))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		existing = append(existing, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return existing, nil
}
