// Package notes provides the PostgreSQL-backed note store. Accessor sets are
// stored as JSONB arrays of user ids; the jsonb ? operator implements the
// accessor half of the visibility predicate.
package notes

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
)

// visibleWhere gates reads: the caller owns the note or appears in its
// accessor set. $1 is always the caller id.
const visibleWhere = `(owner = $1 OR accessors ? $1)`

const noteColumns = `id, owner, accessors, content, created_at, updated_at`

// PostgresRepository implements note storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*models.Note, error) {
	var (
		note models.Note
		raw  []byte
	)
	if err := row.Scan(&note.ID, &note.Owner, &raw, &note.Content, &note.CreatedAt, &note.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &note.Accessors); err != nil {
		return nil, fmt.Errorf("decode accessors: %w", err)
	}
	return &note, nil
}

func (r *PostgresRepository) queryNotes(ctx context.Context, query string, args ...any) ([]*models.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, owner, content string) (*models.Note, error) {
	note := &models.Note{
		ID:        uuid.NewString(),
		Owner:     owner,
		Accessors: []string{},
		Content:   content,
	}

	query :=
		`INSERT INTO notes (id, owner, accessors, content)
		 VALUES ($1, $2, '[]', $3)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, note.ID, note.Owner, note.Content).
		Scan(&note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) FindAllVisible(ctx context.Context, userID string) ([]*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE ` + visibleWhere
	return r.queryNotes(ctx, query, userID)
}

func (r *PostgresRepository) FindVisible(ctx context.Context, userID, noteID string) (*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $2 AND ` + visibleWhere

	note, err := scanNote(r.db.QueryRowContext(ctx, query, userID, noteID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return note, nil
}

// GetOwned looks a note up by {id, owner}. A miss does not distinguish
// "missing" from "not yours".
func (r *PostgresRepository) GetOwned(ctx context.Context, owner, noteID string) (*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1 AND owner = $2`

	note, err := scanNote(r.db.QueryRowContext(ctx, query, noteID, owner))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return note, nil
}

func (r *PostgresRepository) UpdateContent(ctx context.Context, owner, noteID, content string) (*models.Note, error) {
	query :=
		`UPDATE notes SET content = $3, updated_at = now()
		 WHERE id = $1 AND owner = $2
		 RETURNING ` + noteColumns

	note, err := scanNote(r.db.QueryRowContext(ctx, query, noteID, owner, content))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return note, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, owner, noteID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1 AND owner = $2`, noteID, owner)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) ReplaceAccessors(ctx context.Context, owner, noteID string, accessors []string) (*models.Note, error) {
	if accessors == nil {
		accessors = []string{}
	}
	encoded, err := json.Marshal(accessors)
	if err != nil {
		return nil, fmt.Errorf("marshal accessors: %w", err)
	}

	query :=
		`UPDATE notes SET accessors = $3::jsonb, updated_at = now()
		 WHERE id = $1 AND owner = $2
		 RETURNING ` + noteColumns

	note, err := scanNote(r.db.QueryRowContext(ctx, query, noteID, owner, string(encoded)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return note, nil
}

func (r *PostgresRepository) Search(ctx context.Context, userID, pattern string) ([]*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE ` + visibleWhere + ` AND content ~* $2`
	return r.queryNotes(ctx, query, userID, pattern)
}
