package notes

import (
	"context"

	"github.com/dbelyav/notekeep/internal/server/models"
)

// Repository owns note CRUD and query composition. Read queries are scoped by
// the visibility predicate (owner or accessor); write queries are scoped to
// the owner only. Methods taking a userID never trust it from a request body;
// callers derive it from the verified token.
type Repository interface {
	Create(ctx context.Context, owner, content string) (*models.Note, error)
	FindAllVisible(ctx context.Context, userID string) ([]*models.Note, error)
	FindVisible(ctx context.Context, userID, noteID string) (*models.Note, error)
	GetOwned(ctx context.Context, owner, noteID string) (*models.Note, error)
	UpdateContent(ctx context.Context, owner, noteID, content string) (*models.Note, error)

	// Delete removes an owned note and reports the number of rows removed.
	// Deleting a non-owned or missing note reports zero, not an error.
	Delete(ctx context.Context, owner, noteID string) (int64, error)

	// ReplaceAccessors atomically swaps the accessor set of an owned note.
	ReplaceAccessors(ctx context.Context, owner, noteID string, accessors []string) (*models.Note, error)

	// Search returns visible notes whose content matches the given
	// case-insensitive pattern. The pattern must already be escaped.
	Search(ctx context.Context, userID, pattern string) ([]*models.Note, error)
}
