package users

import (
	"context"

	"github.com/dbelyav/notekeep/internal/server/models"
)

// Repository is the user directory: identity records plus the id-validity
// check used during sharing.
type Repository interface {
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// FilterExisting resolves candidate user ids to the subset that exists.
	// Result order follows the store, not the candidate list.
	FilterExisting(ctx context.Context, ids []string) ([]string, error)
}
