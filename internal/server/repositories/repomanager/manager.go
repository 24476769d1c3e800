package repomanager

import (
	"context"
	"database/sql"

	"github.com/dbelyav/notekeep/internal/dbx"
	"github.com/dbelyav/notekeep/internal/server/repositories/notes"
	"github.com/dbelyav/notekeep/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, letting services run
// the same repository code over a plain connection or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Notes(db dbx.DBTX) notes.Repository
}
