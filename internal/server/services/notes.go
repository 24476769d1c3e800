package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dbelyav/notekeep/internal/common"
	"github.com/dbelyav/notekeep/internal/dbx"
	"github.com/dbelyav/notekeep/internal/patternx"
	"github.com/dbelyav/notekeep/internal/server/models"
	"github.com/dbelyav/notekeep/internal/server/repositories/repomanager"
)

// NoteService enforces note visibility and ownership. The userID argument on
// every method is the caller identity resolved from the verified token;
// repositories bake it into each query so a note outside the caller's
// visibility behaves exactly like a note that does not exist.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

func (s *NoteService) Create(ctx context.Context, userID, content string) (*models.Note, error) {

	repo := s.repomanager.Notes(s.db)

	note, err := repo.Create(ctx, userID, content)
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}

	return note, nil
}

func (s *NoteService) FindAll(ctx context.Context, userID string) ([]*models.Note, error) {

	repo := s.repomanager.Notes(s.db)

	result, err := repo.FindAllVisible(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}

	return result, nil
}

func (s *NoteService) FindOne(ctx context.Context, userID, noteID string) (*models.Note, error) {

	repo := s.repomanager.Notes(s.db)

	note, err := repo.FindVisible(ctx, userID, noteID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error finding note: %w", err)
	}

	return note, nil
}

// Update rewrites a note's content. The predicate is stricter than for reads:
// only the owner may write, so an accessor updating a note it can read still
// gets ErrorNotFound.
func (s *NoteService) Update(ctx context.Context, userID, noteID, content string) (*models.Note, error) {

	repo := s.repomanager.Notes(s.db)

	note, err := repo.UpdateContent(ctx, userID, noteID, content)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating note: %w", err)
	}

	return note, nil
}

// Remove deletes an owned note and returns the number of rows removed.
// A miss (missing note or non-owner caller) reports zero, never an error.
func (s *NoteService) Remove(ctx context.Context, userID, noteID string) (int64, error) {

	repo := s.repomanager.Notes(s.db)

	deleted, err := repo.Delete(ctx, userID, noteID)
	if err != nil {
		return 0, fmt.Errorf("error deleting note: %w", err)
	}

	return deleted, nil
}

// Share replaces a note's accessor set with the candidate ids that resolve to
// existing users. The owner lookup, the purge and the replacement run inside
// one transaction. A miss on the {id, owner} lookup returns ErrorNotFound
// without revealing whether the note exists. An empty or fully-invalid
// candidate list legally empties the set, revoking all sharing. Surviving ids
// keep the directory's order, not the candidate order.
func (s *NoteService) Share(ctx context.Context, ownerID, noteID string, candidateIDs []string) (*models.Note, error) {

	var updated *models.Note

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		notesRepo := s.repomanager.Notes(tx)

		if _, err := notesRepo.GetOwned(ctx, ownerID, noteID); err != nil {
			return err
		}

		accessors, err := s.repomanager.Users(tx).FilterExisting(ctx, candidateIDs)
		if err != nil {
			return fmt.Errorf("error resolving accessors: %w", err)
		}

		updated, err = notesRepo.ReplaceAccessors(ctx, ownerID, noteID, accessors)
		return err
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error sharing note: %w", err)
	}

	return updated, nil
}

// Search returns visible notes whose content contains the query, case
// insensitively. The query is arbitrary caller text and is escaped before it
// is compiled into a pattern, so punctuation matches literally.
func (s *NoteService) Search(ctx context.Context, userID, query string) ([]*models.Note, error) {

	repo := s.repomanager.Notes(s.db)

	result, err := repo.Search(ctx, userID, patternx.Escape(query))
	if err != nil {
		return nil, fmt.Errorf("error searching notes: %w", err)
	}

	return result, nil
}
