package notes

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dbelyav/notekeep/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func noteRows(t *testing.T) *sqlmock.Rows {
	t.Helper()
	return sqlmock.NewRows([]string{"id", "owner", "accessors", "content", "created_at", "updated_at"})
}

func TestCreate_StartsWithEmptyAccessors(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"created_at", "updated_at"}).
		AddRow(time.Now(), time.Now())
	mock.ExpectQuery(`INSERT\s+INTO\s+notes`).
		WithArgs(sqlmock.AnyArg(), "owner-1", "hello").
		WillReturnRows(rows)

	got, err := repo.Create(context.Background(), "owner-1", "hello")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID == "" || got.Owner != "owner-1" || got.Content != "hello" {
		t.Fatalf("unexpected note: %+v", got)
	}
	if len(got.Accessors) != 0 {
		t.Fatalf("new note must have no accessors, got %v", got.Accessors)
	}
}

func TestFindAllVisible_ScopesByVisibilityPredicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := noteRows(t).
		AddRow("n-1", "caller", []byte(`[]`), "mine", time.Now(), time.Now()).
		AddRow("n-2", "someone-else", []byte(`["caller"]`), "shared with me", time.Now(), time.Now())
	mock.ExpectQuery(`SELECT .+ FROM notes WHERE \(owner = \$1 OR accessors \? \$1\)`).
		WithArgs("caller").
		WillReturnRows(rows)

	got, err := repo.FindAllVisible(context.Background(), "caller")
	if err != nil {
		t.Fatalf("FindAllVisible error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(got))
	}
	if len(got[1].Accessors) != 1 || got[1].Accessors[0] != "caller" {
		t.Fatalf("accessors not decoded: %+v", got[1])
	}
}

func TestFindVisible_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM notes WHERE id = \$2`).
		WithArgs("caller", "n-404").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindVisible(context.Background(), "caller", "n-404")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestGetOwned_MissesForNonOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM notes WHERE id = \$1 AND owner = \$2`).
		WithArgs("n-1", "not-the-owner").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetOwned(context.Background(), "not-the-owner", "n-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestUpdateContent_OwnerScoped(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := noteRows(t).
		AddRow("n-1", "owner-1", []byte(`["u-2"]`), "new text", time.Now(), time.Now())
	mock.ExpectQuery(`UPDATE notes SET content = \$3`).
		WithArgs("n-1", "owner-1", "new text").
		WillReturnRows(rows)

	got, err := repo.UpdateContent(context.Background(), "owner-1", "n-1", "new text")
	if err != nil {
		t.Fatalf("UpdateContent error: %v", err)
	}
	if got.Content != "new text" {
		t.Fatalf("unexpected note: %+v", got)
	}
}

func TestDelete_ReportsZeroOnMiss(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM notes WHERE id = \$1 AND owner = \$2`).
		WithArgs("n-1", "not-the-owner").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.Delete(context.Background(), "not-the-owner", "n-1")
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows deleted, got %d", n)
	}
}

func TestReplaceAccessors_SendsJSONArray(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := noteRows(t).
		AddRow("n-1", "owner-1", []byte(`["u-2","u-3"]`), "text", time.Now(), time.Now())
	mock.ExpectQuery(`UPDATE notes SET accessors = \$3::jsonb`).
		WithArgs("n-1", "owner-1", `["u-2","u-3"]`).
		WillReturnRows(rows)

	got, err := repo.ReplaceAccessors(context.Background(), "owner-1", "n-1", []string{"u-2", "u-3"})
	if err != nil {
		t.Fatalf("ReplaceAccessors error: %v", err)
	}
	if len(got.Accessors) != 2 {
		t.Fatalf("unexpected accessors: %v", got.Accessors)
	}
}

func TestReplaceAccessors_NilMeansRevokeAll(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := noteRows(t).
		AddRow("n-1", "owner-1", []byte(`[]`), "text", time.Now(), time.Now())
	mock.ExpectQuery(`UPDATE notes SET accessors = \$3::jsonb`).
		WithArgs("n-1", "owner-1", `[]`).
		WillReturnRows(rows)

	got, err := repo.ReplaceAccessors(context.Background(), "owner-1", "n-1", nil)
	if err != nil {
		t.Fatalf("ReplaceAccessors error: %v", err)
	}
	if len(got.Accessors) != 0 {
		t.Fatalf("expected empty accessors, got %v", got.Accessors)
	}
}

func TestSearch_AddsPatternFilter(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := noteRows(t).
		AddRow("n-1", "caller", []byte(`[]`), "groceries: milk", time.Now(), time.Now())
	mock.ExpectQuery(`SELECT .+ FROM notes WHERE \(owner = \$1 OR accessors \? \$1\) AND content ~\* \$2`).
		WithArgs("caller", "milk").
		WillReturnRows(rows)

	got, err := repo.Search(context.Background(), "caller", "milk")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "n-1" {
		t.Fatalf("unexpected result: %+v", got)
	}
}
