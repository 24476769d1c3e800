package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dbelyav/notekeep/internal/common"
	"github.com/dbelyav/notekeep/internal/dbx"
	"github.com/dbelyav/notekeep/internal/server/auth"
	"github.com/dbelyav/notekeep/internal/server/config"
	"github.com/dbelyav/notekeep/internal/server/models"
	notesrepo "github.com/dbelyav/notekeep/internal/server/repositories/notes"
	usersrepo "github.com/dbelyav/notekeep/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

func newUserService(t *testing.T, rm *fakeRepoManager1) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
	}
	return NewUserService(nil, rm, cfg)
}

type fakeUsersRepo1 struct {
	createdUsername string
	createdHash     string
	createErr       error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo1) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdUsername = username
	f.createdHash = passwordHash
	return &models.User{ID: "u-new", Username: username, PasswordHash: passwordHash}, nil
}

func (f *fakeUsersRepo1) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo1) FilterExisting(ctx context.Context, ids []string) ([]string, error) {
	return ids, nil
}

type fakeRepoManager1 struct {
	u *fakeUsersRepo1
}

func (m *fakeRepoManager1) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager1) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager1) Notes(db dbx.DBTX) notesrepo.Repository       { return nil }

// --- tests ---

func TestSignup_HashesPassword(t *testing.T) {
	repo := &fakeUsersRepo1{}
	s := newUserService(t, &fakeRepoManager1{u: repo})

	user, err := s.Signup(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("Signup error: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if repo.createdHash == "s3cret" {
		t.Fatal("stored hash must not equal the plaintext password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.createdHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash must verify against the original password: %v", err)
	}
}

func TestSignup_UsernameTaken(t *testing.T) {
	repo := &fakeUsersRepo1{createErr: common.ErrUsernameTaken}
	s := newUserService(t, &fakeRepoManager1{u: repo})

	_, err := s.Signup(context.Background(), "alice", "s3cret")
	if !errors.Is(err, common.ErrUsernameTaken) {
		t.Fatalf("expected common.ErrUsernameTaken, got %v", err)
	}
}

func TestSignup_StorageFailure(t *testing.T) {
	repo := &fakeUsersRepo1{createErr: errors.New("db down")}
	s := newUserService(t, &fakeRepoManager1{u: repo})

	_, err := s.Signup(context.Background(), "alice", "s3cret")
	if err == nil || errors.Is(err, common.ErrUsernameTaken) {
		t.Fatalf("expected a generic storage error, got %v", err)
	}
}

func TestLogin_Success_TokenSubjectIsUserID(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	repo := &fakeUsersRepo1{getOut: &models.User{ID: "u-1", Username: "alice", PasswordHash: string(hash)}}
	s := newUserService(t, &fakeRepoManager1{u: repo})

	token, err := s.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	sub, err := auth.GetUserIDFromToken(token, []byte("k"))
	if err != nil {
		t.Fatalf("token must verify: %v", err)
	}
	if sub != "u-1" {
		t.Fatalf("token subject: got %q want %q", sub, "u-1")
	}
}

func TestLogin_UnknownUserAndWrongPassword_AreIndistinguishable(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}

	unknown := &fakeUsersRepo1{getErr: common.ErrorNotFound}
	s1 := newUserService(t, &fakeRepoManager1{u: unknown})
	_, errUnknown := s1.Login(context.Background(), "nobody", "whatever")

	wrongPass := &fakeUsersRepo1{getOut: &models.User{ID: "u-1", Username: "alice", PasswordHash: string(hash)}}
	s2 := newUserService(t, &fakeRepoManager1{u: wrongPass})
	_, errWrong := s2.Login(context.Background(), "alice", "wrong")

	if !errors.Is(errUnknown, common.ErrBadCredentials) {
		t.Fatalf("unknown user: expected ErrBadCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrong, common.ErrBadCredentials) {
		t.Fatalf("wrong password: expected ErrBadCredentials, got %v", errWrong)
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Fatalf("both failures must look identical: %q vs %q", errUnknown, errWrong)
	}
}

func TestValidate_GoodCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	repo := &fakeUsersRepo1{getOut: &models.User{ID: "u-1", Username: "alice", PasswordHash: string(hash)}}
	s := newUserService(t, &fakeRepoManager1{u: repo})

	user, err := s.Validate(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if user == nil || user.ID != "u-1" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestValidate_BadCredentials_ReturnsNilNil(t *testing.T) {
	repo := &fakeUsersRepo1{getErr: common.ErrorNotFound}
	s := newUserService(t, &fakeRepoManager1{u: repo})

	user, err := s.Validate(context.Background(), "nobody", "whatever")
	if err != nil {
		t.Fatalf("Validate must not error on bad credentials: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user, got %+v", user)
	}
}
