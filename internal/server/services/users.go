// Package services implements the business rules of the note service on top
// of the repository layer: the credential lifecycle, note visibility and
// ownership, sharing, and search.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dbelyav/notekeep/internal/common"
	"github.com/dbelyav/notekeep/internal/server/auth"
	"github.com/dbelyav/notekeep/internal/server/config"
	"github.com/dbelyav/notekeep/internal/server/models"
	"github.com/dbelyav/notekeep/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the fixed hashing work factor. Matching a cost of 10 keeps a
// login in the tens of milliseconds; it is deliberately not tunable at
// runtime.
const bcryptCost = 10

type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Signup creates an account with a bcrypt-hashed password. A taken username
// surfaces as common.ErrUsernameTaken, raised by the store's uniqueness
// constraint rather than a check-then-insert sequence. Neither the plaintext
// password nor the hash is ever returned to the caller.
func (s *UserService) Signup(ctx context.Context, username, password string) (*models.User, error) {

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.Create(ctx, username, string(hash))
	if err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues a signed token whose subject is the
// user's id. An unknown username and a wrong password both return
// common.ErrBadCredentials so callers cannot enumerate usernames.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrBadCredentials
		}
		return "", common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", common.ErrBadCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// Validate is the stateless pass/fail predicate behind the authentication
// gate. It returns (nil, nil) on bad credentials rather than an error, since
// it backs a guard and not a user-facing endpoint.
func (s *UserService) Validate(ctx context.Context, username, password string) (*models.User, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil
	}

	return user, nil
}
