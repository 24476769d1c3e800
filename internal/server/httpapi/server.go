// Package httpapi exposes the note service over HTTP. It owns routing,
// request decoding and validation, bearer-token authentication, and the
// mapping of service errors onto status codes. All domain decisions stay in
// the service layer.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dbelyav/notekeep/internal/logging"
	"github.com/dbelyav/notekeep/internal/server/models"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator/v10"
)

// UserService is the slice of the credential service the transport consumes.
type UserService interface {
	Signup(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// NoteService is the slice of the note service the transport consumes. The
// userID on every call comes from the verified token, never from the body.
type NoteService interface {
	Create(ctx context.Context, userID, content string) (*models.Note, error)
	FindAll(ctx context.Context, userID string) ([]*models.Note, error)
	FindOne(ctx context.Context, userID, noteID string) (*models.Note, error)
	Update(ctx context.Context, userID, noteID, content string) (*models.Note, error)
	Remove(ctx context.Context, userID, noteID string) (int64, error)
	Share(ctx context.Context, ownerID, noteID string, candidateIDs []string) (*models.Note, error)
	Search(ctx context.Context, userID, query string) ([]*models.Note, error)
}

type Server struct {
	address   string
	logger    logging.Logger
	users     UserService
	notes     NoteService
	jwtSecret []byte
	validate  *validator.Validate
}

func NewServer(address string, l logging.Logger, us UserService, ns NoteService, secretKey string) *Server {
	return &Server{
		address:   address,
		logger:    l.With("module", "httpapi"),
		users:     us,
		notes:     ns,
		jwtSecret: []byte(secretKey),
		validate:  validator.New(),
	}
}

// Router assembles the public route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/auth/signup", s.handleSignup)
	r.Post("/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.Post("/notes", s.handleCreateNote)
		r.Get("/notes", s.handleListNotes)
		r.Get("/notes/{id}", s.handleGetNote)
		r.Put("/notes/{id}", s.handleUpdateNote)
		r.Delete("/notes/{id}", s.handleDeleteNote)
		r.Post("/notes/{id}/share", s.handleShareNote)
		r.Get("/search", s.handleSearch)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
