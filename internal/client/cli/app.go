// Package cli implements the interactive notectl shell: a small REPL over
// the HTTP API with commands for accounts, notes, sharing and search.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dbelyav/notekeep/internal/client/api"
	"github.com/dbelyav/notekeep/internal/client/config"
)

// apiClient is the slice of the HTTP client the commands consume. Tests
// provide a fake; the real api.Client satisfies it.
type apiClient interface {
	Signup(ctx context.Context, username, password string) (*api.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	SetToken(token string)
	CreateNote(ctx context.Context, content string) (*api.Note, error)
	ListNotes(ctx context.Context) ([]*api.Note, error)
	GetNote(ctx context.Context, id string) (*api.Note, error)
	UpdateNote(ctx context.Context, id, content string) (*api.Note, error)
	DeleteNote(ctx context.Context, id string) (int64, error)
	ShareNote(ctx context.Context, id string, accessors []string) (*api.Note, error)
	Search(ctx context.Context, query string) ([]*api.Note, error)
}

type App struct {
	config   *config.Config
	api      apiClient
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerEndpointAddr, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return "not logged in"
	}
	return a.userName
}

func (a *App) Run(ctx context.Context) {
	fmt.Println("Welcome to notectl (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
