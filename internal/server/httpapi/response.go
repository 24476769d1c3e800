package httpapi

import (
	"net/http"
	"time"

	"github.com/dbelyav/notekeep/internal/server/models"
	"github.com/go-chi/render"
)

type errResponse struct {
	Error string `json:"error"`
}

func respondError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, errResponse{Error: msg})
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// toUserResponse drops everything but the public identity fields; the
// password hash never leaves the service.
func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username}
}

type noteResponse struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Accessors []string  `json:"accessors"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toNoteResponse(n *models.Note) noteResponse {
	accessors := n.Accessors
	if accessors == nil {
		accessors = []string{}
	}
	return noteResponse{
		ID:        n.ID,
		Owner:     n.Owner,
		Accessors: accessors,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toNoteResponses(notes []*models.Note) []noteResponse {
	out := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}
	return out
}
