package httpapi

import (
	"errors"
	"net/http"

	"github.com/dbelyav/notekeep/internal/common"
	"github.com/go-chi/chi"
	"github.com/go-chi/render"
)

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type noteRequest struct {
	Content string `json:"content" validate:"required"`
}

type shareRequest struct {
	Accessors []string `json:"accessors" validate:"required"`
}

// decodeValid decodes the body into req and runs struct validation. On
// failure it writes the 400 response and reports false.
func (s *Server) decodeValid(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := render.DecodeJSON(r.Body, req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request")
		return false
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request")
		return false
	}
	return true
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	user, err := s.users.Signup(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			respondError(w, r, http.StatusBadRequest, "username is taken")
			return
		}
		s.logger.Error(r.Context(), "signup failed", "error", err.Error())
		respondError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	s.logger.Info(r.Context(), "user signed up", "username", user.Username)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toUserResponse(user))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrBadCredentials) {
			respondError(w, r, http.StatusUnauthorized, "bad credentials")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err.Error())
		respondError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	render.JSON(w, r, map[string]string{"token": token})
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	note, err := s.notes.Create(r.Context(), callerID(r.Context()), req.Content)
	if err != nil {
		s.logger.Error(r.Context(), "note creation failed", "error", err.Error())
		respondError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toNoteResponse(note))
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.notes.FindAll(r.Context(), callerID(r.Context()))
	if err != nil {
		s.logger.Error(r.Context(), "note listing failed", "error", err.Error())
		respondError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	render.JSON(w, r, toNoteResponses(notes))
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	note, err := s.notes.FindOne(r.Context(), callerID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondError(w, r, http.StatusNotFound, "not found")
			return
		}
		s.logger.Error(r.Context(), "note lookup failed", "error", err.Error())
		respondError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	render.JSON(w, r, toNoteResponse(note))
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	note, err := s.notes.Update(r.Context(), callerID(r.Context()), chi.URLParam(r, "id"), req.Content)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondError(w, r, http.StatusNotFound, "not found")
			return
		}
		s.logger.Error(r.Context(), "note update failed", "error", err.Error())
		respondError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	render.JSON(w, r, toNoteResponse(note))
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.notes.Remove(r.Context(), callerID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.logger.Error(r.Context(), "note deletion failed", "error", err.Error())
		respondError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	render.JSON(w, r, map[string]int64{"deletedCount": deleted})
}

func (s *Server) handleShareNote(w http.ResponseWriter, r *http.Request) {
	var req shareRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	note, err := s.notes.Share(r.Context(), callerID(r.Context()), chi.URLParam(r, "id"), req.Accessors)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondError(w, r, http.StatusNotFound, "not found")
			return
		}
		s.logger.Error(r.Context(), "note sharing failed", "error", err.Error())
		respondError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	render.JSON(w, r, toNoteResponse(note))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	notes, err := s.notes.Search(r.Context(), callerID(r.Context()), r.URL.Query().Get("q"))
	if err != nil {
		s.logger.Error(r.Context(), "note search failed", "error", err.Error())
		respondError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	render.JSON(w, r, toNoteResponses(notes))
}
