package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/watchcall/watchcall/internal/models"
)

type createListRequest struct {
	Name string `json:"name"`
}

// handleListLists returns the user's lists, default first.
func (s *Server) handleListLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.lists.ListAll(currentUser(r).ID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	var req createListRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeDomainError(w, err)
		return
	}

	list, err := s.lists.Create(currentUser(r).ID, req.Name, false)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	list, err := s.lists.Get(currentUser(r).ID, chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleDeleteList deletes a non-default list. The default-list check lives
// in the repository; clients may pre-check but this answer is authoritative.
func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	if err := s.lists.Delete(currentUser(r).ID, chi.URLParam(r, "id")); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleAddMovie(w http.ResponseWriter, r *http.Request) {
	var ref models.MovieRef
	if err := decodeJSON(r, &ref); err != nil {
		s.writeDomainError(w, err)
		return
	}

	entry, err := s.lists.AddEntry(currentUser(r).ID, chi.URLParam(r, "id"), ref)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleRemoveMovie(w http.ResponseWriter, r *http.Request) {
	err := s.lists.RemoveEntry(currentUser(r).ID, chi.URLParam(r, "id"), chi.URLParam(r, "movieID"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
