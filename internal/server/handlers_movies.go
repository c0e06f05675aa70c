package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/watchcall/watchcall/internal/shared"
)

// handleSearch proxies a title search to the catalog.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		s.writeDomainError(w, fmt.Errorf("%w: query is required", shared.ErrValidation))
		return
	}

	results, err := s.catalog.Search(r.Context(), query)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// handleDetails proxies a detail lookup to the catalog.
func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	details, err := s.catalog.Details(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}
