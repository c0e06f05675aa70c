package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/watchcall/watchcall/internal/models"
	"github.com/watchcall/watchcall/internal/shared"
)

type availabilityRequest struct {
	Service        string `json:"service"`
	AvailableFrom  string `json:"available_from"`
	AvailableUntil string `json:"available_until"`
}

// handleAvailability returns every known window for a movie in the server's
// region. An empty array means no known availability, which is a normal
// answer.
func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	rows, err := s.avail.ForMovie(chi.URLParam(r, "movieID"), s.cfg.Server.Region)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// handleUpsertAvailability creates or replaces the window for one service.
// Admin only.
func (s *Server) handleUpsertAvailability(w http.ResponseWriter, r *http.Request) {
	if !currentUser(r).IsAdmin {
		writeError(w, http.StatusForbidden, "admin required", codeUnauthorized)
		return
	}

	var req availabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeDomainError(w, err)
		return
	}

	if !validService(req.Service) {
		s.writeDomainError(w, fmt.Errorf("%w: unknown service %q", shared.ErrValidation, req.Service))
		return
	}

	from, err := parseDate(req.AvailableFrom)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	until, err := parseDate(req.AvailableUntil)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	row := models.Availability{
		MovieID:        chi.URLParam(r, "movieID"),
		Service:        req.Service,
		Region:         s.cfg.Server.Region,
		AvailableFrom:  from,
		AvailableUntil: until,
	}
	if err := s.avail.Upsert(row); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "saved"})
}

// handleDeleteAvailability removes one window row. Admin only.
func (s *Server) handleDeleteAvailability(w http.ResponseWriter, r *http.Request) {
	if !currentUser(r).IsAdmin {
		writeError(w, http.StatusForbidden, "admin required", codeUnauthorized)
		return
	}

	if err := s.avail.Delete(chi.URLParam(r, "movieID"), chi.URLParam(r, "id")); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleServices returns the fixed service catalog.
func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ValidServices)
}

// handleUserServices returns the user's subscribed subset.
func (s *Server) handleUserServices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r).Services)
}

type setServicesRequest struct {
	Services []string `json:"services"`
}

// handleSetUserServices replaces the subscribed subset wholesale. Last write
// wins; no merge is attempted.
func (s *Server) handleSetUserServices(w http.ResponseWriter, r *http.Request) {
	var req setServicesRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeDomainError(w, err)
		return
	}

	for _, name := range req.Services {
		if !validService(name) {
			s.writeDomainError(w, fmt.Errorf("%w: unknown service %q", shared.ErrValidation, name))
			return
		}
	}

	if err := s.users.SetServices(currentUser(r).ID, req.Services); err != nil {
		s.writeDomainError(w, err)
		return
	}

	if req.Services == nil {
		req.Services = []string{}
	}
	writeJSON(w, http.StatusOK, req.Services)
}

// parseDate accepts RFC 3339 timestamps or bare dates; empty means
// unbounded.
func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid date %q", shared.ErrValidation, raw)
}
