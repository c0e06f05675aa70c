package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/watchcall/watchcall/internal/shared"
)

// Error envelope codes. Clients match on these instead of parsing messages.
const (
	codeValidation     = "validation"
	codeDuplicateEntry = "duplicate_entry"
	codeProtectedList  = "protected_list"
	codeNotFound       = "not_found"
	codeUnauthorized   = "unauthorized"
	codeInternal       = "internal"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, map[string]string{
		"error": msg,
		"code":  code,
	})
}

// writeDomainError maps the shared sentinel errors onto the envelope. Errors
// outside the taxonomy become a generic 500 without leaking internals.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error(), codeValidation)
	case errors.Is(err, shared.ErrDuplicateEntry):
		writeError(w, http.StatusConflict, err.Error(), codeDuplicateEntry)
	case errors.Is(err, shared.ErrProtectedList):
		writeError(w, http.StatusForbidden, err.Error(), codeProtectedList)
	case errors.Is(err, shared.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error(), codeNotFound)
	case errors.Is(err, shared.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", codeUnauthorized)
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error", codeInternal)
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return shared.ErrValidation
	}
	return nil
}
