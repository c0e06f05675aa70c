package search

import (
	"strings"

	"github.com/watchcall/watchcall/internal/models"
)

// Session tracks catalog search requests and applies responses in the
// order their requests were issued. A response is discarded whenever a
// newer request exists, so the displayed results can never belong to a
// superseded query (last-request-wins).
type Session struct {
	issued  uint64
	results []models.SearchResult
	open    bool
}

// Issue registers intent to search for query and returns the request id to
// attach to the lookup. ok is false for blank queries: those are never
// sent, the current results are cleared immediately, and any in-flight
// response is suppressed because the id space has moved on.
func (s *Session) Issue(query string) (id uint64, ok bool) {
	s.issued++
	if strings.TrimSpace(query) == "" {
		s.results = nil
		s.open = false
		return s.issued, false
	}
	return s.issued, true
}

// Apply publishes a response for request id. Stale responses (any id older
// than the latest issued request) are discarded. A failed response is soft:
// the previous result set stays visible and the view state is unchanged.
func (s *Session) Apply(id uint64, results []models.SearchResult, err error) bool {
	if id != s.issued {
		return false
	}
	if err != nil {
		return false
	}
	s.results = results
	s.open = true
	return true
}

// Select closes the results view and clears the result set, returning the
// chosen result so the coordinator can take over.
func (s *Session) Select(index int) (models.SearchResult, bool) {
	if index < 0 || index >= len(s.results) {
		return models.SearchResult{}, false
	}
	chosen := s.results[index]
	s.results = nil
	s.open = false
	s.issued++ // suppress any lookup still in flight
	return chosen, true
}

// Clear resets the session, suppressing in-flight responses.
func (s *Session) Clear() {
	s.issued++
	s.results = nil
	s.open = false
}

// Results returns the currently published result set.
func (s *Session) Results() []models.SearchResult {
	return s.results
}

// Open reports whether the results view should be showing.
func (s *Session) Open() bool {
	return s.open
}
