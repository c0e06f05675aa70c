package ui

import (
	"time"

	"github.com/watchcall/watchcall/internal/availability"
	"github.com/watchcall/watchcall/internal/models"
)

// SelectionKind tags what the detail pane is showing. Exactly one variant is
// active at a time; there are no independent booleans to fall out of sync.
type SelectionKind int

const (
	// Idle means no detail pane is open.
	Idle SelectionKind = iota
	// ShowingMovie means the movie panel is open for Selection.MovieID.
	ShowingMovie
	// ShowingList means a list's entries are open for Selection.ListID.
	ShowingList
)

// Selection is the detail-pane state machine. Every transition bumps a
// generation counter; async results carry the generation they were issued
// under and are dropped when it no longer matches, so a stale fetch can
// never populate a pane the user has already left.
type Selection struct {
	kind    SelectionKind
	movieID string
	listID  string
	gen     uint64
}

// NewSelection starts in [Idle].
func NewSelection() *Selection {
	return &Selection{}
}

// ShowMovie transitions to [ShowingMovie] and returns the new generation.
func (s *Selection) ShowMovie(movieID string) uint64 {
	s.gen++
	s.kind = ShowingMovie
	s.movieID = movieID
	s.listID = ""
	return s.gen
}

// ShowList transitions to [ShowingList] and returns the new generation.
func (s *Selection) ShowList(listID string) uint64 {
	s.gen++
	s.kind = ShowingList
	s.listID = listID
	s.movieID = ""
	return s.gen
}

// Clear transitions back to [Idle]. Bumping the generation here is what
// invalidates any fetch still in flight.
func (s *Selection) Clear() {
	s.gen++
	s.kind = Idle
	s.movieID = ""
	s.listID = ""
}

// Current reports whether gen is still the live generation.
func (s *Selection) Current(gen uint64) bool {
	return gen == s.gen
}

// Kind returns the active variant.
func (s *Selection) Kind() SelectionKind { return s.kind }

// MovieID returns the selected movie id, empty unless [ShowingMovie].
func (s *Selection) MovieID() string { return s.movieID }

// ListID returns the selected list id, empty unless [ShowingList].
func (s *Selection) ListID() string { return s.listID }

// MoviePanel accumulates the three concurrent fetches behind the movie
// detail pane: metadata, availability rows, and the user's subscribed
// services. The pane renders once all three have answered; any failure
// collapses into one error state for the whole pane.
type MoviePanel struct {
	MovieID string
	Details *models.MovieDetails
	Rows    []models.Availability
	Prefs   []string

	pending int
	err     error
}

// NewMoviePanel starts a panel waiting on its three fetches.
func NewMoviePanel(movieID string) *MoviePanel {
	return &MoviePanel{MovieID: movieID, pending: 3}
}

// ApplyDetails records the metadata fetch result.
func (p *MoviePanel) ApplyDetails(details *models.MovieDetails, err error) {
	p.pending--
	if err != nil {
		p.fail(err)
		return
	}
	p.Details = details
}

// ApplyAvailability records the availability fetch result.
func (p *MoviePanel) ApplyAvailability(rows []models.Availability, err error) {
	p.pending--
	if err != nil {
		p.fail(err)
		return
	}
	p.Rows = rows
}

// ApplyPrefs records the subscribed-services fetch result.
func (p *MoviePanel) ApplyPrefs(prefs []string, err error) {
	p.pending--
	if err != nil {
		p.fail(err)
		return
	}
	p.Prefs = prefs
}

// Loading reports whether any fetch is still outstanding.
func (p *MoviePanel) Loading() bool { return p.pending > 0 }

// Err returns the panel's merged error state. The first failure wins.
func (p *MoviePanel) Err() error { return p.err }

func (p *MoviePanel) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// Watchable correlates availability against the user's subscriptions. An
// empty answer on a loaded panel means "nowhere to watch right now", which
// the pane renders as a normal state, not an error.
func (p *MoviePanel) Watchable(now time.Time) []models.Availability {
	return availability.Resolve(p.Rows, p.Prefs, now)
}
