package ui

import (
	"github.com/watchcall/watchcall/internal/models"
)

// Messages produced by the model's async commands. Anything tied to a
// selection carries the generation it was issued under; search answers carry
// the request id the session handed out.

type debounceTickMsg struct {
	token int
}

type searchResultsMsg struct {
	id      uint64
	results []models.SearchResult
	err     error
}

type listsLoadedMsg struct {
	lists []models.MovieList
	err   error
}

type listFetchedMsg struct {
	gen  uint64
	list *models.MovieList
	err  error
}

type movieDetailsMsg struct {
	gen     uint64
	details *models.MovieDetails
	err     error
}

type movieAvailabilityMsg struct {
	gen  uint64
	rows []models.Availability
	err  error
}

type moviePrefsMsg struct {
	gen   uint64
	prefs []string
	err   error
}

type servicesLoadedMsg struct {
	services []string
	prefs    []string
	err      error
}

type prefsSavedMsg struct {
	prefs []string
	err   error
}

type movieAddedMsg struct {
	title string
	err   error
}

type movieRemovedMsg struct {
	gen  uint64
	list *models.MovieList
	err  error
}

type listDeletedMsg struct {
	listID string
	err    error
}
