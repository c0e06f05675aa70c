package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/watchcall/watchcall/internal/models"
	"github.com/watchcall/watchcall/internal/shared"
	mocks "github.com/watchcall/watchcall/internal/testing"
)

func testModel(backend *mocks.MockBackend) *Model {
	session := models.Session{Token: "token", User: models.User{ID: "u1", Username: "alice"}}
	return NewModel(context.Background(), backend, session)
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModelSearchFlow(t *testing.T) {
	backend := &mocks.MockBackend{
		SearchFunc: func(ctx context.Context, session models.Session, query string) ([]models.SearchResult, error) {
			return []models.SearchResult{{MovieID: "tt0372784", Title: "Batman Begins"}}, nil
		},
	}
	m := testModel(backend)

	t.Run("keystroke schedules a debounce tick", func(t *testing.T) {
		_, cmd := m.Update(keyPress('b'))
		if cmd == nil {
			t.Fatal("expected a command scheduling the debounce tick")
		}
	})

	t.Run("stale token does not fire a search", func(t *testing.T) {
		_, cmd := m.Update(debounceTickMsg{token: -1})
		if cmd != nil {
			t.Error("expected stale token to be ignored")
		}
	})

	t.Run("current token fires the search", func(t *testing.T) {
		token, emitNow := m.gate.Arm("batman")
		if emitNow {
			t.Fatal("non-blank input must wait for the quiet interval")
		}
		_, cmd := m.Update(debounceTickMsg{token: token})
		if cmd == nil {
			t.Fatal("expected a search command")
		}

		msg := cmd()
		_, _ = m.Update(msg)
		if len(m.resultsList.Items()) != 1 {
			t.Errorf("expected 1 result item, got %d", len(m.resultsList.Items()))
		}
	})

	t.Run("stale response is discarded", func(t *testing.T) {
		id1, _ := m.searches.Issue("bat")
		id2, _ := m.searches.Issue("batman")

		_, _ = m.Update(searchResultsMsg{id: id1, results: []models.SearchResult{{MovieID: "old"}, {MovieID: "old2"}}})
		if len(m.resultsList.Items()) == 2 {
			t.Error("expected stale results to be dropped")
		}

		_, _ = m.Update(searchResultsMsg{id: id2, results: []models.SearchResult{{MovieID: "tt0372784", Title: "Batman Begins"}}})
		if len(m.resultsList.Items()) != 1 {
			t.Errorf("expected current results applied, got %d items", len(m.resultsList.Items()))
		}
	})

	t.Run("failed response keeps previous results", func(t *testing.T) {
		id, _ := m.searches.Issue("batman returns")
		_, _ = m.Update(searchResultsMsg{id: id, err: shared.ErrTransient})
		if len(m.resultsList.Items()) != 1 {
			t.Errorf("expected previous results kept, got %d items", len(m.resultsList.Items()))
		}
		if m.status == "" {
			t.Error("expected a status message for the soft failure")
		}
	})

	t.Run("escape clears input and results", func(t *testing.T) {
		_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if m.input.Value() != "" {
			t.Errorf("expected empty input, got %q", m.input.Value())
		}
		if len(m.resultsList.Items()) != 0 {
			t.Errorf("expected no results, got %d items", len(m.resultsList.Items()))
		}
	})
}

func TestModelMoviePanel(t *testing.T) {
	backend := &mocks.MockBackend{}
	m := testModel(backend)

	t.Run("selecting a result opens the panel with three fetches", func(t *testing.T) {
		m.input.SetValue("batman")
		m.lastQuery = "batman"
		id, _ := m.searches.Issue("batman")
		m.searches.Apply(id, []models.SearchResult{{MovieID: "tt0372784", Title: "Batman Begins"}}, nil)
		m.setResults(m.searches.Results())

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if m.view != MovieView {
			t.Fatalf("expected MovieView, got %v", m.view)
		}
		if cmd == nil {
			t.Fatal("expected fetch commands")
		}
		if m.panel == nil || !m.panel.Loading() {
			t.Fatal("expected loading panel")
		}
		if m.searches.Open() {
			t.Error("expected search session closed after select")
		}
		if m.input.Value() != "" || m.lastQuery != "" {
			t.Errorf("expected query text cleared after select, got %q", m.input.Value())
		}
	})

	t.Run("stale generation cannot populate the panel", func(t *testing.T) {
		oldGen := m.selection.ShowMovie("tt0372784")
		m.panel = NewMoviePanel("tt0372784")

		m.selection.ShowMovie("tt0468569")
		m.panel = NewMoviePanel("tt0468569")

		_, _ = m.Update(movieDetailsMsg{gen: oldGen, details: &models.MovieDetails{MovieID: "tt0372784"}})
		if m.panel.Details != nil {
			t.Error("expected stale details to be dropped")
		}
	})

	t.Run("current generation populates the panel", func(t *testing.T) {
		gen := m.selection.ShowMovie("tt0468569")
		m.panel = NewMoviePanel("tt0468569")

		_, _ = m.Update(movieDetailsMsg{gen: gen, details: &models.MovieDetails{MovieID: "tt0468569", Title: "The Dark Knight"}})
		_, _ = m.Update(movieAvailabilityMsg{gen: gen, rows: []models.Availability{{Service: "Netflix"}}})
		_, _ = m.Update(moviePrefsMsg{gen: gen, prefs: []string{"Netflix"}})

		if m.panel.Loading() {
			t.Error("expected panel loaded")
		}
		if m.panel.Details == nil || m.panel.Details.Title != "The Dark Knight" {
			t.Errorf("unexpected details: %+v", m.panel.Details)
		}
	})

	t.Run("escape returns to search and invalidates the panel", func(t *testing.T) {
		gen := m.selection.ShowMovie("tt0468569")
		m.view = MovieView
		_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if m.view != SearchView {
			t.Errorf("expected SearchView, got %v", m.view)
		}
		if m.selection.Current(gen) {
			t.Error("expected generation invalidated")
		}
	})
}

func TestModelServices(t *testing.T) {
	var saved []string
	backend := &mocks.MockBackend{
		SetUserServicesFunc: func(ctx context.Context, session models.Session, services []string) error {
			saved = services
			return nil
		},
	}
	m := testModel(backend)

	_, _ = m.Update(servicesLoadedMsg{
		services: []string{"Netflix", "Sky", "WOW"},
		prefs:    []string{"Sky"},
	})
	m.view = ServicesView

	t.Run("toggle replaces the subset wholesale", func(t *testing.T) {
		m.servicesList.Select(0) // Netflix
		_, cmd := m.Update(keyPress(' '))
		if cmd == nil {
			t.Fatal("expected a save command")
		}

		msg := cmd()
		_, _ = m.Update(msg)

		if len(saved) != 2 {
			t.Fatalf("expected wholesale replacement with 2 services, got %v", saved)
		}
		if len(m.prefs) != 2 {
			t.Errorf("expected prefs updated, got %v", m.prefs)
		}
	})

	t.Run("failed save keeps the server as source of truth", func(t *testing.T) {
		failing := testModel(&mocks.MockBackend{
			SetUserServicesFunc: func(ctx context.Context, session models.Session, services []string) error {
				return shared.ErrTransient
			},
		})
		_, _ = failing.Update(servicesLoadedMsg{
			services: []string{"Netflix", "Sky"},
			prefs:    []string{"Sky"},
		})
		failing.view = ServicesView

		failing.servicesList.Select(0)
		_, cmd := failing.Update(keyPress(' '))
		if cmd == nil {
			t.Fatal("expected a save command")
		}

		_, reload := failing.Update(cmd())
		if reload == nil {
			t.Fatal("expected a reload command after a failed save")
		}
		if failing.status == "" {
			t.Error("expected a status message for the failed save")
		}
		if len(failing.prefs) != 1 || failing.prefs[0] != "Sky" {
			t.Errorf("expected prefs unchanged after failed save, got %v", failing.prefs)
		}
	})

	t.Run("toggle off removes the service", func(t *testing.T) {
		next := toggleService(m.prefs, "Sky")
		for _, s := range next {
			if s == "Sky" {
				t.Errorf("expected Sky removed, got %v", next)
			}
		}
	})
}

func TestModelLists(t *testing.T) {
	defaultList := models.MovieList{ID: "l1", Name: "Watchlist", IsDefault: true}
	backend := &mocks.MockBackend{
		ListAllFunc: func(ctx context.Context, session models.Session) ([]models.MovieList, error) {
			return []models.MovieList{defaultList, {ID: "l2", Name: "Horror"}}, nil
		},
	}
	m := testModel(backend)

	cmd := m.loadLists()
	_, _ = m.Update(cmd())

	t.Run("lists are loaded into the view", func(t *testing.T) {
		if len(m.listsList.Items()) != 2 {
			t.Fatalf("expected 2 list items, got %d", len(m.listsList.Items()))
		}
	})

	t.Run("deleting the default list fails fast", func(t *testing.T) {
		m.view = ListsView
		m.listsList.Select(0)
		_, cmd := m.Update(keyPress('d'))
		if cmd == nil {
			t.Fatal("expected a delete command")
		}

		msg := cmd()
		deleted, ok := msg.(listDeletedMsg)
		if !ok {
			t.Fatalf("unexpected message: %T", msg)
		}
		if deleted.err == nil {
			t.Fatal("expected protected-list error")
		}
		_, _ = m.Update(msg)
		if len(m.listsList.Items()) != 2 {
			t.Errorf("expected lists unchanged, got %d items", len(m.listsList.Items()))
		}
	})

	t.Run("opening a list fetches it", func(t *testing.T) {
		m.view = ListsView
		m.listsList.Select(1)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if m.view != ListDetailView {
			t.Fatalf("expected ListDetailView, got %v", m.view)
		}
		if cmd == nil {
			t.Fatal("expected fetch command")
		}
	})
}
