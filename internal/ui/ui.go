package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/watchcall/watchcall/internal/lists"
	"github.com/watchcall/watchcall/internal/models"
	"github.com/watchcall/watchcall/internal/search"
	"github.com/watchcall/watchcall/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SearchView ViewState = iota
	ListsView
	ListDetailView
	MovieView
	ServicesView
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	backend services.Backend
	session models.Session
	store   *lists.Store

	view   ViewState
	width  int
	height int

	input       textinput.Model
	lastQuery   string
	gate        *search.Gate
	searches    *search.Session
	resultsList list.Model

	listsList  list.Model
	detailList list.Model
	detail     *models.MovieList

	selection *Selection
	panel     *MoviePanel

	servicesList list.Model
	services     []string
	prefs        []string

	status string
	err    error
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, backend services.Backend, session models.Session) *Model {
	input := textinput.New()
	input.Placeholder = "Search movies..."
	input.Focus()

	newList := func(title string) list.Model {
		l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
		l.Title = title
		l.SetShowHelp(false)
		return l
	}

	return &Model{
		ctx:          ctx,
		backend:      backend,
		session:      session,
		store:        lists.NewStore(backend, session),
		view:         SearchView,
		input:        input,
		gate:         search.NewGate(search.DefaultQuietInterval),
		searches:     &search.Session{},
		resultsList:  newList("Results"),
		listsList:    newList("Your Lists"),
		detailList:   newList("Movies"),
		servicesList: newList("Streaming Services"),
		selection:    NewSelection(),
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init loads the user's lists and service catalog in the background.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadLists(), m.loadServices())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.resultsList, &m.listsList, &m.detailList, &m.servicesList} {
			l.SetSize(msg.Width-4, msg.Height-10)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case debounceTickMsg:
		query, ok := m.gate.Fire(msg.token)
		if !ok {
			return m, nil
		}
		id, send := m.searches.Issue(query)
		if !send {
			m.setResults(nil)
			return m, nil
		}
		return m, m.runSearch(id, query)

	case searchResultsMsg:
		if m.searches.Apply(msg.id, msg.results, msg.err) {
			m.setResults(m.searches.Results())
			m.status = ""
		} else if msg.err != nil {
			m.status = styles.warn.Render("search failed, keeping previous results")
		}
		return m, nil

	case listsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.setLists(msg.lists)
		return m, nil

	case listFetchedMsg:
		if !m.selection.Current(msg.gen) {
			return m, nil
		}
		if msg.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("failed to open list: %v", msg.err))
			m.selection.Clear()
			m.view = ListsView
			return m, nil
		}
		m.setDetail(msg.list)
		return m, nil

	case movieDetailsMsg:
		if m.selection.Current(msg.gen) && m.panel != nil {
			m.panel.ApplyDetails(msg.details, msg.err)
		}
		return m, nil

	case movieAvailabilityMsg:
		if m.selection.Current(msg.gen) && m.panel != nil {
			m.panel.ApplyAvailability(msg.rows, msg.err)
		}
		return m, nil

	case moviePrefsMsg:
		if m.selection.Current(msg.gen) && m.panel != nil {
			m.panel.ApplyPrefs(msg.prefs, msg.err)
		}
		return m, nil

	case servicesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.services = msg.services
		m.prefs = msg.prefs
		m.setServices()
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("failed to save services: %v", msg.err))
			return m, m.loadServices()
		}
		m.prefs = msg.prefs
		m.setServices()
		m.status = styles.ok.Render("services saved")
		return m, nil

	case movieAddedMsg:
		if msg.err != nil {
			m.status = styles.warn.Render(fmt.Sprintf("could not add: %v", msg.err))
			return m, nil
		}
		m.status = styles.ok.Render(fmt.Sprintf("added %q to watchlist", msg.title))
		return m, m.loadLists()

	case movieRemovedMsg:
		if msg.err != nil {
			m.status = styles.warn.Render(fmt.Sprintf("could not remove: %v", msg.err))
			return m, nil
		}
		if m.selection.Current(msg.gen) {
			m.setDetail(msg.list)
		}
		m.setLists(m.store.Lists())
		return m, nil

	case listDeletedMsg:
		if msg.err != nil {
			m.status = styles.warn.Render(fmt.Sprintf("could not delete: %v", msg.err))
			return m, nil
		}
		m.status = styles.ok.Render("list deleted")
		m.setLists(m.store.Lists())
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress ctrl+c to quit", m.err))
	}

	switch m.view {
	case SearchView:
		return m.renderSearch()
	case ListsView:
		return m.renderLists()
	case ListDetailView:
		return m.renderListDetail()
	case MovieView:
		return m.renderMovie()
	case ServicesView:
		return m.renderServices()
	default:
		return ""
	}
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}
	if msg.String() == "tab" {
		return m.nextView()
	}

	switch m.view {
	case SearchView:
		return m.handleSearchKeys(msg)
	case ListsView:
		return m.handleListsKeys(msg)
	case ListDetailView:
		return m.handleListDetailKeys(msg)
	case MovieView:
		return m.handleMovieKeys(msg)
	case ServicesView:
		return m.handleServicesKeys(msg)
	}
	return m, nil
}

// nextView cycles Search → Lists → Services. Leaving search cancels the
// pending debounce so no emission can arrive after the view unmounts.
func (m *Model) nextView() (tea.Model, tea.Cmd) {
	switch m.view {
	case SearchView:
		m.gate.Cancel()
		m.view = ListsView
	case ListsView, ListDetailView:
		m.selection.Clear()
		m.view = ServicesView
	default:
		m.view = SearchView
		m.input.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.SetValue("")
		m.lastQuery = ""
		m.gate.Cancel()
		m.searches.Clear()
		m.setResults(nil)
		return m, nil

	case "up", "down":
		var cmd tea.Cmd
		m.resultsList, cmd = m.resultsList.Update(msg)
		return m, cmd

	case "enter":
		chosen, ok := m.searches.Select(m.resultsList.Index())
		if !ok {
			return m, nil
		}
		m.input.SetValue("")
		m.lastQuery = ""
		m.setResults(nil)
		return m, m.openMovie(chosen.MovieID)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if value := m.input.Value(); value != m.lastQuery {
		m.lastQuery = value
		token, emitNow := m.gate.Arm(value)
		if emitNow {
			m.searches.Issue(value)
			m.setResults(nil)
			return m, cmd
		}
		tick := tea.Tick(m.gate.Interval(), func(time.Time) tea.Msg {
			return debounceTickMsg{token: token}
		})
		return m, tea.Batch(cmd, tick)
	}

	return m, cmd
}

func (m *Model) handleListsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if item, ok := m.listsList.SelectedItem().(movieListItem); ok {
			gen := m.selection.ShowList(item.list.ID)
			m.view = ListDetailView
			return m, m.fetchList(gen, item.list.ID)
		}
		return m, nil

	case "d":
		if item, ok := m.listsList.SelectedItem().(movieListItem); ok {
			return m, m.deleteList(item.list.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.listsList, cmd = m.listsList.Update(msg)
	return m, cmd
}

func (m *Model) handleListDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.selection.Clear()
		m.detail = nil
		m.view = ListsView
		return m, nil

	case "enter":
		if item, ok := m.detailList.SelectedItem().(entryItem); ok {
			return m, m.openMovie(item.entry.MovieID)
		}
		return m, nil

	case "x":
		item, ok := m.detailList.SelectedItem().(entryItem)
		if !ok || m.detail == nil {
			return m, nil
		}
		gen := m.selection.ShowList(m.detail.ID)
		return m, m.removeMovie(gen, m.detail.ID, item.entry.MovieID)
	}

	var cmd tea.Cmd
	m.detailList, cmd = m.detailList.Update(msg)
	return m, cmd
}

func (m *Model) handleMovieKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.selection.Clear()
		m.panel = nil
		m.view = SearchView
		m.input.Focus()
		return m, textinput.Blink

	case "a":
		if m.panel == nil || m.panel.Loading() || m.panel.Err() != nil || m.panel.Details == nil {
			return m, nil
		}
		details := m.panel.Details
		ref := models.MovieRef{
			MovieID: details.MovieID,
			Title:   details.Title,
			Poster:  details.Poster,
			Year:    details.Year,
		}
		return m, m.addToDefault(ref)
	}
	return m, nil
}

func (m *Model) handleServicesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		item, ok := m.servicesList.SelectedItem().(serviceItem)
		if !ok {
			return m, nil
		}
		next := toggleService(m.prefs, item.name)
		return m, m.savePrefs(next)
	}

	var cmd tea.Cmd
	m.servicesList, cmd = m.servicesList.Update(msg)
	return m, cmd
}

// openMovie transitions the selection and launches the panel's three
// concurrent fetches. Each result message carries gen and is dropped on
// arrival if the user has moved on.
func (m *Model) openMovie(movieID string) tea.Cmd {
	gen := m.selection.ShowMovie(movieID)
	m.panel = NewMoviePanel(movieID)
	m.view = MovieView
	return tea.Batch(
		m.fetchDetails(gen, movieID),
		m.fetchAvailability(gen, movieID),
		m.fetchPrefs(gen),
	)
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case SearchView:
		m.resultsList, cmd = m.resultsList.Update(msg)
	case ListsView:
		m.listsList, cmd = m.listsList.Update(msg)
	case ListDetailView:
		m.detailList, cmd = m.detailList.Update(msg)
	case ServicesView:
		m.servicesList, cmd = m.servicesList.Update(msg)
	}
	return m, cmd
}

func (m *Model) setResults(results []models.SearchResult) {
	items := make([]list.Item, len(results))
	for i, r := range results {
		items[i] = resultItem{result: r}
	}
	m.resultsList.SetItems(items)
	m.resultsList.ResetSelected()
}

func (m *Model) setLists(all []models.MovieList) {
	items := make([]list.Item, len(all))
	for i, l := range all {
		items[i] = movieListItem{list: l}
	}
	m.listsList.SetItems(items)
}

func (m *Model) setDetail(l *models.MovieList) {
	m.detail = l
	items := make([]list.Item, len(l.Movies))
	for i, e := range l.Movies {
		items[i] = entryItem{entry: e}
	}
	m.detailList.SetItems(items)
	m.detailList.Title = l.Name
}

func (m *Model) setServices() {
	subscribed := make(map[string]bool, len(m.prefs))
	for _, s := range m.prefs {
		subscribed[s] = true
	}
	items := make([]list.Item, len(m.services))
	for i, s := range m.services {
		items[i] = serviceItem{name: s, subscribed: subscribed[s]}
	}
	m.servicesList.SetItems(items)
}

func toggleService(prefs []string, name string) []string {
	next := make([]string, 0, len(prefs)+1)
	found := false
	for _, s := range prefs {
		if s == name {
			found = true
			continue
		}
		next = append(next, s)
	}
	if !found {
		next = append(next, name)
	}
	return next
}

func (m *Model) loadLists() tea.Cmd {
	return func() tea.Msg {
		all, err := m.store.Refresh(m.ctx)
		return listsLoadedMsg{lists: all, err: err}
	}
}

func (m *Model) loadServices() tea.Cmd {
	return func() tea.Msg {
		catalog, err := m.backend.Services(m.ctx, m.session)
		if err != nil {
			return servicesLoadedMsg{err: err}
		}
		prefs, err := m.backend.UserServices(m.ctx, m.session)
		return servicesLoadedMsg{services: catalog, prefs: prefs, err: err}
	}
}

func (m *Model) runSearch(id uint64, query string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.backend.Search(m.ctx, m.session, query)
		return searchResultsMsg{id: id, results: results, err: err}
	}
}

func (m *Model) fetchDetails(gen uint64, movieID string) tea.Cmd {
	return func() tea.Msg {
		details, err := m.backend.Details(m.ctx, m.session, movieID)
		return movieDetailsMsg{gen: gen, details: details, err: err}
	}
}

func (m *Model) fetchAvailability(gen uint64, movieID string) tea.Cmd {
	return func() tea.Msg {
		rows, err := m.backend.Availability(m.ctx, m.session, movieID)
		return movieAvailabilityMsg{gen: gen, rows: rows, err: err}
	}
}

func (m *Model) fetchPrefs(gen uint64) tea.Cmd {
	return func() tea.Msg {
		prefs, err := m.backend.UserServices(m.ctx, m.session)
		return moviePrefsMsg{gen: gen, prefs: prefs, err: err}
	}
}

func (m *Model) fetchList(gen uint64, listID string) tea.Cmd {
	return func() tea.Msg {
		l, err := m.backend.GetList(m.ctx, m.session, listID)
		return listFetchedMsg{gen: gen, list: l, err: err}
	}
}

func (m *Model) addToDefault(ref models.MovieRef) tea.Cmd {
	return func() tea.Msg {
		target := ""
		for _, l := range m.store.Lists() {
			if l.IsDefault {
				target = l.ID
				break
			}
		}
		if target == "" {
			return movieAddedMsg{err: fmt.Errorf("no default list")}
		}
		_, err := m.store.AddMovie(m.ctx, target, ref)
		return movieAddedMsg{title: ref.Title, err: err}
	}
}

func (m *Model) removeMovie(gen uint64, listID, movieID string) tea.Cmd {
	return func() tea.Msg {
		l, err := m.store.RemoveMovie(m.ctx, listID, movieID)
		return movieRemovedMsg{gen: gen, list: l, err: err}
	}
}

func (m *Model) savePrefs(services []string) tea.Cmd {
	return func() tea.Msg {
		err := m.backend.SetUserServices(m.ctx, m.session, services)
		return prefsSavedMsg{prefs: services, err: err}
	}
}

func (m *Model) deleteList(listID string) tea.Cmd {
	return func() tea.Msg {
		err := m.store.Delete(m.ctx, listID)
		return listDeletedMsg{listID: listID, err: err}
	}
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("WatchCall")
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s\n%s\n%s", title, m.input.View(), m.resultsList.View(), m.status, helpView)
}

func (m *Model) renderLists() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.del, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s", m.listsList.View(), m.status, helpView)
}

func (m *Model) renderListDetail() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.remove, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s", m.detailList.View(), m.status, helpView)
}

func (m *Model) renderMovie() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.add, m.keys.back, m.keys.quit})

	if m.panel == nil {
		return helpView
	}
	if m.panel.Err() != nil {
		return styles.err.Render(fmt.Sprintf("Could not load movie: %v", m.panel.Err())) + "\n\n" + helpView
	}
	if m.panel.Loading() {
		return styles.help.Render("Loading...") + "\n\n" + helpView
	}

	d := m.panel.Details
	title := styles.title.Render(fmt.Sprintf("%s (%s)", d.Title, d.Year))
	meta := fmt.Sprintf("%s • %s • %s\nDirector: %s\nIMDb: %s (%s votes)\n\n%s",
		d.Rated, d.Runtime, d.Genre, d.Director, d.Rating, d.Votes, d.Plot)

	watchable := m.panel.Watchable(time.Now())
	var avail string
	if len(watchable) == 0 {
		avail = styles.warn.Render("Not watchable on your services right now")
	} else {
		avail = styles.ok.Render("Watch now on:")
		for _, row := range watchable {
			until := "no end date"
			if row.AvailableUntil != nil {
				until = "until " + row.AvailableUntil.Format("2006-01-02")
			}
			avail += fmt.Sprintf("\n  • %s (%s)", row.Service, until)
		}
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n%s\n%s", title, meta, avail, m.status, helpView)
}

func (m *Model) renderServices() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.toggle, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s", m.servicesList.View(), m.status, helpView)
}
