// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow around the watchlist:
//  1. [SearchView] : Type-ahead catalog search with a debounced input
//  2. [ListsView] : Browse the user's movie lists
//  3. [ListDetailView] : Entries of one list
//  4. [MovieView] : Metadata plus where-to-watch correlation for one movie
//  5. [ServicesView] : Toggle subscribed streaming services
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Keystrokes arm the debounce gate and schedule a [tea.Tick]; only the token from
// the latest arm fires a search. Responses for searches and for the movie panel's
// three concurrent fetches carry the id or generation they were issued under and
// are dropped at apply time when the state has moved on.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc) with contextual help
// displayed via charmbracelet/bubbles/help; tab cycles between the top-level views.
package ui
