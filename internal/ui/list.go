package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/watchcall/watchcall/internal/models"
)

var (
	_ list.Item = resultItem{}
	_ list.Item = movieListItem{}
	_ list.Item = entryItem{}
	_ list.Item = serviceItem{}
)

// resultItem wraps [models.SearchResult] to implement [list.Item].
type resultItem struct {
	result models.SearchResult
}

func (i resultItem) FilterValue() string { return i.result.Title }
func (i resultItem) Title() string       { return i.result.Title }
func (i resultItem) Description() string {
	if i.result.Year != "" {
		return i.result.Year
	}
	return i.result.MovieID
}

// movieListItem wraps [models.MovieList] to implement [list.Item].
type movieListItem struct {
	list models.MovieList
}

func (i movieListItem) FilterValue() string { return i.list.Name }
func (i movieListItem) Title() string {
	if i.list.IsDefault {
		return i.list.Name + " ★"
	}
	return i.list.Name
}
func (i movieListItem) Description() string {
	return fmt.Sprintf("%d movies", len(i.list.Movies))
}

// entryItem wraps [models.ListEntry] to implement [list.Item].
type entryItem struct {
	entry models.ListEntry
}

func (i entryItem) FilterValue() string { return i.entry.Title }
func (i entryItem) Title() string       { return i.entry.Title }
func (i entryItem) Description() string {
	if i.entry.Year != "" {
		return fmt.Sprintf("%s • %s", i.entry.Year, i.entry.MovieID)
	}
	return i.entry.MovieID
}

// serviceItem wraps a streaming service name and its subscription state.
type serviceItem struct {
	name       string
	subscribed bool
}

func (i serviceItem) FilterValue() string { return i.name }
func (i serviceItem) Title() string {
	if i.subscribed {
		return "[x] " + i.name
	}
	return "[ ] " + i.name
}
func (i serviceItem) Description() string {
	if i.subscribed {
		return "subscribed"
	}
	return ""
}
