package models

import (
	"strings"
	"time"
)

// MovieList is a named, ordered collection of list entries owned by a user.
//
// Every user has at least one default list. Default lists can never be
// deleted and never stop being default.
type MovieList struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	IsDefault bool        `json:"is_default"`
	CreatedAt time.Time   `json:"created_at"`
	Movies    []ListEntry `json:"movies"`
}

// ListEntry is a movie reference inside a list, with display fields
// denormalized at add-time.
type ListEntry struct {
	ID      string    `json:"id"`
	MovieID string    `json:"movie_id"` // stable catalog key (IMDb-style id)
	Title   string    `json:"title"`
	Poster  string    `json:"poster,omitempty"`
	Year    string    `json:"year,omitempty"`
	AddedAt time.Time `json:"added_at"`
}

// MovieRef carries the fields captured when adding a search result or
// detail view to a list.
type MovieRef struct {
	MovieID string `json:"movieId"`
	Title   string `json:"title"`
	Poster  string `json:"poster,omitempty"`
	Year    string `json:"year,omitempty"`
}

// Validate checks the ref has the two required fields.
func (r MovieRef) Validate() bool {
	return strings.TrimSpace(r.MovieID) != "" && strings.TrimSpace(r.Title) != ""
}

// Availability is a (service, region, from, until) window asserting a movie
// is streamable on that service during the interval. Absent bounds are
// unbounded on that side.
type Availability struct {
	ID             string     `json:"id"`
	MovieID        string     `json:"movie_id"`
	Service        string     `json:"service"`
	Region         string     `json:"region"`
	AvailableFrom  *time.Time `json:"available_from"`
	AvailableUntil *time.Time `json:"available_until"`
}

// SearchResult is an ephemeral, externally-sourced candidate. Never persisted.
type SearchResult struct {
	MovieID string `json:"imdbID"`
	Title   string `json:"Title"`
	Year    string `json:"Year"`
	Poster  string `json:"Poster"`
	Type    string `json:"Type"`
}

// Ref converts a search result into the payload for addMovie.
func (s SearchResult) Ref() MovieRef {
	poster := s.Poster
	if poster == "N/A" {
		poster = ""
	}
	return MovieRef{MovieID: s.MovieID, Title: s.Title, Poster: poster, Year: s.Year}
}

// Rating is a single third-party rating on a detail record.
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// MovieDetails is the full catalog metadata record for one movie.
type MovieDetails struct {
	MovieID  string   `json:"imdbID"`
	Title    string   `json:"Title"`
	Year     string   `json:"Year"`
	Rated    string   `json:"Rated"`
	Released string   `json:"Released"`
	Runtime  string   `json:"Runtime"`
	Genre    string   `json:"Genre"`
	Director string   `json:"Director"`
	Writer   string   `json:"Writer"`
	Actors   string   `json:"Actors"`
	Plot     string   `json:"Plot"`
	Poster   string   `json:"Poster"`
	Ratings  []Rating `json:"Ratings"`
	Rating   string   `json:"imdbRating"`
	Votes    string   `json:"imdbVotes"`
}

// User is an account on the WatchCall backend.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	IsAdmin      bool      `json:"is_admin"`
	Services     []string  `json:"streaming_services"`
	CreatedAt    time.Time `json:"created_at"`
	PasswordHash string    `json:"-"`
}

// Session is the ambient identity threaded into every collaborator call.
type Session struct {
	Token string
	User  User
}

// Valid reports whether the session carries a usable token.
func (s Session) Valid() bool {
	return s.Token != ""
}
