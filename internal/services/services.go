// package services defines the collaborator contracts the core consumes
// and the HTTP client implementing them against the WatchCall backend.
package services

import (
	"context"

	"github.com/watchcall/watchcall/internal/models"
)

// Catalog searches the external movie catalog and fetches detail records.
type Catalog interface {
	// Search looks up ranked candidates for a query. Blank queries must not
	// reach this method; callers clear results locally instead.
	Search(ctx context.Context, session models.Session, query string) ([]models.SearchResult, error)

	// Details retrieves the full metadata record for a catalog id.
	Details(ctx context.Context, session models.Session, movieID string) (*models.MovieDetails, error)
}

// ListBackend owns the durable movie lists for the session's user.
type ListBackend interface {
	// ListAll returns the user's lists, default lists first.
	ListAll(ctx context.Context, session models.Session) ([]models.MovieList, error)

	// CreateList appends a new non-default list.
	CreateList(ctx context.Context, session models.Session, name string) (*models.MovieList, error)

	// DeleteList removes a list. The backend performs the authoritative
	// default-list check regardless of any client-side fast-fail.
	DeleteList(ctx context.Context, session models.Session, listID string) error

	// GetList returns one list with its entries.
	GetList(ctx context.Context, session models.Session, listID string) (*models.MovieList, error)

	// AddEntry adds a movie to a list. Duplicate (list, movie) pairs fail
	// with shared.ErrDuplicateEntry and leave the list unchanged.
	AddEntry(ctx context.Context, session models.Session, listID string, ref models.MovieRef) (*models.ListEntry, error)

	// RemoveEntry removes a movie from a list by catalog id.
	RemoveEntry(ctx context.Context, session models.Session, listID, movieID string) error
}

// AvailabilityBackend serves the externally maintained availability rows.
type AvailabilityBackend interface {
	Availability(ctx context.Context, session models.Session, movieID string) ([]models.Availability, error)
}

// PreferenceBackend serves the fixed service catalog and the user's
// subscribed subset. SetServices replaces the subset wholesale.
type PreferenceBackend interface {
	Services(ctx context.Context, session models.Session) ([]string, error)
	UserServices(ctx context.Context, session models.Session) ([]string, error)
	SetUserServices(ctx context.Context, session models.Session, services []string) error
}

// Auth issues and revokes sessions.
type Auth interface {
	Register(ctx context.Context, username, email, password string) (models.Session, error)
	Login(ctx context.Context, username, password string) (models.Session, error)
	Whoami(ctx context.Context, session models.Session) (*models.User, error)
}

// Backend is the full collaborator surface the TUI and CLI depend on.
type Backend interface {
	Catalog
	ListBackend
	AvailabilityBackend
	PreferenceBackend
	Auth
}
