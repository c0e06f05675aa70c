// Package lists keeps a client-side snapshot of the user's movie lists and
// funnels every mutation through the backend before updating it.
package lists

import (
	"context"
	"sync"

	"github.com/watchcall/watchcall/internal/models"
	"github.com/watchcall/watchcall/internal/services"
	"github.com/watchcall/watchcall/internal/shared"
)

// Store caches the user's lists between backend round trips. The backend
// stays authoritative: mutations go through it first and the snapshot is
// only updated from its answers, never by local guessing.
type Store struct {
	backend services.ListBackend
	session models.Session

	mu    sync.RWMutex
	lists []models.MovieList
}

// NewStore creates a [Store] bound to one session.
func NewStore(backend services.ListBackend, session models.Session) *Store {
	return &Store{backend: backend, session: session}
}

// Refresh replaces the snapshot with the backend's current lists.
func (s *Store) Refresh(ctx context.Context) ([]models.MovieList, error) {
	lists, err := s.backend.ListAll(ctx, s.session)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.lists = lists
	s.mu.Unlock()

	return s.Lists(), nil
}

// Lists returns a copy of the snapshot, default lists first.
func (s *Store) Lists() []models.MovieList {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.MovieList, len(s.lists))
	copy(out, s.lists)
	return out
}

// Get returns one list from the snapshot.
func (s *Store) Get(listID string) (models.MovieList, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, list := range s.lists {
		if list.ID == listID {
			return list, true
		}
	}
	return models.MovieList{}, false
}

// Create adds a new non-default list and appends it to the snapshot.
func (s *Store) Create(ctx context.Context, name string) (*models.MovieList, error) {
	list, err := s.backend.CreateList(ctx, s.session, name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.lists = append(s.lists, *list)
	s.mu.Unlock()

	return list, nil
}

// Delete removes a list. Known default lists fail fast with
// [shared.ErrProtectedList] without a round trip; everything else defers to
// the backend's authoritative check.
func (s *Store) Delete(ctx context.Context, listID string) error {
	if list, ok := s.Get(listID); ok && list.IsDefault {
		return shared.ErrProtectedList
	}

	if err := s.backend.DeleteList(ctx, s.session, listID); err != nil {
		return err
	}

	s.mu.Lock()
	for i, list := range s.lists {
		if list.ID == listID {
			s.lists = append(s.lists[:i], s.lists[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	return nil
}

// AddMovie adds a movie to a list and re-fetches that list so the snapshot
// reflects backend ordering. A duplicate fails with
// [shared.ErrDuplicateEntry] and leaves the snapshot untouched.
func (s *Store) AddMovie(ctx context.Context, listID string, ref models.MovieRef) (*models.MovieList, error) {
	if _, err := s.backend.AddEntry(ctx, s.session, listID, ref); err != nil {
		return nil, err
	}
	return s.refetch(ctx, listID)
}

// RemoveMovie removes a movie from a list, then re-fetches the list rather
// than splicing the entry out locally.
func (s *Store) RemoveMovie(ctx context.Context, listID, movieID string) (*models.MovieList, error) {
	if err := s.backend.RemoveEntry(ctx, s.session, listID, movieID); err != nil {
		return nil, err
	}
	return s.refetch(ctx, listID)
}

func (s *Store) refetch(ctx context.Context, listID string) (*models.MovieList, error) {
	list, err := s.backend.GetList(ctx, s.session, listID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.lists {
		if s.lists[i].ID == list.ID {
			s.lists[i] = *list
			break
		}
	}
	s.mu.Unlock()

	return list, nil
}
