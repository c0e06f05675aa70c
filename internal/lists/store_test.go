package lists

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/watchcall/watchcall/internal/models"
	"github.com/watchcall/watchcall/internal/shared"
	mocks "github.com/watchcall/watchcall/internal/testing"
)

func testSession() models.Session {
	return models.Session{Token: "token", User: models.User{ID: "u1", Username: "alice"}}
}

func TestStoreRefresh(t *testing.T) {
	backend := &mocks.MockBackend{
		ListAllFunc: func(ctx context.Context, session models.Session) ([]models.MovieList, error) {
			return []models.MovieList{
				{ID: "l1", Name: "Watchlist", IsDefault: true},
				{ID: "l2", Name: "Horror"},
			}, nil
		},
	}

	store := NewStore(backend, testSession())

	t.Run("populates snapshot", func(t *testing.T) {
		lists, err := store.Refresh(context.Background())
		if err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}
		if len(lists) != 2 || !lists[0].IsDefault {
			t.Errorf("unexpected lists: %+v", lists)
		}
	})

	t.Run("snapshot copy is isolated", func(t *testing.T) {
		lists := store.Lists()
		lists[0].Name = "mutated"
		if got, _ := store.Get("l1"); got.Name != "Watchlist" {
			t.Errorf("snapshot leaked mutation: %s", got.Name)
		}
	})

	t.Run("refresh failure keeps snapshot", func(t *testing.T) {
		backend.ListAllFunc = func(ctx context.Context, session models.Session) ([]models.MovieList, error) {
			return nil, shared.ErrTransient
		}
		if _, err := store.Refresh(context.Background()); !errors.Is(err, shared.ErrTransient) {
			t.Fatalf("expected ErrTransient, got %v", err)
		}
		if len(store.Lists()) != 2 {
			t.Error("expected snapshot to survive failed refresh")
		}
	})
}

func TestStoreCreateDelete(t *testing.T) {
	backend := &mocks.MockBackend{
		ListAllFunc: func(ctx context.Context, session models.Session) ([]models.MovieList, error) {
			return []models.MovieList{{ID: "l1", Name: "Watchlist", IsDefault: true}}, nil
		},
		CreateListFunc: func(ctx context.Context, session models.Session, name string) (*models.MovieList, error) {
			return &models.MovieList{ID: "l2", Name: name}, nil
		},
	}

	store := NewStore(backend, testSession())
	if _, err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	t.Run("create appends to snapshot", func(t *testing.T) {
		list, err := store.Create(context.Background(), "Horror")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if list.ID != "l2" {
			t.Errorf("unexpected list: %+v", list)
		}
		if len(store.Lists()) != 2 {
			t.Errorf("expected 2 lists in snapshot, got %d", len(store.Lists()))
		}
	})

	t.Run("default delete fails fast without backend call", func(t *testing.T) {
		called := false
		backend.DeleteListFunc = func(ctx context.Context, session models.Session, listID string) error {
			called = true
			return nil
		}

		err := store.Delete(context.Background(), "l1")
		if !errors.Is(err, shared.ErrProtectedList) {
			t.Fatalf("expected ErrProtectedList, got %v", err)
		}
		if called {
			t.Error("expected no backend call for known default list")
		}
	})

	t.Run("unknown list defers to backend check", func(t *testing.T) {
		backend.DeleteListFunc = func(ctx context.Context, session models.Session, listID string) error {
			return shared.ErrProtectedList
		}
		err := store.Delete(context.Background(), "l9")
		if !errors.Is(err, shared.ErrProtectedList) {
			t.Errorf("expected backend ErrProtectedList, got %v", err)
		}
	})

	t.Run("delete removes from snapshot", func(t *testing.T) {
		backend.DeleteListFunc = nil
		if err := store.Delete(context.Background(), "l2"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, ok := store.Get("l2"); ok {
			t.Error("expected l2 gone from snapshot")
		}
	})
}

func TestStoreMovies(t *testing.T) {
	serverList := &models.MovieList{
		ID:   "l1",
		Name: "Watchlist",
		Movies: []models.ListEntry{
			{ID: "e1", MovieID: "tt0372784", Title: "Batman Begins"},
		},
	}

	backend := &mocks.MockBackend{
		ListAllFunc: func(ctx context.Context, session models.Session) ([]models.MovieList, error) {
			return []models.MovieList{{ID: "l1", Name: "Watchlist"}}, nil
		},
		GetListFunc: func(ctx context.Context, session models.Session, listID string) (*models.MovieList, error) {
			copied := *serverList
			return &copied, nil
		},
	}

	store := NewStore(backend, testSession())
	if _, err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	t.Run("add re-fetches the list", func(t *testing.T) {
		list, err := store.AddMovie(context.Background(), "l1", models.MovieRef{MovieID: "tt0372784", Title: "Batman Begins"})
		if err != nil {
			t.Fatalf("AddMovie failed: %v", err)
		}
		if len(list.Movies) != 1 {
			t.Errorf("expected re-fetched entries, got %d", len(list.Movies))
		}
		if got, _ := store.Get("l1"); len(got.Movies) != 1 {
			t.Errorf("expected snapshot updated, got %d entries", len(got.Movies))
		}
	})

	t.Run("duplicate add leaves snapshot untouched", func(t *testing.T) {
		backend.AddEntryFunc = func(ctx context.Context, session models.Session, listID string, ref models.MovieRef) (*models.ListEntry, error) {
			return nil, fmt.Errorf("%w: movie already in list", shared.ErrDuplicateEntry)
		}

		_, err := store.AddMovie(context.Background(), "l1", models.MovieRef{MovieID: "tt0372784", Title: "Batman Begins"})
		if !errors.Is(err, shared.ErrDuplicateEntry) {
			t.Fatalf("expected ErrDuplicateEntry, got %v", err)
		}
		if got, _ := store.Get("l1"); len(got.Movies) != 1 {
			t.Errorf("expected snapshot unchanged, got %d entries", len(got.Movies))
		}
	})

	t.Run("remove re-fetches instead of splicing", func(t *testing.T) {
		removed := false
		backend.RemoveEntryFunc = func(ctx context.Context, session models.Session, listID, movieID string) error {
			removed = true
			serverList.Movies = []models.ListEntry{}
			return nil
		}

		list, err := store.RemoveMovie(context.Background(), "l1", "tt0372784")
		if err != nil {
			t.Fatalf("RemoveMovie failed: %v", err)
		}
		if !removed {
			t.Error("expected backend remove call")
		}
		if len(list.Movies) != 0 {
			t.Errorf("expected re-fetched empty list, got %d entries", len(list.Movies))
		}
	})

	t.Run("remove of absent movie propagates not found", func(t *testing.T) {
		backend.RemoveEntryFunc = func(ctx context.Context, session models.Session, listID, movieID string) error {
			return fmt.Errorf("%w: movie not in list", shared.ErrNotFound)
		}
		_, err := store.RemoveMovie(context.Background(), "l1", "tt9999999")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
