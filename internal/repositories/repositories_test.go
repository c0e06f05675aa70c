package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/watchcall/watchcall/internal/models"
	"github.com/watchcall/watchcall/internal/shared"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *sql.DB, username string) *models.User {
	t.Helper()

	repo := NewUserRepository(db)
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	if err := repo.Create(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	t.Run("creates and retrieves user", func(t *testing.T) {
		user := &models.User{
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: "hash",
			Services:     []string{"Netflix"},
		}
		if err := repo.Create(user); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if user.ID == "" {
			t.Error("expected generated ID")
		}

		got, err := repo.Get(user.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Username != "alice" {
			t.Errorf("expected username alice, got %s", got.Username)
		}
		if len(got.Services) != 1 || got.Services[0] != "Netflix" {
			t.Errorf("expected services [Netflix], got %v", got.Services)
		}
	})

	t.Run("retrieves user by username", func(t *testing.T) {
		got, err := repo.GetByUsername("alice")
		if err != nil {
			t.Fatalf("GetByUsername failed: %v", err)
		}
		if got.Email != "alice@example.com" {
			t.Errorf("unexpected email: %s", got.Email)
		}
	})

	t.Run("returns not found for unknown user", func(t *testing.T) {
		_, err := repo.Get("missing")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("rejects user without username", func(t *testing.T) {
		err := repo.Create(&models.User{Email: "x@example.com"})
		if !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("replaces services wholesale", func(t *testing.T) {
		user, err := repo.GetByUsername("alice")
		if err != nil {
			t.Fatalf("GetByUsername failed: %v", err)
		}

		if err := repo.SetServices(user.ID, []string{"Sky", "WOW"}); err != nil {
			t.Fatalf("SetServices failed: %v", err)
		}

		got, err := repo.Get(user.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(got.Services) != 2 || got.Services[0] != "Sky" || got.Services[1] != "WOW" {
			t.Errorf("expected [Sky WOW], got %v", got.Services)
		}
	})

	t.Run("set services on unknown user fails", func(t *testing.T) {
		err := repo.SetServices("missing", []string{"Netflix"})
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestListRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewListRepository(db)
	user := createTestUser(t, db, "bob")

	t.Run("creates list", func(t *testing.T) {
		list, err := repo.Create(user.ID, "Watchlist", true)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if !list.IsDefault {
			t.Error("expected default list")
		}
		if len(list.Movies) != 0 {
			t.Errorf("expected empty list, got %d entries", len(list.Movies))
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := repo.Create(user.ID, "", false)
		if !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("rejects whitespace-only name", func(t *testing.T) {
		_, err := repo.Create(user.ID, "   ", false)
		if !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("trims name before storing", func(t *testing.T) {
		owner := createTestUser(t, db, "dave")
		list, err := repo.Create(owner.ID, "  Weekend Picks  ", false)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if list.Name != "Weekend Picks" {
			t.Errorf("expected trimmed name, got %q", list.Name)
		}

		_, err = repo.Create(owner.ID, "Weekend Picks", false)
		if !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected trimmed name to collide, got %v", err)
		}
	})

	t.Run("rejects duplicate name for same user", func(t *testing.T) {
		_, err := repo.Create(user.ID, "Watchlist", false)
		if !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("allows same name for another user", func(t *testing.T) {
		other := createTestUser(t, db, "carol")
		if _, err := repo.Create(other.ID, "Watchlist", true); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	})

	t.Run("orders default first then by creation time", func(t *testing.T) {
		if _, err := repo.Create(user.ID, "Horror", false); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, err := repo.Create(user.ID, "Comedies", false); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		lists, err := repo.ListAll(user.ID)
		if err != nil {
			t.Fatalf("ListAll failed: %v", err)
		}
		if len(lists) != 3 {
			t.Fatalf("expected 3 lists, got %d", len(lists))
		}
		if !lists[0].IsDefault {
			t.Error("expected default list first")
		}
		if lists[1].Name != "Horror" || lists[2].Name != "Comedies" {
			t.Errorf("unexpected order: %s, %s", lists[1].Name, lists[2].Name)
		}
	})

	t.Run("scopes lists to owning user", func(t *testing.T) {
		lists, err := repo.ListAll(user.ID)
		if err != nil {
			t.Fatalf("ListAll failed: %v", err)
		}
		_, err = repo.Get("someone-else", lists[0].ID)
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("protects default list from deletion", func(t *testing.T) {
		lists, err := repo.ListAll(user.ID)
		if err != nil {
			t.Fatalf("ListAll failed: %v", err)
		}
		err = repo.Delete(user.ID, lists[0].ID)
		if !errors.Is(err, shared.ErrProtectedList) {
			t.Errorf("expected ErrProtectedList, got %v", err)
		}
	})

	t.Run("deletes non-default list", func(t *testing.T) {
		list, err := repo.Create(user.ID, "Temporary", false)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if err := repo.Delete(user.ID, list.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		_, err = repo.Get(user.ID, list.ID)
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})
}

func TestListRepositoryEntries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewListRepository(db)
	user := createTestUser(t, db, "dave")

	list, err := repo.Create(user.ID, "Watchlist", true)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	ref := models.MovieRef{MovieID: "tt0372784", Title: "Batman Begins", Year: "2005"}

	t.Run("adds entry", func(t *testing.T) {
		entry, err := repo.AddEntry(user.ID, list.ID, ref)
		if err != nil {
			t.Fatalf("AddEntry failed: %v", err)
		}
		if entry.MovieID != ref.MovieID {
			t.Errorf("expected movie id %s, got %s", ref.MovieID, entry.MovieID)
		}
	})

	t.Run("rejects duplicate movie in same list", func(t *testing.T) {
		_, err := repo.AddEntry(user.ID, list.ID, ref)
		if !errors.Is(err, shared.ErrDuplicateEntry) {
			t.Errorf("expected ErrDuplicateEntry, got %v", err)
		}

		got, err := repo.Get(user.ID, list.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(got.Movies) != 1 {
			t.Errorf("expected list unchanged with 1 entry, got %d", len(got.Movies))
		}
	})

	t.Run("rejects invalid ref", func(t *testing.T) {
		_, err := repo.AddEntry(user.ID, list.ID, models.MovieRef{MovieID: "tt0468569"})
		if !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		if _, err := repo.AddEntry(user.ID, list.ID, models.MovieRef{MovieID: "tt0468569", Title: "The Dark Knight"}); err != nil {
			t.Fatalf("AddEntry failed: %v", err)
		}

		got, err := repo.Get(user.ID, list.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Movies[0].MovieID != "tt0372784" || got.Movies[1].MovieID != "tt0468569" {
			t.Errorf("unexpected order: %s, %s", got.Movies[0].MovieID, got.Movies[1].MovieID)
		}
	})

	t.Run("removes entry", func(t *testing.T) {
		if err := repo.RemoveEntry(user.ID, list.ID, "tt0372784"); err != nil {
			t.Fatalf("RemoveEntry failed: %v", err)
		}
		got, err := repo.Get(user.ID, list.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(got.Movies) != 1 {
			t.Errorf("expected 1 entry after remove, got %d", len(got.Movies))
		}
	})

	t.Run("remove of absent movie fails", func(t *testing.T) {
		err := repo.RemoveEntry(user.ID, list.ID, "tt9999999")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("collects distinct movie ids", func(t *testing.T) {
		ids, err := repo.MovieIDs()
		if err != nil {
			t.Fatalf("MovieIDs failed: %v", err)
		}
		if len(ids) != 1 || ids[0] != "tt0468569" {
			t.Errorf("expected [tt0468569], got %v", ids)
		}
	})
}

func TestAvailabilityRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAvailabilityRepository(db)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("upserts and retrieves window", func(t *testing.T) {
		err := repo.Upsert(models.Availability{
			MovieID:        "tt0372784",
			Service:        "Netflix",
			Region:         "DE",
			AvailableFrom:  &from,
			AvailableUntil: &until,
		})
		if err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}

		rows, err := repo.ForMovie("tt0372784", "DE")
		if err != nil {
			t.Fatalf("ForMovie failed: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("expected 1 row, got %d", len(rows))
		}
		if !rows[0].AvailableFrom.Equal(from) || !rows[0].AvailableUntil.Equal(until) {
			t.Errorf("unexpected window: %v to %v", rows[0].AvailableFrom, rows[0].AvailableUntil)
		}
	})

	t.Run("upsert replaces window for same service", func(t *testing.T) {
		err := repo.Upsert(models.Availability{
			MovieID: "tt0372784",
			Service: "Netflix",
			Region:  "DE",
		})
		if err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}

		rows, err := repo.ForMovie("tt0372784", "DE")
		if err != nil {
			t.Fatalf("ForMovie failed: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("expected 1 row after upsert, got %d", len(rows))
		}
		if rows[0].AvailableFrom != nil || rows[0].AvailableUntil != nil {
			t.Error("expected unbounded window after upsert")
		}
	})

	t.Run("defaults region", func(t *testing.T) {
		err := repo.Upsert(models.Availability{MovieID: "tt0468569", Service: "Sky"})
		if err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
		rows, err := repo.ForMovie("tt0468569", "DE")
		if err != nil {
			t.Fatalf("ForMovie failed: %v", err)
		}
		if len(rows) != 1 {
			t.Errorf("expected row in default region, got %d", len(rows))
		}
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		err := repo.Upsert(models.Availability{
			MovieID:        "tt0468569",
			Service:        "WOW",
			AvailableFrom:  &until,
			AvailableUntil: &from,
		})
		if !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("rejects missing movie id", func(t *testing.T) {
		err := repo.Upsert(models.Availability{Service: "Netflix"})
		if !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("deletes row by id", func(t *testing.T) {
		rows, err := repo.ForMovie("tt0468569", "DE")
		if err != nil {
			t.Fatalf("ForMovie failed: %v", err)
		}
		if err := repo.Delete("tt0468569", rows[0].ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		err = repo.Delete("tt0468569", rows[0].ID)
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("prunes expired windows", func(t *testing.T) {
		err := repo.Upsert(models.Availability{
			MovieID:        "tt0372784",
			Service:        "Disney+",
			AvailableUntil: &until,
		})
		if err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}

		pruned, err := repo.PruneExpired(until.Add(24 * time.Hour))
		if err != nil {
			t.Fatalf("PruneExpired failed: %v", err)
		}
		if pruned != 1 {
			t.Errorf("expected 1 pruned row, got %d", pruned)
		}

		rows, err := repo.ForMovie("tt0372784", "DE")
		if err != nil {
			t.Fatalf("ForMovie failed: %v", err)
		}
		for _, row := range rows {
			if row.Service == "Disney+" {
				t.Error("expected expired Disney+ row to be pruned")
			}
		}
	})
}
