package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/watchcall/watchcall/internal/models"
	"github.com/watchcall/watchcall/internal/shared"
)

// ListRepository handles [models.MovieList] and [models.ListEntry]
// persistence. Entries keep insertion order; movie ids are unique within
// a list.
type ListRepository struct {
	db *sql.DB
}

// NewListRepository creates a new [ListRepository] with the given database connection
func NewListRepository(db *sql.DB) *ListRepository {
	return &ListRepository{db: db}
}

// Create inserts a new list for the user. Names are trimmed and must be
// non-empty and unique per user; violations fail with shared.ErrValidation,
// matching the backend's inline validation contract.
func (r *ListRepository) Create(userID, name string, isDefault bool) (*models.MovieList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", shared.ErrValidation)
	}

	var exists bool
	err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM movie_lists WHERE user_id = ? AND name = ? AND deleted_at IS NULL)", userID, name).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check list name: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: a list with this name already exists", shared.ErrValidation)
	}

	sequence, err := NextSequence(r.db, "movie_lists")
	if err != nil {
		return nil, fmt.Errorf("failed to generate sequence: %w", err)
	}

	list := &models.MovieList{
		ID:        shared.GenerateID(),
		Name:      name,
		IsDefault: isDefault,
		CreatedAt: time.Now().UTC(),
		Movies:    []models.ListEntry{},
	}

	query := `
		INSERT INTO movie_lists (id, sequence, user_id, name, is_default, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, list.ID, sequence, userID, list.Name, list.IsDefault, list.CreatedAt, list.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert list: %w", err)
	}

	return list, nil
}

// ListAll returns the user's lists with entries, default lists first and
// then creation time ascending.
func (r *ListRepository) ListAll(userID string) ([]models.MovieList, error) {
	query := `
		SELECT id, name, is_default, created_at
		FROM movie_lists
		WHERE user_id = ? AND deleted_at IS NULL
		ORDER BY is_default DESC, created_at ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer rows.Close()

	var lists []models.MovieList
	for rows.Next() {
		var (
			list      models.MovieList
			isDefault int
		)
		if err := rows.Scan(&list.ID, &list.Name, &isDefault, &list.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		list.IsDefault = isDefault != 0
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lists: %w", err)
	}

	for i := range lists {
		entries, err := r.entries(lists[i].ID)
		if err != nil {
			return nil, err
		}
		lists[i].Movies = entries
	}

	return lists, nil
}

// Get returns one list with entries, scoped to the owning user.
func (r *ListRepository) Get(userID, listID string) (*models.MovieList, error) {
	query := `
		SELECT id, name, is_default, created_at
		FROM movie_lists
		WHERE id = ? AND user_id = ? AND deleted_at IS NULL
	`

	var (
		list      models.MovieList
		isDefault int
	)
	err := r.db.QueryRow(query, listID, userID).Scan(&list.ID, &list.Name, &isDefault, &list.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: list", shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query list: %w", err)
	}
	list.IsDefault = isDefault != 0

	entries, err := r.entries(list.ID)
	if err != nil {
		return nil, err
	}
	list.Movies = entries

	return &list, nil
}

// Delete soft-deletes a list. Default lists are protected; the check here
// is the authoritative one, whatever the client decided beforehand.
func (r *ListRepository) Delete(userID, listID string) error {
	list, err := r.Get(userID, listID)
	if err != nil {
		return err
	}
	if list.IsDefault {
		return shared.ErrProtectedList
	}

	_, err = r.db.Exec("UPDATE movie_lists SET deleted_at = ? WHERE id = ?", time.Now().UTC(), listID)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}

	return nil
}

// AddEntry appends a movie to the list. Adding a movie id already present
// fails with shared.ErrDuplicateEntry and leaves the list unchanged.
func (r *ListRepository) AddEntry(userID, listID string, ref models.MovieRef) (*models.ListEntry, error) {
	if !ref.Validate() {
		return nil, fmt.Errorf("%w: movieId and title are required", shared.ErrValidation)
	}

	if _, err := r.Get(userID, listID); err != nil {
		return nil, err
	}

	var exists bool
	err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM list_entries WHERE list_id = ? AND movie_id = ?)", listID, ref.MovieID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check entry: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: movie already in list", shared.ErrDuplicateEntry)
	}

	entry := &models.ListEntry{
		ID:      shared.GenerateID(),
		MovieID: ref.MovieID,
		Title:   ref.Title,
		Poster:  ref.Poster,
		Year:    ref.Year,
		AddedAt: time.Now().UTC(),
	}

	query := `
		INSERT INTO list_entries (id, list_id, movie_id, title, poster, year, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, entry.ID, listID, entry.MovieID, entry.Title, entry.Poster, entry.Year, entry.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert entry: %w", err)
	}

	return entry, nil
}

// RemoveEntry deletes a movie from the list by catalog id.
func (r *ListRepository) RemoveEntry(userID, listID, movieID string) error {
	if _, err := r.Get(userID, listID); err != nil {
		return err
	}

	result, err := r.db.Exec("DELETE FROM list_entries WHERE list_id = ? AND movie_id = ?", listID, movieID)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: movie not in list", shared.ErrNotFound)
	}

	return nil
}

// MovieIDs returns every distinct movie id referenced by any list. The
// availability sweep uses it to know which catalog ids are still watched.
func (r *ListRepository) MovieIDs() ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT movie_id FROM list_entries")
	if err != nil {
		return nil, fmt.Errorf("failed to query movie ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan movie id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// entries returns a list's entries in insertion order.
func (r *ListRepository) entries(listID string) ([]models.ListEntry, error) {
	query := `
		SELECT id, movie_id, title, COALESCE(poster, ''), COALESCE(year, ''), added_at
		FROM list_entries
		WHERE list_id = ?
		ORDER BY added_at ASC, id ASC
	`

	rows, err := r.db.Query(query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []models.ListEntry{}
	for rows.Next() {
		var entry models.ListEntry
		if err := rows.Scan(&entry.ID, &entry.MovieID, &entry.Title, &entry.Poster, &entry.Year, &entry.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
