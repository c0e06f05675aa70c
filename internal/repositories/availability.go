package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/watchcall/watchcall/internal/models"
	"github.com/watchcall/watchcall/internal/shared"
)

// AvailabilityRepository handles [models.Availability] persistence. Rows
// are upserted per (movie, service, region) window by the admin endpoints
// and the refresh sweep; the core only ever reads them.
type AvailabilityRepository struct {
	db *sql.DB
}

// NewAvailabilityRepository creates a new [AvailabilityRepository] with the given database connection
func NewAvailabilityRepository(db *sql.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// ForMovie returns all availability rows for a movie in the given region.
func (r *AvailabilityRepository) ForMovie(movieID, region string) ([]models.Availability, error) {
	query := `
		SELECT id, movie_id, service, region, available_from, available_until
		FROM availability
		WHERE movie_id = ? AND region = ?
		ORDER BY service ASC
	`

	rows, err := r.db.Query(query, movieID, region)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}
	defer rows.Close()

	result := []models.Availability{}
	for rows.Next() {
		var (
			row   models.Availability
			from  sql.NullTime
			until sql.NullTime
		)
		if err := rows.Scan(&row.ID, &row.MovieID, &row.Service, &row.Region, &from, &until); err != nil {
			return nil, fmt.Errorf("failed to scan availability: %w", err)
		}
		if from.Valid {
			t := from.Time
			row.AvailableFrom = &t
		}
		if until.Valid {
			t := until.Time
			row.AvailableUntil = &t
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// Upsert creates or updates the window for (movie, service, region).
func (r *AvailabilityRepository) Upsert(row models.Availability) error {
	if row.MovieID == "" || row.Service == "" {
		return fmt.Errorf("%w: movie_id and service are required", shared.ErrValidation)
	}
	if row.AvailableFrom != nil && row.AvailableUntil != nil && row.AvailableFrom.After(*row.AvailableUntil) {
		return fmt.Errorf("%w: available_from is after available_until", shared.ErrValidation)
	}
	if row.Region == "" {
		row.Region = "DE"
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO availability (id, movie_id, service, region, available_from, available_until, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (movie_id, service, region) DO UPDATE SET
			available_from = excluded.available_from,
			available_until = excluded.available_until,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query, shared.GenerateID(), row.MovieID, row.Service, row.Region, nullable(row.AvailableFrom), nullable(row.AvailableUntil), now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert availability: %w", err)
	}

	return nil
}

// Delete removes a single availability row by id, verifying the movie id
// matches the row (mirrors the admin endpoint contract).
func (r *AvailabilityRepository) Delete(movieID, id string) error {
	result, err := r.db.Exec("DELETE FROM availability WHERE id = ? AND movie_id = ?", id, movieID)
	if err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: availability row", shared.ErrNotFound)
	}

	return nil
}

// PruneExpired removes rows whose window ended before cutoff and returns
// how many were removed.
func (r *AvailabilityRepository) PruneExpired(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec("DELETE FROM availability WHERE available_until IS NOT NULL AND available_until < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune availability: %w", err)
	}
	return result.RowsAffected()
}

func nullable(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
