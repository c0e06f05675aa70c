package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/watchcall/watchcall/internal/models"
	"github.com/watchcall/watchcall/internal/shared"
)

// UserRepository handles [models.User] persistence including the service
// preference subset, which is stored as a JSON array per user.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new [UserRepository] with the given database connection
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user with a generated ID and sequence.
func (r *UserRepository) Create(user *models.User) error {
	if user.Username == "" || user.Email == "" {
		return fmt.Errorf("%w: username and email are required", shared.ErrValidation)
	}

	sequence, err := NextSequence(r.db, "users")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	user.ID = shared.GenerateID()
	user.CreatedAt = time.Now().UTC()
	if user.Services == nil {
		user.Services = []string{}
	}

	services, err := json.Marshal(user.Services)
	if err != nil {
		return fmt.Errorf("failed to encode services: %w", err)
	}

	query := `
		INSERT INTO users (id, sequence, username, email, password_hash, is_admin, services, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, user.ID, sequence, user.Username, user.Email, user.PasswordHash, user.IsAdmin, string(services), user.CreatedAt, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// Get retrieves a user by ID, excluding soft-deleted users.
func (r *UserRepository) Get(id string) (*models.User, error) {
	return r.getBy("id", id)
}

// GetByUsername retrieves a user by username for login.
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	return r.getBy("username", username)
}

func (r *UserRepository) getBy(column, value string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, email, password_hash, is_admin, services, created_at
		FROM users
		WHERE %s = ? AND deleted_at IS NULL
	`, column)

	var (
		user     models.User
		isAdmin  int
		services string
	)

	err := r.db.QueryRow(query, value).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &isAdmin, &services, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user", shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	user.IsAdmin = isAdmin != 0
	if err := json.Unmarshal([]byte(services), &user.Services); err != nil {
		user.Services = []string{}
	}

	return &user, nil
}

// Promote grants admin rights to a user. Only reachable from the CLI; there
// is no HTTP endpoint for it.
func (r *UserRepository) Promote(userID string) error {
	result, err := r.db.Exec("UPDATE users SET is_admin = 1, updated_at = ? WHERE id = ? AND deleted_at IS NULL", time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to promote user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: user", shared.ErrNotFound)
	}

	return nil
}

// SetServices replaces the user's subscribed-service subset wholesale.
func (r *UserRepository) SetServices(userID string, services []string) error {
	if services == nil {
		services = []string{}
	}

	data, err := json.Marshal(services)
	if err != nil {
		return fmt.Errorf("failed to encode services: %w", err)
	}

	result, err := r.db.Exec("UPDATE users SET services = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL", string(data), time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to update services: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: user", shared.ErrNotFound)
	}

	return nil
}
