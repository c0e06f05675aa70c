package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/watchcall/watchcall/internal/models"
	"github.com/watchcall/watchcall/internal/shared"
)

const defaultBaseURL = "http://127.0.0.1:5000"

// Client implements [Backend] over the WatchCall HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Backend = (*Client)(nil)

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// apiError is the error envelope the backend returns on failures.
type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// mapError converts a non-2xx response into the shared error taxonomy.
// Auth failures map to ErrUnauthorized uniformly, whatever the operation.
func mapError(status int, body []byte) error {
	var envelope apiError
	_ = json.Unmarshal(body, &envelope)
	msg := envelope.Error
	if msg == "" {
		msg = http.StatusText(status)
	}

	switch envelope.Code {
	case "validation":
		return fmt.Errorf("%w: %s", shared.ErrValidation, msg)
	case "duplicate_entry":
		return fmt.Errorf("%w: %s", shared.ErrDuplicateEntry, msg)
	case "protected_list":
		return fmt.Errorf("%w: %s", shared.ErrProtectedList, msg)
	case "not_found":
		return fmt.Errorf("%w: %s", shared.ErrNotFound, msg)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: %s", shared.ErrUnauthorized, msg)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", shared.ErrNotFound, msg)
	case status == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", shared.ErrValidation, msg)
	default:
		return fmt.Errorf("%w: %s (status %d)", shared.ErrTransient, msg, status)
	}
}

// do issues a request and decodes the JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, session models.Session, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session.Valid() {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", shared.ErrTransient, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", shared.ErrTransient, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: malformed response: %v", shared.ErrTransient, err)
		}
	}

	return nil
}

// Search implements [Catalog].
func (c *Client) Search(ctx context.Context, session models.Session, query string) ([]models.SearchResult, error) {
	var results []models.SearchResult
	path := "/api/movies/search?query=" + url.QueryEscape(query)
	if err := c.do(ctx, session, http.MethodGet, path, nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Details implements [Catalog].
func (c *Client) Details(ctx context.Context, session models.Session, movieID string) (*models.MovieDetails, error) {
	var details models.MovieDetails
	if err := c.do(ctx, session, http.MethodGet, "/api/movies/"+url.PathEscape(movieID), nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// ListAll implements [ListBackend].
func (c *Client) ListAll(ctx context.Context, session models.Session) ([]models.MovieList, error) {
	var lists []models.MovieList
	if err := c.do(ctx, session, http.MethodGet, "/api/movie-lists", nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// CreateList implements [ListBackend].
func (c *Client) CreateList(ctx context.Context, session models.Session, name string) (*models.MovieList, error) {
	var list models.MovieList
	payload := map[string]string{"name": name}
	if err := c.do(ctx, session, http.MethodPost, "/api/movie-lists", payload, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// DeleteList implements [ListBackend].
func (c *Client) DeleteList(ctx context.Context, session models.Session, listID string) error {
	return c.do(ctx, session, http.MethodDelete, "/api/movie-lists/"+url.PathEscape(listID), nil, nil)
}

// GetList implements [ListBackend].
func (c *Client) GetList(ctx context.Context, session models.Session, listID string) (*models.MovieList, error) {
	var list models.MovieList
	if err := c.do(ctx, session, http.MethodGet, "/api/movie-lists/"+url.PathEscape(listID), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// AddEntry implements [ListBackend].
func (c *Client) AddEntry(ctx context.Context, session models.Session, listID string, ref models.MovieRef) (*models.ListEntry, error) {
	var entry models.ListEntry
	path := "/api/movie-lists/" + url.PathEscape(listID) + "/movies"
	if err := c.do(ctx, session, http.MethodPost, path, ref, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// RemoveEntry implements [ListBackend].
func (c *Client) RemoveEntry(ctx context.Context, session models.Session, listID, movieID string) error {
	path := "/api/movie-lists/" + url.PathEscape(listID) + "/movies/" + url.PathEscape(movieID)
	return c.do(ctx, session, http.MethodDelete, path, nil, nil)
}

// Availability implements [AvailabilityBackend].
func (c *Client) Availability(ctx context.Context, session models.Session, movieID string) ([]models.Availability, error) {
	var rows []models.Availability
	if err := c.do(ctx, session, http.MethodGet, "/api/streaming/"+url.PathEscape(movieID), nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Services implements [PreferenceBackend].
func (c *Client) Services(ctx context.Context, session models.Session) ([]string, error) {
	var services []string
	if err := c.do(ctx, session, http.MethodGet, "/api/services", nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// UserServices implements [PreferenceBackend].
func (c *Client) UserServices(ctx context.Context, session models.Session) ([]string, error) {
	var services []string
	if err := c.do(ctx, session, http.MethodGet, "/api/user/services", nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// SetUserServices implements [PreferenceBackend]. The subset is replaced
// wholesale; concurrent calls resolve last-write-wins by request order.
func (c *Client) SetUserServices(ctx context.Context, session models.Session, services []string) error {
	if services == nil {
		services = []string{}
	}
	return c.do(ctx, session, http.MethodPut, "/api/user/services", services, nil)
}

// sessionResponse is the login/register payload.
type sessionResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register implements [Auth].
func (c *Client) Register(ctx context.Context, username, email, password string) (models.Session, error) {
	var resp sessionResponse
	payload := map[string]string{"username": username, "email": email, "password": password}
	if err := c.do(ctx, models.Session{}, http.MethodPost, "/api/register", payload, &resp); err != nil {
		return models.Session{}, err
	}
	return models.Session{Token: resp.Token, User: resp.User}, nil
}

// Login implements [Auth].
func (c *Client) Login(ctx context.Context, username, password string) (models.Session, error) {
	var resp sessionResponse
	payload := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, models.Session{}, http.MethodPost, "/api/login", payload, &resp); err != nil {
		return models.Session{}, err
	}
	return models.Session{Token: resp.Token, User: resp.User}, nil
}

// Whoami implements [Auth].
func (c *Client) Whoami(ctx context.Context, session models.Session) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, session, http.MethodGet, "/api/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
