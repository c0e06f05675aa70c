// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/watchcall/watchcall/internal/models"
)

// MockBackend is a test double for [services.Backend]. Each method delegates
// to the matching func field when set and falls back to an empty success
// otherwise, so tests only wire what they assert on.
type MockBackend struct {
	SearchFunc          func(ctx context.Context, session models.Session, query string) ([]models.SearchResult, error)
	DetailsFunc         func(ctx context.Context, session models.Session, movieID string) (*models.MovieDetails, error)
	ListAllFunc         func(ctx context.Context, session models.Session) ([]models.MovieList, error)
	CreateListFunc      func(ctx context.Context, session models.Session, name string) (*models.MovieList, error)
	DeleteListFunc      func(ctx context.Context, session models.Session, listID string) error
	GetListFunc         func(ctx context.Context, session models.Session, listID string) (*models.MovieList, error)
	AddEntryFunc        func(ctx context.Context, session models.Session, listID string, ref models.MovieRef) (*models.ListEntry, error)
	RemoveEntryFunc     func(ctx context.Context, session models.Session, listID, movieID string) error
	AvailabilityFunc    func(ctx context.Context, session models.Session, movieID string) ([]models.Availability, error)
	ServicesFunc        func(ctx context.Context, session models.Session) ([]string, error)
	UserServicesFunc    func(ctx context.Context, session models.Session) ([]string, error)
	SetUserServicesFunc func(ctx context.Context, session models.Session, services []string) error
	RegisterFunc        func(ctx context.Context, username, email, password string) (models.Session, error)
	LoginFunc           func(ctx context.Context, username, password string) (models.Session, error)
	WhoamiFunc          func(ctx context.Context, session models.Session) (*models.User, error)
}

func (m *MockBackend) Search(ctx context.Context, session models.Session, query string) ([]models.SearchResult, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, session, query)
	}
	return []models.SearchResult{}, nil
}

func (m *MockBackend) Details(ctx context.Context, session models.Session, movieID string) (*models.MovieDetails, error) {
	if m.DetailsFunc != nil {
		return m.DetailsFunc(ctx, session, movieID)
	}
	return &models.MovieDetails{MovieID: movieID}, nil
}

func (m *MockBackend) ListAll(ctx context.Context, session models.Session) ([]models.MovieList, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, session)
	}
	return []models.MovieList{}, nil
}

func (m *MockBackend) CreateList(ctx context.Context, session models.Session, name string) (*models.MovieList, error) {
	if m.CreateListFunc != nil {
		return m.CreateListFunc(ctx, session, name)
	}
	return &models.MovieList{Name: name}, nil
}

func (m *MockBackend) DeleteList(ctx context.Context, session models.Session, listID string) error {
	if m.DeleteListFunc != nil {
		return m.DeleteListFunc(ctx, session, listID)
	}
	return nil
}

func (m *MockBackend) GetList(ctx context.Context, session models.Session, listID string) (*models.MovieList, error) {
	if m.GetListFunc != nil {
		return m.GetListFunc(ctx, session, listID)
	}
	return &models.MovieList{ID: listID}, nil
}

func (m *MockBackend) AddEntry(ctx context.Context, session models.Session, listID string, ref models.MovieRef) (*models.ListEntry, error) {
	if m.AddEntryFunc != nil {
		return m.AddEntryFunc(ctx, session, listID, ref)
	}
	return &models.ListEntry{MovieID: ref.MovieID, Title: ref.Title}, nil
}

func (m *MockBackend) RemoveEntry(ctx context.Context, session models.Session, listID, movieID string) error {
	if m.RemoveEntryFunc != nil {
		return m.RemoveEntryFunc(ctx, session, listID, movieID)
	}
	return nil
}

func (m *MockBackend) Availability(ctx context.Context, session models.Session, movieID string) ([]models.Availability, error) {
	if m.AvailabilityFunc != nil {
		return m.AvailabilityFunc(ctx, session, movieID)
	}
	return []models.Availability{}, nil
}

func (m *MockBackend) Services(ctx context.Context, session models.Session) ([]string, error) {
	if m.ServicesFunc != nil {
		return m.ServicesFunc(ctx, session)
	}
	return []string{}, nil
}

func (m *MockBackend) UserServices(ctx context.Context, session models.Session) ([]string, error) {
	if m.UserServicesFunc != nil {
		return m.UserServicesFunc(ctx, session)
	}
	return []string{}, nil
}

func (m *MockBackend) SetUserServices(ctx context.Context, session models.Session, services []string) error {
	if m.SetUserServicesFunc != nil {
		return m.SetUserServicesFunc(ctx, session, services)
	}
	return nil
}

func (m *MockBackend) Register(ctx context.Context, username, email, password string) (models.Session, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, username, email, password)
	}
	return models.Session{Token: "mock-token", User: models.User{Username: username, Email: email}}, nil
}

func (m *MockBackend) Login(ctx context.Context, username, password string) (models.Session, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return models.Session{Token: "mock-token", User: models.User{Username: username}}, nil
}

func (m *MockBackend) Whoami(ctx context.Context, session models.Session) (*models.User, error) {
	if m.WhoamiFunc != nil {
		return m.WhoamiFunc(ctx, session)
	}
	return &session.User, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
