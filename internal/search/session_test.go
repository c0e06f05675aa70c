package search

import (
	"errors"
	"testing"

	"github.com/watchcall/watchcall/internal/models"
)

func results(ids ...string) []models.SearchResult {
	out := make([]models.SearchResult, len(ids))
	for i, id := range ids {
		out[i] = models.SearchResult{MovieID: id, Title: id}
	}
	return out
}

func TestSession(t *testing.T) {
	t.Run("Issue", func(t *testing.T) {
		t.Run("blank query clears without sending", func(t *testing.T) {
			var s Session
			id, _ := s.Issue("batman")
			s.Apply(id, results("tt1"), nil)

			if _, ok := s.Issue("  "); ok {
				t.Error("blank query must not be sent")
			}
			if len(s.Results()) != 0 || s.Open() {
				t.Error("blank query must clear results and close the view")
			}
		})

		t.Run("blank query suppresses in-flight response", func(t *testing.T) {
			var s Session
			id, _ := s.Issue("batman")
			s.Issue("")

			if s.Apply(id, results("tt1"), nil) {
				t.Error("response issued before the clear was applied")
			}
		})
	})

	t.Run("Apply", func(t *testing.T) {
		t.Run("publishes results for the latest request", func(t *testing.T) {
			var s Session
			id, ok := s.Issue("batman")
			if !ok {
				t.Fatal("expected query to be issued")
			}

			if !s.Apply(id, results("tt1", "tt2"), nil) {
				t.Fatal("expected response to be applied")
			}
			if len(s.Results()) != 2 || !s.Open() {
				t.Error("expected results published and view open")
			}
		})

		t.Run("last request wins when responses arrive out of order", func(t *testing.T) {
			var s Session
			q1, _ := s.Issue("batman")
			q2, _ := s.Issue("batman begins")

			if !s.Apply(q2, results("tt2"), nil) {
				t.Fatal("latest response must apply")
			}
			if s.Apply(q1, results("tt1"), nil) {
				t.Error("superseded response must be discarded")
			}
			if got := s.Results(); len(got) != 1 || got[0].MovieID != "tt2" {
				t.Errorf("displayed results belong to the wrong query: %v", got)
			}
		})

		t.Run("failure keeps the previous result set", func(t *testing.T) {
			var s Session
			q1, _ := s.Issue("batman")
			s.Apply(q1, results("tt1"), nil)

			q2, _ := s.Issue("batman begins")
			if s.Apply(q2, nil, errors.New("catalog down")) {
				t.Error("failed response must not be applied")
			}
			if got := s.Results(); len(got) != 1 || got[0].MovieID != "tt1" {
				t.Error("previous results must stay visible after a soft failure")
			}
		})
	})

	t.Run("Select", func(t *testing.T) {
		t.Run("closes the view and hands over the choice", func(t *testing.T) {
			var s Session
			id, _ := s.Issue("batman")
			s.Apply(id, results("tt1", "tt2"), nil)

			chosen, ok := s.Select(1)
			if !ok {
				t.Fatal("expected selection to succeed")
			}
			if chosen.MovieID != "tt2" {
				t.Errorf("expected tt2, got %s", chosen.MovieID)
			}
			if s.Open() || len(s.Results()) != 0 {
				t.Error("selection must clear and close the results view")
			}
		})

		t.Run("suppresses responses still in flight", func(t *testing.T) {
			var s Session
			q1, _ := s.Issue("batman")
			s.Apply(q1, results("tt1"), nil)
			q2, _ := s.Issue("batman begins")

			s.Select(0)

			if s.Apply(q2, results("tt2"), nil) {
				t.Error("response applied after the view was closed by selection")
			}
		})

		t.Run("rejects out-of-range index", func(t *testing.T) {
			var s Session
			if _, ok := s.Select(0); ok {
				t.Error("selection from empty results must fail")
			}
		})
	})
}
