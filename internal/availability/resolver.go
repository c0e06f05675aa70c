// package availability decides which availability windows to surface for a
// movie given the user's subscribed services and the current time.
package availability

import (
	"sort"
	"time"

	"github.com/watchcall/watchcall/internal/models"
)

// Resolve filters rows to those whose service is in prefs and whose window
// contains now, ordered by service name ascending with ties broken by
// available_until ascending (unbounded sorts after any bound).
//
// An empty result is a normal state, never an error: it means "not
// currently available on anything you subscribe to".
func Resolve(rows []models.Availability, prefs []string, now time.Time) []models.Availability {
	subscribed := make(map[string]bool, len(prefs))
	for _, s := range prefs {
		subscribed[s] = true
	}

	resolved := make([]models.Availability, 0, len(rows))
	for _, row := range rows {
		if !subscribed[row.Service] {
			continue
		}
		if !Active(row, now) {
			continue
		}
		resolved = append(resolved, row)
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		if resolved[i].Service != resolved[j].Service {
			return resolved[i].Service < resolved[j].Service
		}
		return untilBefore(resolved[i].AvailableUntil, resolved[j].AvailableUntil)
	})

	return resolved
}

// Active reports whether now lies within the row's window. Absent bounds
// are treated as unbounded on that side, so a row with neither bound is
// always active.
func Active(row models.Availability, now time.Time) bool {
	if row.AvailableFrom != nil && now.Before(*row.AvailableFrom) {
		return false
	}
	if row.AvailableUntil != nil && now.After(*row.AvailableUntil) {
		return false
	}
	return true
}

// Expired reports whether the row's window has fully passed.
func Expired(row models.Availability, now time.Time) bool {
	return row.AvailableUntil != nil && now.After(*row.AvailableUntil)
}

func untilBefore(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false // unbounded sorts last
	case b == nil:
		return true
	default:
		return a.Before(*b)
	}
}
