package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/watchcall/watchcall/internal/availability"
	"github.com/watchcall/watchcall/internal/shared"
)

// Search runs a one-shot catalog search.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	session, err := r.requireSession()
	if err != nil {
		return err
	}

	results, err := r.backend.Search(ctx, session, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(results, cmd.Bool("pretty"))
	}

	if len(results) == 0 {
		return r.writePlain("No results for %q\n", query)
	}
	for _, result := range results {
		r.writePlain("%s (%s)  %s\n", result.Title, result.Year, result.MovieID)
	}
	return nil
}

// MovieInfo shows a movie's metadata and where the user can watch it. The
// three lookups mirror what the TUI's movie panel fetches.
func (r *Runner) MovieInfo(ctx context.Context, cmd *cli.Command) error {
	movieID := cmd.StringArg("id")
	if movieID == "" {
		return fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}

	session, err := r.requireSession()
	if err != nil {
		return err
	}

	details, err := r.backend.Details(ctx, session, movieID)
	if err != nil {
		return fmt.Errorf("failed to look up movie: %w", err)
	}

	rows, err := r.backend.Availability(ctx, session, movieID)
	if err != nil {
		return fmt.Errorf("failed to fetch availability: %w", err)
	}

	prefs, err := r.backend.UserServices(ctx, session)
	if err != nil {
		return fmt.Errorf("failed to fetch subscriptions: %w", err)
	}

	watchable := availability.Resolve(rows, prefs, time.Now())

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"details":   details,
			"watchable": watchable,
		}, cmd.Bool("pretty"))
	}

	r.writePlain("%s (%s)\n", details.Title, details.Year)
	r.writePlain("%s • %s • %s\n", details.Rated, details.Runtime, details.Genre)
	r.writePlain("Director: %s\n", details.Director)
	r.writePlain("IMDb: %s (%s votes)\n\n%s\n", details.Rating, details.Votes, details.Plot)

	if len(watchable) == 0 {
		return r.writePlainln("Not watchable on your services right now")
	}

	r.writePlainln("Watch now on:")
	for _, row := range watchable {
		until := "no end date"
		if row.AvailableUntil != nil {
			until = "until " + row.AvailableUntil.Format("2006-01-02")
		}
		r.writePlain("  %s (%s)\n", row.Service, until)
	}
	return nil
}

// MovieOpen opens the movie's IMDb page in the system browser.
func (r *Runner) MovieOpen(ctx context.Context, cmd *cli.Command) error {
	movieID := cmd.StringArg("id")
	if movieID == "" {
		return fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}

	url := shared.IMDbURL(movieID)
	if err := shared.OpenBrowser(url); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return r.writePlain("Opened %s\n", url)
}
