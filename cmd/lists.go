package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/watchcall/watchcall/internal/formatter"
	"github.com/watchcall/watchcall/internal/lists"
	"github.com/watchcall/watchcall/internal/models"
	"github.com/watchcall/watchcall/internal/shared"
)

// store builds a snapshot-backed list store for the current session.
func (r *Runner) store(ctx context.Context) (*lists.Store, error) {
	session, err := r.requireSession()
	if err != nil {
		return nil, err
	}

	store := lists.NewStore(r.backend, session)
	if _, err := store.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch lists: %w", err)
	}
	return store, nil
}

// ListsAll prints every list with its movies.
func (r *Runner) ListsAll(ctx context.Context, cmd *cli.Command) error {
	store, err := r.store(ctx)
	if err != nil {
		return err
	}

	all := store.Lists()
	if cmd.Bool("json") {
		return r.writeJSON(all, cmd.Bool("pretty"))
	}

	for _, list := range all {
		marker := ""
		if list.IsDefault {
			marker = " (default)"
		}
		r.writePlain("%s%s  [%s]\n", list.Name, marker, list.ID)
		for _, entry := range list.Movies {
			r.writePlain("  %s (%s)  %s\n", entry.Title, entry.Year, entry.MovieID)
		}
	}
	return nil
}

// ListsCreate creates a new non-default list.
func (r *Runner) ListsCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: list name", shared.ErrMissingArgument)
	}

	store, err := r.store(ctx)
	if err != nil {
		return err
	}

	list, err := store.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to create list: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(list, cmd.Bool("pretty"))
	}
	return r.writePlain("Created list %q [%s]\n", list.Name, list.ID)
}

// ListsDelete deletes a list. Default lists fail fast client-side and are
// rejected by the backend either way.
func (r *Runner) ListsDelete(ctx context.Context, cmd *cli.Command) error {
	listID := cmd.StringArg("id")
	if listID == "" {
		return fmt.Errorf("%w: list id", shared.ErrMissingArgument)
	}

	store, err := r.store(ctx)
	if err != nil {
		return err
	}

	if err := store.Delete(ctx, listID); err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	return r.writePlain("Deleted list %s\n", listID)
}

// ListsAdd adds a movie to a list, defaulting to the default list. The
// movie's display fields are captured from the catalog at add time.
func (r *Runner) ListsAdd(ctx context.Context, cmd *cli.Command) error {
	store, err := r.store(ctx)
	if err != nil {
		return err
	}

	listID := cmd.String("list")
	if listID == "" {
		for _, list := range store.Lists() {
			if list.IsDefault {
				listID = list.ID
				break
			}
		}
	}
	if listID == "" {
		return fmt.Errorf("%w: no default list; pass --list", shared.ErrNotFound)
	}

	session, err := r.requireSession()
	if err != nil {
		return err
	}

	details, err := r.backend.Details(ctx, session, cmd.String("movie"))
	if err != nil {
		return fmt.Errorf("failed to look up movie: %w", err)
	}

	ref := models.MovieRef{
		MovieID: details.MovieID,
		Title:   details.Title,
		Poster:  details.Poster,
		Year:    details.Year,
	}

	list, err := store.AddMovie(ctx, listID, ref)
	if err != nil {
		return fmt.Errorf("failed to add movie: %w", err)
	}
	return r.writePlain("Added %q to %q (%d movies)\n", details.Title, list.Name, len(list.Movies))
}

// ListsRemove removes a movie from a list.
func (r *Runner) ListsRemove(ctx context.Context, cmd *cli.Command) error {
	store, err := r.store(ctx)
	if err != nil {
		return err
	}

	list, err := store.RemoveMovie(ctx, cmd.String("list"), cmd.String("movie"))
	if err != nil {
		return fmt.Errorf("failed to remove movie: %w", err)
	}
	return r.writePlain("Removed movie from %q (%d movies)\n", list.Name, len(list.Movies))
}

// ListsExport writes a list to csv, markdown, or txt.
func (r *Runner) ListsExport(ctx context.Context, cmd *cli.Command) error {
	store, err := r.store(ctx)
	if err != nil {
		return err
	}

	list, ok := store.Get(cmd.String("list"))
	if !ok {
		return fmt.Errorf("%w: list", shared.ErrNotFound)
	}

	format := cmd.String("format")
	outputPath := cmd.String("output")
	if outputPath == "" {
		outputPath = fmt.Sprintf("%s.%s", list.ID, formatter.Extension(format))
	}

	if err := formatter.WriteExport(&list, format, outputPath); err != nil {
		return fmt.Errorf("failed to export list: %w", err)
	}

	r.logger.Info("list exported", "list", list.Name, "format", format, "path", outputPath)
	return r.writePlain("Exported %q to %s\n", list.Name, outputPath)
}
