package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

// ServicesAll prints the fixed streaming service catalog.
func (r *Runner) ServicesAll(ctx context.Context, cmd *cli.Command) error {
	session, err := r.requireSession()
	if err != nil {
		return err
	}

	catalog, err := r.backend.Services(ctx, session)
	if err != nil {
		return fmt.Errorf("failed to fetch services: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(catalog, cmd.Bool("pretty"))
	}
	for _, name := range catalog {
		r.writePlain("%s\n", name)
	}
	return nil
}

// ServicesMine prints the subscribed subset.
func (r *Runner) ServicesMine(ctx context.Context, cmd *cli.Command) error {
	session, err := r.requireSession()
	if err != nil {
		return err
	}

	prefs, err := r.backend.UserServices(ctx, session)
	if err != nil {
		return fmt.Errorf("failed to fetch subscriptions: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(prefs, cmd.Bool("pretty"))
	}
	if len(prefs) == 0 {
		return r.writePlain("No subscribed services\n")
	}
	for _, name := range prefs {
		r.writePlain("%s\n", name)
	}
	return nil
}

// ServicesSet replaces the subscribed subset wholesale from a comma
// separated argument. An empty argument clears every subscription.
func (r *Runner) ServicesSet(ctx context.Context, cmd *cli.Command) error {
	session, err := r.requireSession()
	if err != nil {
		return err
	}

	raw := cmd.StringArg("services")
	services := []string{}
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			services = append(services, name)
		}
	}

	if err := r.backend.SetUserServices(ctx, session, services); err != nil {
		return fmt.Errorf("%w: failed to update subscriptions", err)
	}

	if len(services) == 0 {
		return r.writePlain("Cleared subscribed services\n")
	}
	return r.writePlain("Subscribed to: %s\n", strings.Join(services, ", "))
}
