package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/watchcall/watchcall/internal/services"
)

// Register creates an account and persists the session token.
func (r *Runner) Register(ctx context.Context, cmd *cli.Command) error {
	password, err := r.readPassword()
	if err != nil {
		return err
	}

	session, err := r.backend.Register(ctx, cmd.String("username"), cmd.String("email"), password)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	if err := r.saveSession(session.Token); err != nil {
		return err
	}

	r.logger.Info("account created", "username", session.User.Username)
	return r.writePlain("Registered and logged in as %s\n", session.User.Username)
}

// Login authenticates and persists the session token.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	password, err := r.readPassword()
	if err != nil {
		return err
	}

	session, err := r.backend.Login(ctx, cmd.String("username"), password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := r.saveSession(session.Token); err != nil {
		return err
	}

	return r.writePlain("Logged in as %s\n", session.User.Username)
}

// Whoami shows the account behind the stored session.
func (r *Runner) Whoami(ctx context.Context, cmd *cli.Command) error {
	session, err := r.requireSession()
	if err != nil {
		return err
	}

	user, err := r.backend.Whoami(ctx, session)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, cmd.Bool("pretty"))
	}
	return r.writePlain("%s <%s>\n", user.Username, user.Email)
}

// Logout discards the stored session token.
func (r *Runner) Logout(ctx context.Context, cmd *cli.Command) error {
	path, err := r.resolveTokenPath()
	if err != nil {
		return err
	}
	if err := services.ClearToken(path); err != nil {
		return err
	}
	return r.writePlain("Logged out\n")
}

func (r *Runner) saveSession(token string) error {
	path, err := r.resolveTokenPath()
	if err != nil {
		return err
	}
	return services.SaveToken(path, token)
}

// readPassword prompts on stderr and reads one line from stdin, so piping
// the password in still works.
func (r *Runner) readPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
