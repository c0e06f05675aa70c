// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
		&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
	}
}

// setupCommand initializes the database and config file.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize config file, database, and migrations",
		Flags:  []cli.Flag{configFlag()},
		Action: r.SetupDatabase,
	}
}

// adminCommand holds operations that touch the database directly.
func adminCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Administrative operations",
		Commands: []*cli.Command{
			{
				Name:  "promote",
				Usage: "Grant a user admin rights",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "username"},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.PromoteAdmin,
			},
		},
	}
}

// serveCommand runs the WatchCall backend.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the WatchCall HTTP backend",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Serve,
	}
}

// authCommand handles account and session operations.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Account and session operations",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create an account and start a session",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Required: true},
				},
				Action: r.Register,
			},
			{
				Name:  "login",
				Usage: "Log in and persist the session token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
				},
				Action: r.Login,
			},
			{
				Name:   "whoami",
				Usage:  "Show the logged-in account",
				Flags:  jsonFlags(),
				Action: r.Whoami,
			},
			{
				Name:   "logout",
				Usage:  "Discard the stored session token",
				Action: r.Logout,
			},
		},
	}
}

// listsCommand handles movie list operations.
func listsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "lists",
		Aliases: []string{"ls"},
		Usage:   "Movie list operations",
		Commands: []*cli.Command{
			{
				Name:   "all",
				Usage:  "Show every list with its movies",
				Flags:  jsonFlags(),
				Action: r.ListsAll,
			},
			{
				Name:  "create",
				Usage: "Create a new list",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags:  jsonFlags(),
				Action: r.ListsCreate,
			},
			{
				Name:  "delete",
				Usage: "Delete a list (default lists are protected)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.ListsDelete,
			},
			{
				Name:  "add",
				Usage: "Add a movie to a list",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "list", Aliases: []string{"l"}, Usage: "List id (defaults to the default list)"},
					&cli.StringFlag{Name: "movie", Aliases: []string{"m"}, Usage: "Catalog movie id", Required: true},
				},
				Action: r.ListsAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove a movie from a list",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "list", Aliases: []string{"l"}, Usage: "List id", Required: true},
					&cli.StringFlag{Name: "movie", Aliases: []string{"m"}, Usage: "Catalog movie id", Required: true},
				},
				Action: r.ListsRemove,
			},
			{
				Name:  "export",
				Usage: "Export a list to csv, markdown, or txt",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "list", Aliases: []string{"l"}, Usage: "List id", Required: true},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Export format: csv, markdown, txt", Value: "csv"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file path"},
				},
				Action: r.ListsExport,
			},
		},
	}
}

// searchCommand runs a one-shot catalog search.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the movie catalog",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags:  jsonFlags(),
		Action: r.Search,
	}
}

// movieCommand handles single-movie lookups.
func movieCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "movie",
		Usage: "Movie detail operations",
		Commands: []*cli.Command{
			{
				Name:  "info",
				Usage: "Show metadata and where to watch",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  jsonFlags(),
				Action: r.MovieInfo,
			},
			{
				Name:  "open",
				Usage: "Open the movie's IMDb page in the browser",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.MovieOpen,
			},
		},
	}
}

// servicesCommand handles the streaming service catalog and preferences.
func servicesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "services",
		Usage: "Streaming service catalog and subscriptions",
		Commands: []*cli.Command{
			{
				Name:   "all",
				Usage:  "Show the service catalog",
				Flags:  jsonFlags(),
				Action: r.ServicesAll,
			},
			{
				Name:   "mine",
				Usage:  "Show subscribed services",
				Flags:  jsonFlags(),
				Action: r.ServicesMine,
			},
			{
				Name:  "set",
				Usage: "Replace subscribed services (comma separated)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "services"},
				},
				Action: r.ServicesSet,
			},
		},
	}
}

// tuiCommand launches the interactive terminal UI.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive terminal UI",
		Flags:  []cli.Flag{configFlag()},
		Action: r.TUI,
	}
}
