package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"github.com/watchcall/watchcall/internal/models"
	"github.com/watchcall/watchcall/internal/services"
	"github.com/watchcall/watchcall/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	backend    services.Backend
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	tokenPath  string
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Backend    services.Backend
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	TokenPath  string
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Config.Client.Timeout()}
	}
	if opts.Backend == nil {
		opts.Backend = services.NewClient(opts.Config.Client.BaseURL, opts.HTTPClient)
	}
	if opts.TokenPath == "" {
		opts.TokenPath = opts.Config.Client.TokenPath
	}

	return &Runner{
		config:     opts.Config,
		backend:    opts.Backend,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		tokenPath:  opts.TokenPath,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, adminCommand, authCommand, listsCommand, searchCommand, movieCommand, servicesCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger swaps the runner's logger, used by the TUI to redirect logs to a file.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// session loads the persisted token. Commands that need identity call
// requireSession instead.
func (r *Runner) session() (models.Session, error) {
	path, err := r.resolveTokenPath()
	if err != nil {
		return models.Session{}, err
	}

	token, err := services.LoadToken(path)
	if err != nil {
		return models.Session{}, err
	}
	return models.Session{Token: token}, nil
}

// requireSession fails with the uniform unauthorized error when no session
// token is stored.
func (r *Runner) requireSession() (models.Session, error) {
	session, err := r.session()
	if err != nil {
		return models.Session{}, err
	}
	if !session.Valid() {
		return models.Session{}, fmt.Errorf("%w: run 'watchcall auth login' first", shared.ErrUnauthorized)
	}
	return session, nil
}

func (r *Runner) resolveTokenPath() (string, error) {
	if r.tokenPath != "" {
		return r.tokenPath, nil
	}
	return services.DefaultTokenPath()
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// loadConfig resolves the --config flag, falling back to defaults when the
// file is absent or unreadable.
func (r *Runner) loadConfig(cmd *cli.Command) *shared.Config {
	configPath := cmd.String("config")
	if configPath == "" {
		return r.config
	}
	if _, err := os.Stat(configPath); err != nil {
		return r.config
	}
	config, err := shared.LoadConfig(configPath)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "error", err)
		return r.config
	}
	return config
}
