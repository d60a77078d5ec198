package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/duskfall/mstro/internal/api"
	"github.com/duskfall/mstro/internal/composer"
	"github.com/duskfall/mstro/internal/services"
	"github.com/duskfall/mstro/internal/session"
	"github.com/duskfall/mstro/internal/shared"
	"github.com/duskfall/mstro/internal/store"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	client     *api.Client
	session    *session.Manager
	studio     *services.Studio
	creds      *store.CredStore
	drafts     *store.DraftStore
	settings   *store.SettingsStore
	configs    *composer.ConfigStore
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Client     *api.Client
	Session    *session.Manager
	Studio     *services.Studio
	Creds      *store.CredStore
	Drafts     *store.DraftStore
	Settings   *store.SettingsStore
	Configs    *composer.ConfigStore
	Logger     *log.Logger
	Output     io.Writer
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

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		client:     opts.Client,
		session:    opts.Session,
		studio:     opts.Studio,
		creds:      opts.Creds,
		drafts:     opts.Drafts,
		settings:   opts.Settings,
		configs:    opts.Configs,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger swaps the runner's logger, e.g. to a file logger while the TUI owns stderr.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, songCommand, imageCommand, templateCommand,
		composeCommand, chatCommand, billingCommand, tasksCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// requireStudio guards actions that talk to the backend.
func (r *Runner) requireStudio() error {
	if r.studio == nil {
		return fmt.Errorf("%w: API client not initialized", shared.ErrServiceUnavailable)
	}
	return nil
}

// requireSession guards actions that manage authentication state.
func (r *Runner) requireSession() error {
	if r.session == nil {
		return fmt.Errorf("%w: session unavailable, run 'mstro setup database' first", shared.ErrServiceUnavailable)
	}
	return nil
}

// requireStores guards actions that read or write the local database.
func (r *Runner) requireStores() error {
	if r.configs == nil || r.drafts == nil {
		return fmt.Errorf("%w: local store unavailable, run 'mstro setup database' first", shared.ErrServiceUnavailable)
	}
	return nil
}

// listLimit resolves a --limit flag against the saved preference.
func (r *Runner) listLimit(flag int, image bool) int {
	if flag > 0 {
		return flag
	}
	settings := store.DefaultSettings()
	if r.settings != nil {
		settings = r.settings.Load()
	}
	if image {
		return settings.ImageListLimit
	}
	return settings.SongListLimit
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
