package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/duskfall/mstro/internal/shared"
	"github.com/duskfall/mstro/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for song generation.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}
	if err := r.requireStores(); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/mstro-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, log.DebugLevel)
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.studio.Songs, r.drafts, r.configs)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
