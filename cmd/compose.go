package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/duskfall/mstro/internal/composer"
	"github.com/duskfall/mstro/internal/shared"
	"github.com/urfave/cli/v3"
)

// ComposeShow prints the current song structure and style prompt.
func (r *Runner) ComposeShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStores(); err != nil {
		return err
	}

	arch := r.configs.LoadArchitecture()
	r.writePlain("%s\n", arch.Render())

	if prompt := r.configs.LoadStyleChooser().GenerateStylePrompt(); prompt != "" {
		r.writePlain("Style prompt: %s\n", prompt)
	}
	return nil
}

// ComposeAdd inserts a section and saves the updated structure.
func (r *Runner) ComposeAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStores(); err != nil {
		return err
	}

	kind := cmd.StringArg("kind")
	if kind == "" {
		return fmt.Errorf("%w: section kind", shared.ErrMissingArgument)
	}

	arch := r.configs.LoadArchitecture()
	if err := arch.Add(composer.SectionKind(strings.ToUpper(kind))); err != nil {
		return err
	}
	if err := r.configs.SaveArchitecture(arch); err != nil {
		return fmt.Errorf("failed to save structure: %w", err)
	}
	return r.writePlain("%s\n", arch.Render())
}

// ComposeRemove deletes the section at the given index and saves.
func (r *Runner) ComposeRemove(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStores(); err != nil {
		return err
	}

	arch := r.configs.LoadArchitecture()
	if err := arch.Remove(cmd.Int("index")); err != nil {
		return err
	}
	if err := r.configs.SaveArchitecture(arch); err != nil {
		return fmt.Errorf("failed to save structure: %w", err)
	}
	return r.writePlain("%s\n", arch.Render())
}

// ComposeMove relocates a section and saves.
func (r *Runner) ComposeMove(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStores(); err != nil {
		return err
	}

	arch := r.configs.LoadArchitecture()
	if err := arch.Move(cmd.Int("from"), cmd.Int("to")); err != nil {
		return err
	}
	if err := r.configs.SaveArchitecture(arch); err != nil {
		return fmt.Errorf("failed to save structure: %w", err)
	}
	return r.writePlain("%s\n", arch.Render())
}

// ComposeReset restores the default verse-chorus structure.
func (r *Runner) ComposeReset(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStores(); err != nil {
		return err
	}

	arch := composer.DefaultArchitecture()
	if err := r.configs.SaveArchitecture(arch); err != nil {
		return fmt.Errorf("failed to save structure: %w", err)
	}
	return r.writePlain("%s\n", arch.Render())
}

// ComposeStyle toggles style chooser selections and prints the resulting prompt.
func (r *Runner) ComposeStyle(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStores(); err != nil {
		return err
	}

	chooser := r.configs.LoadStyleChooser()
	if cmd.Bool("reset") {
		chooser.Reset()
	}
	for _, style := range cmd.StringSlice("style") {
		chooser.ToggleStyle(style)
	}
	for _, theme := range cmd.StringSlice("theme") {
		chooser.ToggleTheme(theme)
	}
	for _, instrument := range cmd.StringSlice("instrument") {
		chooser.ToggleInstrument(instrument)
	}

	if err := r.configs.SaveStyleChooser(chooser); err != nil {
		return fmt.Errorf("failed to save style chooser: %w", err)
	}

	r.writePlain("Styles: %s\n", strings.Join(chooser.SelectedStyles, ", "))
	r.writePlain("Themes: %s\n", strings.Join(chooser.SelectedThemes, ", "))
	r.writePlain("Instruments: %s\n", strings.Join(chooser.SelectedInstruments, ", "))
	if prompt := chooser.GenerateStylePrompt(); prompt != "" {
		r.writePlain("Prompt: %s\n", prompt)
	}
	return nil
}

// ComposePrompt prints the generated style prompt on its own.
func (r *Runner) ComposePrompt(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStores(); err != nil {
		return err
	}

	prompt := r.configs.LoadStyleChooser().GenerateStylePrompt()
	if prompt == "" {
		return r.writePlain("No styles selected. Use 'mstro compose style --style pop' to begin.\n")
	}
	return r.writePlain("%s\n", prompt)
}
