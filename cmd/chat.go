package main

import (
	"context"
	"fmt"

	"github.com/duskfall/mstro/internal/shared"
	"github.com/urfave/cli/v3"
)

// ChatEnhance rewrites a generation prompt with more detail.
func (r *Runner) ChatEnhance(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	prompt := cmd.StringArg("prompt")
	if prompt == "" {
		return fmt.Errorf("%w: prompt", shared.ErrMissingArgument)
	}

	result, err := r.studio.Chat.Enhance(ctx, prompt)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", result)
}

// ChatTranslate translates text to the target language.
func (r *Runner) ChatTranslate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	text := cmd.StringArg("text")
	if text == "" {
		return fmt.Errorf("%w: text", shared.ErrMissingArgument)
	}

	result, err := r.studio.Chat.Translate(ctx, text, cmd.String("language"))
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", result)
}

// ChatTitle generates a song title from lyrics.
func (r *Runner) ChatTitle(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	lyrics := cmd.String("lyrics")
	if file := cmd.String("lyrics-file"); file != "" {
		data, err := shared.VerifyAndReadFile(file)
		if err != nil {
			return err
		}
		lyrics = string(data)
	}
	if lyrics == "" {
		return fmt.Errorf("%w: --lyrics or --lyrics-file", shared.ErrMissingArgument)
	}

	result, err := r.studio.Chat.GenerateTitle(ctx, lyrics)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", result)
}

// ChatLyrics generates lyrics from a prompt.
func (r *Runner) ChatLyrics(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	prompt := cmd.StringArg("prompt")
	if prompt == "" {
		return fmt.Errorf("%w: prompt", shared.ErrMissingArgument)
	}

	result, err := r.studio.Chat.GenerateLyrics(ctx, prompt)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", result)
}
