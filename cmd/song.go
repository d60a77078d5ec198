package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/duskfall/mstro/internal/formatter"
	"github.com/duskfall/mstro/internal/models"
	"github.com/duskfall/mstro/internal/poll"
	"github.com/duskfall/mstro/internal/services"
	"github.com/duskfall/mstro/internal/shared"
	"github.com/duskfall/mstro/internal/store"
	"github.com/urfave/cli/v3"
)

// SongGenerate submits a song generation job, optionally polling it to completion.
//
// The form values are saved as a draft before submission and cleared only after
// a successful --wait run, mirroring the TUI's draft lifecycle.
func (r *Runner) SongGenerate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	title := cmd.String("title")
	style := cmd.String("style")
	instrumental := cmd.Bool("instrumental")
	wait := cmd.Bool("wait")

	lyrics := cmd.String("lyrics")
	if file := cmd.String("lyrics-file"); file != "" {
		data, err := shared.VerifyAndReadFile(file)
		if err != nil {
			return err
		}
		lyrics = string(data)
	}

	if style == "" && r.configs != nil {
		style = r.configs.LoadStyleChooser().GenerateStylePrompt()
		if style != "" {
			r.logger.Info("using saved style chooser prompt", "style", style)
		}
	}

	if r.drafts != nil {
		draft := store.SongDraft{Title: title, Lyrics: lyrics, Style: style, Instrumental: instrumental}
		if err := r.drafts.SaveSong(draft); err != nil {
			r.logger.Warnf("failed to save draft: %v", err)
		}
	}

	req := &services.GenerateSongRequest{Title: title, Style: style, Lyrics: lyrics, Instrumental: instrumental}
	resp, err := r.studio.Songs.Generate(ctx, req)
	if err != nil {
		return err
	}

	r.logger.Info("generation submitted", "task_id", resp.TaskID, "song_id", resp.SongID)

	if !wait {
		r.writePlain("✓ Generation submitted\nTask: %s\n", resp.TaskID)
		if resp.SongID != "" {
			r.writePlain("Song: %s\n", resp.SongID)
		}
		r.writePlain("Run 'mstro song status %s' to poll progress\n", resp.TaskID)
		return nil
	}

	song, err := r.awaitSong(ctx, resp.TaskID, resp.SongID)
	if err != nil {
		return err
	}

	if r.drafts != nil {
		r.drafts.ClearSong()
	}

	r.writePlain("\n")
	return r.printSong(song)
}

// awaitSong polls the job, printing each status line once as the stage changes.
func (r *Runner) awaitSong(ctx context.Context, taskID, songID string) (*models.Song, error) {
	var last string
	return r.studio.Songs.Await(ctx, taskID, songID, func(state *models.JobState) {
		if line := poll.StatusLine(state); line != last {
			last = line
			r.writePlain("… %s\n", line)
		}
	})
}

// SongStatus checks a generation job without waiting on it.
func (r *Runner) SongStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	taskID := cmd.StringArg("task-id")
	if taskID == "" {
		return fmt.Errorf("%w: task id", shared.ErrMissingArgument)
	}

	state, err := r.studio.Songs.Status(ctx, taskID)
	if err != nil {
		return err
	}

	r.writePlain("%s\n", poll.StatusLine(state))
	return r.writeJSON(state, true)
}

// SongList lists songs, using the saved preference when --limit is absent.
func (r *Runner) SongList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	limit := r.listLimit(cmd.Int("limit"), false)
	offset := cmd.Int("offset")

	r.logger.Infof("listing songs with limit %v", limit)

	page, err := r.studio.Songs.List(ctx, limit, offset)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	r.writePlainHeader(fmt.Sprintf("Songs (%d of %d)", len(page.Items), page.Pagination.Total))
	for _, song := range page.Items {
		r.writePlain("%s\n", formatSongLine(song))
	}
	if page.Pagination.HasMore {
		r.writePlain("\nMore available: rerun with --offset %d\n", offset+len(page.Items))
	}
	return nil
}

// SongShow fetches and prints a single song.
func (r *Runner) SongShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}

	song, err := r.studio.Songs.Get(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("open") {
		if song.AudioURL == "" {
			return fmt.Errorf("%w: song has no audio yet", shared.ErrNotFound)
		}
		if err := shared.OpenBrowser(song.AudioURL); err != nil {
			r.logger.Warnf("failed to open browser: %v", err)
		}
	}
	return r.printSong(song)
}

// SongUpdate patches a song with the provided flags; unset flags are left untouched.
func (r *Runner) SongUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}

	patch := &models.SongPatch{}
	if cmd.IsSet("title") {
		v := cmd.String("title")
		patch.Title = &v
	}
	if cmd.IsSet("style") {
		v := cmd.String("style")
		patch.Style = &v
	}
	if cmd.IsSet("lyrics") {
		v := cmd.String("lyrics")
		patch.Lyrics = &v
	}

	song, err := r.studio.Songs.Update(ctx, id, patch)
	if err != nil {
		return err
	}

	r.writePlain("✓ Song updated\n")
	return r.printSong(song)
}

// SongRate submits a 1-5 rating.
func (r *Runner) SongRate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}

	rating := cmd.Int("rating")
	if err := r.studio.Songs.Rate(ctx, id, rating); err != nil {
		return err
	}
	return r.writePlain("✓ Rated %s %d/5\n", id, rating)
}

// SongStems requests stem extraction and prints the resulting tracks.
func (r *Runner) SongStems(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}

	r.writePlain("Extracting stems, this can take a while...\n")

	result, err := r.studio.Songs.Stems(ctx, id)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(result.Stems))
	for name := range result.Stems {
		names = append(names, name)
	}
	sort.Strings(names)

	r.writePlain("✓ Stems ready for %s\n", result.SongID)
	for _, name := range names {
		r.writePlain("%s: %s\n", name, result.Stems[name])
	}
	return nil
}

// SongExport writes songs to CSV, Markdown, or plain text.
func (r *Runner) SongExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	format := cmd.String("format")
	output := cmd.String("output")

	switch format {
	case "markdown", "md":
		id := cmd.String("id")
		if id == "" {
			return fmt.Errorf("%w: --id is required for markdown export", shared.ErrMissingArgument)
		}
		song, err := r.studio.Songs.Get(ctx, id)
		if err != nil {
			return err
		}
		result, err := formatter.WriteSongMarkdownExport(song, output)
		if err != nil {
			return fmt.Errorf("markdown export failed: %w", err)
		}
		r.writePlain("✓ Exported to %s\n", result.Directory)
		if result.CoverImage != "" {
			r.writePlain("Cover image: %s\n", result.CoverImage)
		}
		return nil

	case "csv":
		songs, err := r.fetchSongs(ctx, cmd.Int("limit"))
		if err != nil {
			return err
		}
		result, err := formatter.WriteSongCSVExport(songs, output)
		if err != nil {
			return fmt.Errorf("CSV export failed: %w", err)
		}
		return r.writePlain("✓ Exported %d songs to %s\n", len(songs), result.SongsFile)

	case "text", "txt":
		songs, err := r.fetchSongs(ctx, cmd.Int("limit"))
		if err != nil {
			return err
		}
		data := formatter.SongsToText(songs)
		if output == "" {
			_, err := r.output.Write(data)
			return err
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		return r.writePlain("✓ Exported %d songs to %s\n", len(songs), output)

	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// SongDownload fetches audio files for library songs concurrently.
func (r *Runner) SongDownload(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	songs, err := r.fetchSongs(ctx, cmd.Int("limit"))
	if err != nil {
		return err
	}

	r.writePlain("Downloading audio for %d songs...\n", len(songs))

	result, err := formatter.BulkDownload(ctx, songs, formatter.BulkDownloadOpts{
		OutputDir:  cmd.String("output-dir"),
		NumWorkers: cmd.Int("workers"),
	})
	if err != nil {
		return fmt.Errorf("bulk download failed: %w", err)
	}

	r.writePlain("✓ Downloaded %d of %d songs to %s\n", result.Succeeded, result.TotalSongs, result.OutputDirectory)
	for _, item := range result.Results {
		if !item.Success {
			r.writePlain("✗ %s: %v\n", item.Title, item.Error)
		}
	}
	return nil
}

// fetchSongs pulls up to limit songs from the library for export operations.
func (r *Runner) fetchSongs(ctx context.Context, limit int) ([]models.Song, error) {
	page, err := r.studio.Songs.List(ctx, limit, 0)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// printSong writes a human-readable song summary.
func (r *Runner) printSong(song *models.Song) error {
	r.writePlainHeader(song.Title)
	r.writePlain("ID: %s\nStatus: %s\n", song.ID, song.Status)
	if song.Style != "" {
		r.writePlain("Style: %s\n", song.Style)
	}
	if song.Duration > 0 {
		r.writePlain("Duration: %s\n", shared.FormatDuration(song.Duration))
	}
	if song.Rating > 0 {
		r.writePlain("Rating: %d/5\n", song.Rating)
	}
	if song.Instrumental {
		r.writePlain("Instrumental: yes\n")
	}
	if song.AudioURL != "" {
		r.writePlain("Audio: %s\n", song.AudioURL)
	}
	if song.ImageURL != "" {
		r.writePlain("Cover: %s\n", song.ImageURL)
	}
	if song.Lyrics != "" {
		r.writePlainln("%s", song.Lyrics)
	}
	return nil
}

// formatSongLine renders one library row for plain list output.
func formatSongLine(song models.Song) string {
	line := fmt.Sprintf("%s  %s [%s]", song.ID, shared.Truncate(song.Title, 40), song.Status)
	if song.Duration > 0 {
		line += fmt.Sprintf(" %s", shared.FormatDuration(song.Duration))
	}
	if song.Rating > 0 {
		line += fmt.Sprintf(" ★%d", song.Rating)
	}
	return line
}
