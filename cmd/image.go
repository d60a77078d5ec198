package main

import (
	"context"
	"fmt"

	"github.com/duskfall/mstro/internal/models"
	"github.com/duskfall/mstro/internal/poll"
	"github.com/duskfall/mstro/internal/services"
	"github.com/duskfall/mstro/internal/shared"
	"github.com/duskfall/mstro/internal/store"
	"github.com/urfave/cli/v3"
)

// ImageGenerate submits an image generation job, optionally polling it to completion.
func (r *Runner) ImageGenerate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	prompt := cmd.String("prompt")
	width := cmd.Int("width")
	height := cmd.Int("height")
	wait := cmd.Bool("wait")

	if r.drafts != nil {
		draft := store.ImageDraft{Prompt: prompt, Width: width, Height: height}
		if err := r.drafts.SaveImage(draft); err != nil {
			r.logger.Warnf("failed to save draft: %v", err)
		}
	}

	req := &services.GenerateImageRequest{Prompt: prompt, Width: width, Height: height}
	resp, err := r.studio.Images.Generate(ctx, req)
	if err != nil {
		return err
	}

	r.logger.Info("generation submitted", "task_id", resp.TaskID, "image_id", resp.ImageID)

	if !wait {
		r.writePlain("✓ Generation submitted\nTask: %s\n", resp.TaskID)
		r.writePlain("Run 'mstro image status %s' to poll progress\n", resp.TaskID)
		return nil
	}

	var last string
	image, err := r.studio.Images.Await(ctx, resp.TaskID, resp.ImageID, func(state *models.JobState) {
		if line := poll.StatusLine(state); line != last {
			last = line
			r.writePlain("… %s\n", line)
		}
	})
	if err != nil {
		return err
	}

	if r.drafts != nil {
		r.drafts.ClearImage()
	}

	r.writePlain("\n")
	return r.printImage(image)
}

// ImageStatus checks a generation job without waiting on it.
func (r *Runner) ImageStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	taskID := cmd.StringArg("task-id")
	if taskID == "" {
		return fmt.Errorf("%w: task id", shared.ErrMissingArgument)
	}

	state, err := r.studio.Images.Status(ctx, taskID)
	if err != nil {
		return err
	}

	r.writePlain("%s\n", poll.StatusLine(state))
	return r.writeJSON(state, true)
}

// ImageList lists images, using the saved preference when --limit is absent.
func (r *Runner) ImageList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	limit := r.listLimit(cmd.Int("limit"), true)
	offset := cmd.Int("offset")

	r.logger.Infof("listing images with limit %v", limit)

	page, err := r.studio.Images.List(ctx, limit, offset)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	r.writePlainHeader(fmt.Sprintf("Images (%d of %d)", len(page.Items), page.Pagination.Total))
	for _, image := range page.Items {
		r.writePlain("%s  %s [%s]\n", image.ID, shared.Truncate(image.Prompt, 50), image.Status)
	}
	if page.Pagination.HasMore {
		r.writePlain("\nMore available: rerun with --offset %d\n", offset+len(page.Items))
	}
	return nil
}

// ImageShow fetches and prints a single image.
func (r *Runner) ImageShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: image id", shared.ErrMissingArgument)
	}

	image, err := r.studio.Images.Get(ctx, id)
	if err != nil {
		return err
	}
	return r.printImage(image)
}

// ImageUpdate patches an image's prompt.
func (r *Runner) ImageUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: image id", shared.ErrMissingArgument)
	}

	prompt := cmd.String("prompt")
	image, err := r.studio.Images.Update(ctx, id, &models.ImagePatch{Prompt: &prompt})
	if err != nil {
		return err
	}

	r.writePlain("✓ Image updated\n")
	return r.printImage(image)
}

// ImageDelete removes one or more images in a single batch request.
func (r *Runner) ImageDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	ids := cmd.StringSlice("id")
	if err := r.studio.Images.BulkDelete(ctx, ids); err != nil {
		return err
	}
	return r.writePlain("✓ Deleted %d images\n", len(ids))
}

// printImage writes a human-readable image summary.
func (r *Runner) printImage(image *models.Image) error {
	r.writePlainHeader(fmt.Sprintf("Image %s", image.ID))
	r.writePlain("Status: %s\n", image.Status)
	if image.Prompt != "" {
		r.writePlain("Prompt: %s\n", image.Prompt)
	}
	if image.Width > 0 && image.Height > 0 {
		r.writePlain("Size: %dx%d\n", image.Width, image.Height)
	}
	if image.URL != "" {
		r.writePlain("URL: %s\n", image.URL)
	}
	return nil
}
