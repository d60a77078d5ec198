package main

import (
	"context"
	"fmt"

	"github.com/duskfall/mstro/internal/models"
	"github.com/duskfall/mstro/internal/shared"
	"github.com/urfave/cli/v3"
)

// TemplateList lists prompt templates, optionally filtered by category.
func (r *Runner) TemplateList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	category := cmd.String("category")

	var templates []models.PromptTemplate
	var err error
	if category != "" {
		templates, err = r.studio.Templates.Category(ctx, category)
	} else {
		templates, err = r.studio.Templates.List(ctx)
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(templates, true)
	}

	r.writePlainHeader(fmt.Sprintf("Templates (%d)", len(templates)))
	for _, tpl := range templates {
		r.writePlain("%s  [%s] %s\n", tpl.ID, tpl.Category, tpl.Name)
	}
	return nil
}

// TemplateShow fetches and prints a single template.
func (r *Runner) TemplateShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: template id", shared.ErrMissingArgument)
	}

	tpl, err := r.studio.Templates.Get(ctx, id)
	if err != nil {
		return err
	}

	r.writePlainHeader(tpl.Name)
	r.writePlain("ID: %s\nCategory: %s\n", tpl.ID, tpl.Category)
	r.writePlainln("%s", tpl.Content)
	return nil
}

// TemplateUpdate replaces a template's content from a flag or file.
func (r *Runner) TemplateUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: template id", shared.ErrMissingArgument)
	}

	content := cmd.String("content")
	if file := cmd.String("content-file"); file != "" {
		if content != "" {
			return fmt.Errorf("%w: cannot specify both --content and --content-file", shared.ErrInvalidArgument)
		}
		data, err := shared.VerifyAndReadFile(file)
		if err != nil {
			return err
		}
		content = string(data)
	}
	if content == "" {
		return fmt.Errorf("%w: --content or --content-file", shared.ErrMissingArgument)
	}

	tpl, err := r.studio.Templates.Update(ctx, id, content)
	if err != nil {
		return err
	}

	r.writePlain("✓ Template %s updated\n", tpl.ID)
	return nil
}
