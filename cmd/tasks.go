package main

import (
	"context"
	"fmt"

	"github.com/duskfall/mstro/internal/shared"
	"github.com/urfave/cli/v3"
)

// TasksList prints the backend generation task registry.
func (r *Runner) TasksList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	tasks, err := r.studio.Tasks.List(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(tasks, true)
	}

	r.writePlainHeader(fmt.Sprintf("Tasks (%d)", len(tasks)))
	for _, task := range tasks {
		r.writePlain("%s  [%s] %s\n", task.TaskID, task.Kind, task.Status)
	}
	return nil
}

// TasksDelete removes a task from the registry.
func (r *Runner) TasksDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	taskID := cmd.StringArg("task-id")
	if taskID == "" {
		return fmt.Errorf("%w: task id", shared.ErrMissingArgument)
	}

	if err := r.studio.Tasks.Delete(ctx, taskID); err != nil {
		return err
	}
	return r.writePlain("✓ Task %s removed\n", taskID)
}
