package services

import (
	"context"
	"fmt"

	"github.com/duskfall/mstro/internal/api"
	"github.com/duskfall/mstro/internal/models"
	"github.com/duskfall/mstro/internal/shared"
)

// TaskService exposes the diagnostic task registry.
type TaskService struct {
	client Client
}

// NewTaskService creates a TaskService.
func NewTaskService(client Client) *TaskService {
	return &TaskService{client: client}
}

// List fetches every registered task.
func (s *TaskService) List(ctx context.Context) ([]models.TaskInfo, error) {
	var resp struct {
		Tasks []models.TaskInfo `json:"tasks"`
	}
	if err := s.client.GetJSON(ctx, api.TaskList(), &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// Delete removes a finished task from the registry.
func (s *TaskService) Delete(ctx context.Context, taskID string) error {
	if taskID == "" {
		return fmt.Errorf("%w: task id", shared.ErrMissingArgument)
	}
	return s.client.DeleteJSON(ctx, api.TaskDelete(taskID), nil, nil)
}
