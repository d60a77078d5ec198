package services

import (
	"context"
	"fmt"

	"github.com/duskfall/mstro/internal/api"
	"github.com/duskfall/mstro/internal/models"
	"github.com/duskfall/mstro/internal/poll"
	"github.com/duskfall/mstro/internal/shared"
)

// GenerateImageRequest is the image generation submission payload.
type GenerateImageRequest struct {
	Prompt string `json:"prompt"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Validate checks the submission at the service boundary.
func (r *GenerateImageRequest) Validate() error {
	if r.Prompt == "" {
		return fmt.Errorf("%w: prompt is required", shared.ErrInvalidInput)
	}
	if r.Width < 0 || r.Height < 0 {
		return fmt.Errorf("%w: dimensions must be positive", shared.ErrInvalidInput)
	}
	return nil
}

// ImageService covers image generation and the image catalog.
type ImageService struct {
	client  Client
	watcher *poll.Watcher
}

// NewImageService creates an ImageService.
func NewImageService(client Client, watcher *poll.Watcher) *ImageService {
	return &ImageService{client: client, watcher: watcher}
}

// Generate submits an image for generation.
func (s *ImageService) Generate(ctx context.Context, req *GenerateImageRequest) (*models.GenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp models.GenerateResponse
	if err := s.client.PostJSON(ctx, api.ImageGenerate(), req, &resp); err != nil {
		return nil, err
	}
	if err := resp.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedEntity, err)
	}
	return &resp, nil
}

// Status fetches the current job state for a generation task.
func (s *ImageService) Status(ctx context.Context, taskID string) (*models.JobState, error) {
	if taskID == "" {
		return nil, fmt.Errorf("%w: task id", shared.ErrMissingArgument)
	}

	var state models.JobState
	if err := s.client.GetJSON(ctx, api.ImageStatus(taskID), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Await polls the generation task to completion and returns the finished
// image, reloaded from the detail endpoint on SUCCESS.
func (s *ImageService) Await(ctx context.Context, taskID, imageID string, onUpdate poll.UpdateFunc) (*models.Image, error) {
	_, err := s.watcher.Watch(ctx, func(ctx context.Context) (*models.JobState, error) {
		return s.Status(ctx, taskID)
	}, onUpdate)
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, imageID)
}

// List fetches a page of images.
func (s *ImageService) List(ctx context.Context, limit, offset int) (*models.Page[models.Image], error) {
	var page models.Page[models.Image]
	if err := s.client.GetJSON(ctx, api.ImageList(limit, offset), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get fetches a single image.
func (s *ImageService) Get(ctx context.Context, id string) (*models.Image, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: image id", shared.ErrMissingArgument)
	}

	var image models.Image
	if err := s.client.GetJSON(ctx, api.ImageDetail(id), &image); err != nil {
		return nil, err
	}
	if err := image.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedEntity, err)
	}
	return &image, nil
}

// Update applies a partial update and returns the updated image.
func (s *ImageService) Update(ctx context.Context, id string, patch *models.ImagePatch) (*models.Image, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: image id", shared.ErrMissingArgument)
	}
	if patch == nil || patch.Prompt == nil {
		return nil, fmt.Errorf("%w: empty patch", shared.ErrInvalidInput)
	}

	var image models.Image
	if err := s.client.PutJSON(ctx, api.ImageUpdate(id), patch, &image); err != nil {
		return nil, err
	}
	return &image, nil
}

// BulkDelete removes a batch of images in one request.
func (s *ImageService) BulkDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: image ids", shared.ErrMissingArgument)
	}
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("%w: empty image id in batch", shared.ErrInvalidInput)
		}
	}

	return s.client.PostJSON(ctx, api.ImageBulkDelete(), map[string][]string{"ids": ids}, nil)
}
