package services

import (
	"context"
	"fmt"

	"github.com/duskfall/mstro/internal/api"
	"github.com/duskfall/mstro/internal/models"
	"github.com/duskfall/mstro/internal/shared"
)

// TemplateService covers server-stored prompt templates.
type TemplateService struct {
	client Client
}

// NewTemplateService creates a TemplateService.
func NewTemplateService(client Client) *TemplateService {
	return &TemplateService{client: client}
}

// List fetches every template.
func (s *TemplateService) List(ctx context.Context) ([]models.PromptTemplate, error) {
	var resp struct {
		Templates []models.PromptTemplate `json:"templates"`
	}
	if err := s.client.GetJSON(ctx, api.TemplateList(), &resp); err != nil {
		return nil, err
	}
	return resp.Templates, nil
}

// Category fetches the templates of one category.
func (s *TemplateService) Category(ctx context.Context, category string) ([]models.PromptTemplate, error) {
	if category == "" {
		return nil, fmt.Errorf("%w: category", shared.ErrMissingArgument)
	}

	var resp struct {
		Templates []models.PromptTemplate `json:"templates"`
	}
	if err := s.client.GetJSON(ctx, api.TemplateCategory(category), &resp); err != nil {
		return nil, err
	}
	return resp.Templates, nil
}

// Get fetches a single template.
func (s *TemplateService) Get(ctx context.Context, id string) (*models.PromptTemplate, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: template id", shared.ErrMissingArgument)
	}

	var tpl models.PromptTemplate
	if err := s.client.GetJSON(ctx, api.TemplateDetail(id), &tpl); err != nil {
		return nil, err
	}
	if err := tpl.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedEntity, err)
	}
	return &tpl, nil
}

// Update replaces a template's content.
func (s *TemplateService) Update(ctx context.Context, id, content string) (*models.PromptTemplate, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: template id", shared.ErrMissingArgument)
	}
	if content == "" {
		return nil, fmt.Errorf("%w: template content", shared.ErrMissingArgument)
	}

	var tpl models.PromptTemplate
	if err := s.client.PutJSON(ctx, api.TemplateUpdate(id), map[string]string{"content": content}, &tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}
