package services

import (
	"context"
	"fmt"

	"github.com/duskfall/mstro/internal/api"
	"github.com/duskfall/mstro/internal/models"
	"github.com/duskfall/mstro/internal/shared"
)

// BillingService exposes the account credit summary.
type BillingService struct {
	client Client
}

// NewBillingService creates a BillingService.
func NewBillingService(client Client) *BillingService {
	return &BillingService{client: client}
}

// Info fetches the current plan and credit balance.
func (s *BillingService) Info(ctx context.Context) (*models.BillingInfo, error) {
	var info models.BillingInfo
	if err := s.client.GetJSON(ctx, api.BillingInfo(), &info); err != nil {
		return nil, err
	}
	if info.Plan == "" {
		return nil, fmt.Errorf("%w: billing info missing plan", shared.ErrMalformedEntity)
	}
	return &info, nil
}
