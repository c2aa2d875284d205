package api

import (
	"context"
	"fmt"

	"github.com/altinukshini/assetflow-tui/internal/model"
)

// The list endpoints return whole collections; paging happens client-side.

func (c *Client) ListAssets(ctx context.Context) ([]model.Asset, error) {
	var assets []model.Asset
	if err := c.Get(ctx, "/atms", &assets); err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return assets, nil
}

func (c *Client) ListMovements(ctx context.Context) ([]model.Movement, error) {
	var movements []model.Movement
	if err := c.Get(ctx, "/movements", &movements); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return movements, nil
}

func (c *Client) ListVendors(ctx context.Context) ([]model.Vendor, error) {
	var vendors []model.Vendor
	if err := c.Get(ctx, "/vendors", &vendors); err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	return vendors, nil
}

func (c *Client) ListCostings(ctx context.Context) ([]model.Costing, error) {
	var costings []model.Costing
	if err := c.Get(ctx, "/costings", &costings); err != nil {
		return nil, fmt.Errorf("list costings: %w", err)
	}
	return costings, nil
}
