package api

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/altinukshini/assetflow-tui/internal/model"
)

func (c *Client) DashboardKPIs(ctx context.Context) (*model.DashboardKPIs, error) {
	var kpis model.DashboardKPIs
	if err := c.Get(ctx, "/dashboard/kpis", &kpis); err != nil {
		return nil, fmt.Errorf("get dashboard kpis: %w", err)
	}
	return &kpis, nil
}

func (c *Client) AssetDistribution(ctx context.Context) ([]model.ChartPoint, error) {
	var points []model.ChartPoint
	if err := c.Get(ctx, "/dashboard/charts/distribution", &points); err != nil {
		return nil, fmt.Errorf("get asset distribution: %w", err)
	}
	return points, nil
}

func (c *Client) VendorAllocation(ctx context.Context) ([]model.ChartPoint, error) {
	var points []model.ChartPoint
	if err := c.Get(ctx, "/dashboard/charts/vendor-allocation", &points); err != nil {
		return nil, fmt.Errorf("get vendor allocation: %w", err)
	}
	return points, nil
}

func (c *Client) RecentMovements(ctx context.Context, limit int) ([]model.Movement, error) {
	if limit <= 0 {
		limit = 5
	}
	var movements []model.Movement
	path := "/dashboard/recent-movements?limit=" + strconv.Itoa(limit)
	if err := c.Get(ctx, path, &movements); err != nil {
		return nil, fmt.Errorf("get recent movements: %w", err)
	}
	return movements, nil
}

// Dashboard section names, as reported in Dashboard.Unavailable.
const (
	SectionKPIs             = "kpis"
	SectionDistribution     = "distribution"
	SectionVendorAllocation = "vendor allocation"
	SectionRecentMovements  = "recent movements"
	SectionMovements        = "movements"
	SectionCostings         = "costings"
)

// LoadDashboard fetches every dashboard section concurrently. A failed
// section is logged and left empty; an error is returned only when every
// section failed.
func (c *Client) LoadDashboard(ctx context.Context, recentLimit int) (*model.Dashboard, error) {
	var (
		d    model.Dashboard
		mu   sync.Mutex
		errs []error
		g    errgroup.Group
	)
	section := func(name string, load func() error) {
		g.Go(func() error {
			if err := load(); err != nil {
				c.log.WithError(err).WithField("section", name).Warn("dashboard section unavailable")
				mu.Lock()
				d.Unavailable = append(d.Unavailable, name)
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}

	section(SectionKPIs, func() error {
		kpis, err := c.DashboardKPIs(ctx)
		if err != nil {
			return err
		}
		d.KPIs = *kpis
		return nil
	})
	section(SectionDistribution, func() error {
		var err error
		d.Distribution, err = c.AssetDistribution(ctx)
		return err
	})
	section(SectionVendorAllocation, func() error {
		var err error
		d.VendorAllocation, err = c.VendorAllocation(ctx)
		return err
	})
	section(SectionRecentMovements, func() error {
		var err error
		d.RecentMovements, err = c.RecentMovements(ctx, recentLimit)
		return err
	})
	section(SectionMovements, func() error {
		movements, err := c.ListMovements(ctx)
		if err != nil {
			return err
		}
		d.Totals.Movements = len(movements)
		return nil
	})
	section(SectionCostings, func() error {
		costings, err := c.ListCostings(ctx)
		if err != nil {
			return err
		}
		for _, co := range costings {
			d.Totals.FinalCostings += co.FinalAmount
			d.Totals.VendorCosts += co.VendorCost
		}
		return nil
	})

	// Sections report their own failures.
	_ = g.Wait()
	if len(errs) == dashboardSections {
		return nil, fmt.Errorf("load dashboard: %w", errors.Join(errs...))
	}
	sort.Strings(d.Unavailable)
	return &d, nil
}

const dashboardSections = 6
