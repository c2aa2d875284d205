package model

import (
	"encoding/json"
	"strconv"
)

type DashboardKPIs struct {
	TotalAssets      int64   `json:"totalAssets"`
	ActiveAssets     int64   `json:"activeAssets"`
	IdleAssets       int64   `json:"idleAssets"`
	InMaintenance    int64   `json:"inMaintenance"`
	AssetTurnover    float64 `json:"assetTurnover"`
	RiskScore        int     `json:"riskScore"`
	TotalVendors     int64   `json:"totalVendors"`
	ActiveVendors    int64   `json:"activeVendors"`
	PendingMovements int64   `json:"pendingMovements"`
	PendingApprovals int64   `json:"pendingApprovals"`
}

// ChartPoint is a single labelled value of a dashboard chart. The API sends
// the value as either a number or a numeric string.
type ChartPoint struct {
	Name  string     `json:"name"`
	Value ChartValue `json:"value"`
	Color string     `json:"color"`
	Label string     `json:"label"`
}

type ChartValue float64

func (v *ChartValue) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*v = ChartValue(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*v = 0
		return nil
	}
	*v = ChartValue(f)
	return nil
}

// DashboardTotals are derived from the full movement and costing lists.
type DashboardTotals struct {
	Movements     int
	FinalCostings float64
	VendorCosts   float64
}

// Dashboard is everything the summary screen shows. Sections that failed to
// load are left empty and named in Unavailable.
type Dashboard struct {
	KPIs             DashboardKPIs
	Totals           DashboardTotals
	Distribution     []ChartPoint
	VendorAllocation []ChartPoint
	RecentMovements  []Movement
	Unavailable      []string
}
