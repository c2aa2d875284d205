package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"

	"github.com/altinukshini/assetflow-tui/internal/model"
	"github.com/altinukshini/assetflow-tui/internal/tui/datatable"
	"github.com/altinukshini/assetflow-tui/internal/ui"
)

func columnsFor(entity model.EntityType) []table.Column {
	switch entity {
	case model.EntityAsset:
		return []table.Column{
			{Title: "Asset Name", Width: 18},
			{Title: "Serial", Width: 14},
			{Title: "Location", Width: 18},
			{Title: "Status", Width: 12},
			{Title: "Vendor", Width: 16},
			{Title: "Billing", Width: 12},
		}
	case model.EntityMovement:
		return []table.Column{
			{Title: "Asset", Width: 18},
			{Title: "Docket No", Width: 12},
			{Title: "Route", Width: 30},
			{Title: "Type", Width: 12},
			{Title: "Status", Width: 12},
			{Title: "Mode of Bill", Width: 12},
		}
	case model.EntityVendor:
		return []table.Column{
			{Title: "Vendor", Width: 20},
			{Title: "Email", Width: 24},
			{Title: "Phone", Width: 14},
			{Title: "Status", Width: 10},
			{Title: "Assets", Width: 7},
			{Title: "Total Cost", Width: 14},
			{Title: "Rating", Width: 6},
		}
	case model.EntityCosting:
		return []table.Column{
			{Title: "Asset", Width: 18},
			{Title: "Vendor", Width: 18},
			{Title: "Month", Width: 10},
			{Title: "Base", Width: 12},
			{Title: "Final", Width: 12},
			{Title: "Billing Status", Width: 14},
		}
	}
	return nil
}

func assetRows(assets []model.Asset) []datatable.Row {
	rows := make([]datatable.Row, len(assets))
	for i, a := range assets {
		rows[i] = datatable.Row{
			ID:    a.ID,
			Title: a.Name,
			Cells: []string{a.Name, a.SerialNumber, a.Location, a.AssetStatus, a.VendorName(), a.BillingStatus},
			Fields: []ui.Field{
				{Label: "Serial Number", Value: a.SerialNumber},
				{Label: "Asset Status", Value: a.AssetStatus},
				{Label: "Location", Value: a.Location},
				{Label: "Branch", Value: a.Branch},
				{Label: "Vendor", Value: a.VendorName()},
				{Label: "Manufacturer", Value: a.Manufacturer},
				{Label: "Model", Value: a.Model},
				{Label: "Value", Value: rupees(a.Value)},
				{Label: "Billing Month", Value: a.BillingMonth},
				{Label: "Billing Status", Value: a.BillingStatus},
				{Label: "Installed", Value: a.InstallationDate},
				{Label: "Last Maintenance", Value: a.LastMaintenanceDate},
				{Label: "Pick Up Date", Value: a.PickupDate},
				{Label: "Notes", Value: a.Notes},
			},
		}
	}
	return rows
}

func movementRows(movements []model.Movement) []datatable.Row {
	rows := make([]datatable.Row, len(movements))
	for i, m := range movements {
		name := m.AtmName()
		if name == "" {
			name = "Unknown Asset"
		}
		rows[i] = datatable.Row{
			ID:    m.ID,
			Title: name,
			Cells: []string{name, m.DocketNo, m.FromLocation + " → " + m.ToLocation, m.MovementType, m.Status, m.ModeOfBill},
			Fields: []ui.Field{
				{Label: "From", Value: m.FromLocation},
				{Label: "To", Value: m.ToLocation},
				{Label: "Type", Value: m.MovementType},
				{Label: "Status", Value: m.Status},
				{Label: "Docket No", Value: m.DocketNo},
				{Label: "Business Group", Value: m.BusinessGroup},
				{Label: "Mode of Bill", Value: m.ModeOfBill},
				{Label: "Initiated By", Value: m.InitiatedBy},
				{Label: "Initiated", Value: m.InitiatedDate},
				{Label: "Expected Delivery", Value: m.ExpectedDelivery},
				{Label: "Delivered", Value: m.ActualDelivery},
			},
		}
	}
	return rows
}

func vendorRows(vendors []model.Vendor) []datatable.Row {
	rows := make([]datatable.Row, len(vendors))
	for i, v := range vendors {
		rows[i] = datatable.Row{
			ID:    v.ID,
			Title: v.Name,
			Cells: []string{v.Name, v.Email, v.Phone, v.Status, strconv.Itoa(v.AssetsAllocated), rupees(v.TotalCost), fmt.Sprintf("%.1f", v.Rating)},
			Fields: []ui.Field{
				{Label: "Email", Value: v.Email},
				{Label: "Phone", Value: v.Phone},
				{Label: "Contact Person", Value: v.ContactPerson},
				{Label: "Status", Value: v.Status},
				{Label: "Assets Allocated", Value: strconv.Itoa(v.AssetsAllocated)},
				{Label: "Active Sites", Value: strconv.Itoa(v.ActiveSites)},
				{Label: "Total Cost", Value: rupees(v.TotalCost)},
				{Label: "Freight Category", Value: v.FreightCategory},
				{Label: "Rating", Value: fmt.Sprintf("%.1f", v.Rating)},
				{Label: "Joined", Value: v.JoinedDate},
			},
		}
	}
	return rows
}

func costingRows(costings []model.Costing) []datatable.Row {
	rows := make([]datatable.Row, len(costings))
	for i, c := range costings {
		name := c.AtmName()
		if name == "" {
			name = "Unknown Asset"
		}
		rows[i] = datatable.Row{
			ID:    c.ID,
			Title: name,
			Cells: []string{name, c.VendorName(), c.BillingMonth, rupees(c.BaseCost), rupees(c.FinalAmount), c.BillingStatus},
			Fields: []ui.Field{
				{Label: "Vendor", Value: c.VendorName()},
				{Label: "Billing Month", Value: c.BillingMonth},
				{Label: "Billing Status", Value: c.BillingStatus},
				{Label: "Base Cost", Value: rupees(c.BaseCost)},
				{Label: "Hold", Value: rupees(c.Hold)},
				{Label: "Deduction", Value: rupees(c.Deduction)},
				{Label: "Final Amount", Value: rupees(c.FinalAmount)},
				{Label: "Vendor Cost", Value: rupees(c.VendorCost)},
				{Label: "Status", Value: c.Status},
				{Label: "Submitted By", Value: c.SubmittedBy},
				{Label: "Approved By", Value: c.ApprovedBy},
			},
		}
	}
	return rows
}

func rupees(v float64) string {
	return "₹" + strconv.FormatFloat(v, 'f', -1, 64)
}
