package model

// Costing is a billing record for one asset, mirroring the columns of the
// vendor billing sheet.
type Costing struct {
	ID            int64          `json:"id"`
	Atm           *AtmSummary    `json:"atm"`
	Vendor        *VendorSummary `json:"vendor"`
	BaseCost      float64        `json:"baseCost"`
	Hold          float64        `json:"hold"`
	Deduction     float64        `json:"deduction"`
	FinalAmount   float64        `json:"finalAmount"`
	VendorCost    float64        `json:"vendorCost"`
	BillingStatus string         `json:"billingStatus"`
	BillingMonth  string         `json:"billingMonth"`
	Status        string         `json:"status"`
	SubmittedBy   string         `json:"submittedBy"`
	SubmittedDate string         `json:"submittedDate"`
	ApprovedBy    string         `json:"approvedBy"`
	ApprovedDate  string         `json:"approvedDate"`
}

func (c Costing) AtmName() string {
	if c.Atm == nil {
		return ""
	}
	return c.Atm.Name
}

func (c Costing) VendorName() string {
	if c.Vendor == nil {
		return ""
	}
	return c.Vendor.Name
}
