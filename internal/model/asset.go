package model

type Asset struct {
	ID                  int64          `json:"id"`
	Name                string         `json:"name"`
	SerialNumber        string         `json:"serialNumber"`
	AssetStatus         string         `json:"assetStatus"`
	Location            string         `json:"location"`
	Branch              string         `json:"branch"`
	Vendor              *VendorSummary `json:"vendor"`
	Value               float64        `json:"value"`
	BillingMonth        string         `json:"billingMonth"`
	BillingStatus       string         `json:"billingStatus"`
	InstallationDate    string         `json:"installationDate"`
	LastMaintenanceDate string         `json:"lastMaintenanceDate"`
	PickupDate          string         `json:"pickupDate"`
	Manufacturer        string         `json:"manufacturer"`
	Model               string         `json:"model"`
	CashCapacity        float64        `json:"cashCapacity"`
	Notes               string         `json:"notes"`
}

// VendorName returns the assigned vendor's name, or "" when unassigned.
func (a Asset) VendorName() string {
	if a.Vendor == nil {
		return ""
	}
	return a.Vendor.Name
}
