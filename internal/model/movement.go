package model

type Movement struct {
	ID               int64       `json:"id"`
	Atm              *AtmSummary `json:"atm"`
	AssetName        string      `json:"assetName"`
	AssetID          int64       `json:"assetId"`
	FromLocation     string      `json:"fromLocation"`
	ToLocation       string      `json:"toLocation"`
	MovementType     string      `json:"movementType"`
	Status           string      `json:"status"`
	InitiatedBy      string      `json:"initiatedBy"`
	InitiatedDate    string      `json:"initiatedDate"`
	ExpectedDelivery string      `json:"expectedDelivery"`
	ActualDelivery   string      `json:"actualDelivery"`
	DocketNo         string      `json:"docketNo"`
	BusinessGroup    string      `json:"businessGroup"`
	ModeOfBill       string      `json:"modeOfBill"`
}

// AtmName returns the moved asset's name. The nested reference wins over
// the denormalized assetName field.
func (m Movement) AtmName() string {
	if m.Atm != nil && m.Atm.Name != "" {
		return m.Atm.Name
	}
	return m.AssetName
}
