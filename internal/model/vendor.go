package model

type Vendor struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Status          string  `json:"status"`
	ContactPerson   string  `json:"contactPerson"`
	AssetsAllocated int     `json:"assetsAllocated"`
	ActiveSites     int     `json:"activeSites"`
	TotalCost       float64 `json:"totalCost"`
	FreightCategory string  `json:"freightCategory"`
	Rating          float64 `json:"rating"`
	JoinedDate      string  `json:"joinedDate"`
}
