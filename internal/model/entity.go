package model

// EntityType identifies one of the four searchable collections.
type EntityType string

const (
	EntityAsset    EntityType = "asset"
	EntityMovement EntityType = "movement"
	EntityVendor   EntityType = "vendor"
	EntityCosting  EntityType = "costing"
)

// EntityTypes lists the searchable collections in fetch order.
var EntityTypes = []EntityType{EntityAsset, EntityMovement, EntityVendor, EntityCosting}

// Route returns the screen route that lists entities of this type.
func (t EntityType) Route() string {
	switch t {
	case EntityAsset:
		return "/assets"
	case EntityMovement:
		return "/movements"
	case EntityVendor:
		return "/vendors"
	case EntityCosting:
		return "/costing"
	default:
		return ""
	}
}

// PageLabel is the human-readable name of the owning screen.
func (t EntityType) PageLabel() string {
	switch t {
	case EntityAsset:
		return "Assets"
	case EntityMovement:
		return "Movements"
	case EntityVendor:
		return "Vendors"
	case EntityCosting:
		return "Costings"
	default:
		return "Unknown"
	}
}

// EntityForRoute is the inverse of Route.
func EntityForRoute(route string) (EntityType, bool) {
	for _, t := range EntityTypes {
		if t.Route() == route {
			return t, true
		}
	}
	return "", false
}

// VendorSummary is the embedded vendor reference returned by the API.
type VendorSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AtmSummary is the embedded asset reference returned by the API.
type AtmSummary struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	SerialNumber string `json:"serialNumber,omitempty"`
	Location     string `json:"location,omitempty"`
}
