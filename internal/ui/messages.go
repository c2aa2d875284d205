package ui

import (
	"github.com/altinukshini/assetflow-tui/internal/model"
)

// Data fetched messages
type DashboardLoadedMsg struct {
	Dashboard *model.Dashboard
	Err       error
}

type AssetsLoadedMsg struct {
	Assets []model.Asset
	Err    error
}

type MovementsLoadedMsg struct {
	Movements []model.Movement
	Err       error
}

type VendorsLoadedMsg struct {
	Vendors []model.Vendor
	Err     error
}

type CostingsLoadedMsg struct {
	Costings []model.Costing
	Err      error
}

type UserLoadedMsg struct {
	User *model.User
	Err  error
}

// Global search messages. Gen is the coordinator generation the message
// belongs to; anything older than the current generation is dropped.
type SearchDebounceMsg struct {
	Gen uint64
}

type SearchDoneMsg struct {
	Gen     uint64
	Results []model.SearchResult
}

// NavigateMsg asks the app to open the screen a link points at.
type NavigateMsg struct {
	Link string
}

// Highlight retry and emphasis timers for the table of one entity type.
type HighlightProbeMsg struct {
	Entity model.EntityType
	Gen    uint64
}

type HighlightClearMsg struct {
	Entity model.EntityType
	Gen    uint64
}

type LogoutDoneMsg struct {
	Err error
}

// Field is one labelled value in the details view.
type Field struct {
	Label string
	Value string
}
