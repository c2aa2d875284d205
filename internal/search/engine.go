package search

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/altinukshini/assetflow-tui/internal/highlight"
	"github.com/altinukshini/assetflow-tui/internal/model"
	"github.com/altinukshini/assetflow-tui/internal/pagination"
)

// Collections holds the full, unfiltered lists the engine searches. The
// position of an item in its slice determines the page its link points at.
type Collections struct {
	Assets    []model.Asset
	Movements []model.Movement
	Vendors   []model.Vendor
	Costings  []model.Costing
}

// Engine matches and ranks collection items against a query. It performs no
// I/O.
type Engine struct {
	pageSize int
}

// New returns an engine whose links use pageSize. It must equal the page
// size of the tables the links open.
func New(pageSize int) *Engine {
	if pageSize <= 0 {
		pageSize = pagination.DefaultPageSize
	}
	return &Engine{pageSize: pageSize}
}

func (e *Engine) PageSize() int {
	return e.pageSize
}

// Search returns every item with a searchable field containing query,
// case-insensitively. Items whose searchable text starts with the query come
// first; otherwise the order is assets, movements, vendors, costings, each in
// collection order.
func (e *Engine) Search(cols Collections, query string) []model.SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var results []model.SearchResult

	for i, a := range cols.Assets {
		fields := AssetFields(a)
		if !matchAny(fields, q) {
			continue
		}
		desc := fmt.Sprintf("Serial: %s | Location: %s", a.SerialNumber, a.Location)
		results = append(results, e.result(model.EntityAsset, a.ID, i, a.Name, desc, fields, q))
	}

	for i, m := range cols.Movements {
		fields := MovementFields(m)
		if !matchAny(fields, q) {
			continue
		}
		desc := fmt.Sprintf("%s → %s", m.FromLocation, m.ToLocation)
		results = append(results, e.result(model.EntityMovement, m.ID, i, orUnknown(m.AtmName()), desc, fields, q))
	}

	for i, v := range cols.Vendors {
		fields := VendorFields(v)
		if !matchAny(fields, q) {
			continue
		}
		desc := fmt.Sprintf("%s | %s", orNA(v.Email), v.Status)
		results = append(results, e.result(model.EntityVendor, v.ID, i, v.Name, desc, fields, q))
	}

	for i, c := range cols.Costings {
		fields := CostingFields(c)
		if !matchAny(fields, q) {
			continue
		}
		desc := fmt.Sprintf("Vendor: %s | Amount: ₹%s", orNA(c.VendorName()), strconv.FormatFloat(c.FinalAmount, 'f', -1, 64))
		results = append(results, e.result(model.EntityCosting, c.ID, i, orUnknown(c.AtmName()), desc, fields, q))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rank < results[j].Rank
	})
	return results
}

func (e *Engine) result(t model.EntityType, id int64, index int, title, desc string, fields []string, q string) model.SearchResult {
	page := pagination.PageNumber(index, e.pageSize)
	return model.SearchResult{
		ID:          id,
		Title:       title,
		Description: desc,
		EntityType:  t,
		PageLabel:   t.PageLabel(),
		Link:        highlight.Link(t.Route(), id, page),
		PageNumber:  page,
		Rank:        rank(fields, q),
	}
}

// AssetFields returns the fields of an asset eligible for matching.
func AssetFields(a model.Asset) []string {
	return []string{a.Name, a.SerialNumber, a.Location, a.VendorName()}
}

func MovementFields(m model.Movement) []string {
	return []string{m.AtmName(), m.FromLocation, m.ToLocation, m.DocketNo}
}

func VendorFields(v model.Vendor) []string {
	return []string{v.Name, v.Email, v.Phone}
}

func CostingFields(c model.Costing) []string {
	return []string{c.AtmName(), c.VendorName(), c.BillingStatus}
}

func matchAny(fields []string, q string) bool {
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// rank is 0 when the concatenated searchable text starts with q.
func rank(fields []string, q string) int {
	var parts []string
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}
	if strings.HasPrefix(strings.ToLower(strings.Join(parts, " ")), q) {
		return 0
	}
	return 1
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown Asset"
	}
	return s
}
