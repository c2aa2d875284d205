package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinukshini/assetflow-tui/internal/model"
)

func fillerAssets(n int) []model.Asset {
	assets := make([]model.Asset, n)
	for i := range assets {
		assets[i] = model.Asset{
			ID:           int64(1000 + i),
			Name:         fmt.Sprintf("Kiosk %02d", i),
			SerialNumber: fmt.Sprintf("SN-%04d", i),
			Location:     "Warehouse",
		}
	}
	return assets
}

func TestSearchAssetLinkPointsAtCollectionPage(t *testing.T) {
	assets := fillerAssets(30)
	assets[23] = model.Asset{ID: 501, Name: "ATM-001", SerialNumber: "X1", Location: "Pune"}

	results := New(10).Search(Collections{Assets: assets}, "ATM-001")

	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, int64(501), r.ID)
	assert.Equal(t, model.EntityAsset, r.EntityType)
	assert.Equal(t, "Assets", r.PageLabel)
	assert.Equal(t, "/assets?highlight=501&page=3", r.Link)
	assert.Equal(t, 3, r.PageNumber)
	assert.Equal(t, "Serial: X1 | Location: Pune", r.Description)
}

func TestSearchPrefixTieKeepsCollectionOrder(t *testing.T) {
	assets := []model.Asset{
		{ID: 1, Name: "ATM-1", Location: "Delhi"},
		{ID: 2, Name: "ATM-10", Location: "Mumbai"},
	}
	results := New(10).Search(Collections{Assets: assets}, "ATM-1")

	require.Len(t, results, 2)
	assert.Equal(t, int64(1), results[0].ID)
	assert.Equal(t, int64(2), results[1].ID)
	assert.Equal(t, 0, results[0].Rank)
	assert.Equal(t, 0, results[1].Rank)
}

func TestSearchPrefixMatchesRankFirst(t *testing.T) {
	cols := Collections{
		Assets: []model.Asset{
			{ID: 1, Name: "Lobby unit", Location: "Pune central"},
		},
		Movements: []model.Movement{
			{ID: 2, Atm: &model.AtmSummary{Name: "Rack"}, FromLocation: "Mumbai", ToLocation: "Pune"},
		},
		Vendors: []model.Vendor{
			{ID: 3, Name: "Pune Logistics", Email: "ops@pl.in", Status: "active"},
		},
		Costings: []model.Costing{
			{ID: 4, Atm: &model.AtmSummary{Name: "pune-kiosk"}, BillingStatus: "billed"},
		},
	}

	results := New(10).Search(cols, "pune")

	require.Len(t, results, 4)
	// Prefix matches in fetch order, then the rest in fetch order.
	assert.Equal(t, model.EntityVendor, results[0].EntityType)
	assert.Equal(t, model.EntityCosting, results[1].EntityType)
	assert.Equal(t, model.EntityAsset, results[2].EntityType)
	assert.Equal(t, model.EntityMovement, results[3].EntityType)
}

func TestSearchMatchesOnlyDesignatedFields(t *testing.T) {
	cols := Collections{
		Assets: []model.Asset{
			{ID: 1, Name: "A", Notes: "needle in notes"},
			{ID: 2, Name: "B", Vendor: &model.VendorSummary{Name: "Needle Corp"}},
		},
		Movements: []model.Movement{
			{ID: 3, Status: "needle"},
			{ID: 4, DocketNo: "DK-NEEDLE-9"},
		},
		Vendors: []model.Vendor{
			{ID: 5, Name: "V", ContactPerson: "needle"},
			{ID: 6, Name: "W", Phone: "needle-line"},
		},
		Costings: []model.Costing{
			{ID: 7, Status: "needle"},
			{ID: 8, Vendor: &model.VendorSummary{Name: "needleworks"}},
		},
	}

	results := New(10).Search(cols, "NEEDLE")

	var ids []int64
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	assert.ElementsMatch(t, []int64{2, 4, 6, 8}, ids)
}

func TestSearchEveryResultContainsQuery(t *testing.T) {
	assets := fillerAssets(50)
	assets[7].Location = "Kolkata"
	queries := []string{"kiosk 1", "sn-00", "ware", "KOLK", "4"}

	eng := New(10)
	for _, q := range queries {
		for _, r := range eng.Search(Collections{Assets: assets}, q) {
			a := assets[findAsset(assets, r.ID)]
			found := false
			for _, f := range AssetFields(a) {
				if strings.Contains(strings.ToLower(f), strings.ToLower(q)) {
					found = true
				}
			}
			assert.Truef(t, found, "result %d does not contain %q", r.ID, q)
		}
	}
}

func TestSearchResultsArePartitionedByRank(t *testing.T) {
	assets := fillerAssets(40)
	results := New(10).Search(Collections{Assets: assets}, "k")
	seenNonPrefix := false
	for _, r := range results {
		if r.Rank == 1 {
			seenNonPrefix = true
		}
		if seenNonPrefix {
			assert.Equal(t, 1, r.Rank, "prefix match after a non-prefix match")
		}
	}
}

func TestSearchBlankQuery(t *testing.T) {
	assert.Nil(t, New(10).Search(Collections{Assets: fillerAssets(3)}, "   "))
}

func TestSearchMissingNestedNames(t *testing.T) {
	cols := Collections{
		Movements: []model.Movement{{ID: 9, FromLocation: "Goa", ToLocation: "Pune"}},
		Costings:  []model.Costing{{ID: 10, BillingStatus: "pending", FinalAmount: 1250.5}},
	}
	results := New(10).Search(cols, "p")

	require.Len(t, results, 2)
	assert.Equal(t, "Unknown Asset", results[0].Title)
	assert.Equal(t, "Goa → Pune", results[1].Description)
	assert.Equal(t, "Vendor: N/A | Amount: ₹1250.5", results[0].Description)
	assert.Equal(t, "/costing?highlight=10&page=1", results[0].Link)
}

func TestNewDefaultsPageSize(t *testing.T) {
	assert.Equal(t, 10, New(0).PageSize())
}

func findAsset(assets []model.Asset, id int64) int {
	for i, a := range assets {
		if a.ID == id {
			return i
		}
	}
	return -1
}
