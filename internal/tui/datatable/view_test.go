package datatable

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinukshini/assetflow-tui/internal/highlight"
	"github.com/altinukshini/assetflow-tui/internal/model"
	"github.com/altinukshini/assetflow-tui/internal/ui"
)

// testRows returns n rows with ids starting at 27, so id 42 sits at index 15.
func testRows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		id := int64(27 + i)
		loc := "Pune"
		if i%2 == 1 {
			loc = "Mumbai"
		}
		rows[i] = Row{
			ID:    id,
			Title: fmt.Sprintf("ATM-%03d", id),
			Cells: []string{fmt.Sprintf("ATM-%03d", id), loc},
		}
	}
	return rows
}

func newTable(t *testing.T) Model {
	t.Helper()
	m := New(model.EntityAsset, []table.Column{
		{Title: "Name", Width: 12},
		{Title: "Location", Width: 12},
	})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func probeMsg(t *testing.T, cmd tea.Cmd) ui.HighlightProbeMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(ui.HighlightProbeMsg)
	require.True(t, ok, "expected a probe message")
	return msg
}

func TestPagingKeys(t *testing.T) {
	m := newTable(t)
	m.SetRows(testRows(25), nil)
	assert.Equal(t, 1, m.Page())
	assert.Equal(t, 3, m.TotalPages())

	m, _ = m.Update(runes("l"))
	assert.Equal(t, 2, m.Page())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 3, m.Page(), "paging stops at the last page")
	assert.Len(t, m.RenderedElementIDs(), 5)

	m, _ = m.Update(runes("h"))
	assert.Equal(t, 2, m.Page())
}

func TestTargetSelfNavigatesAndFlashes(t *testing.T) {
	m := newTable(t)
	m.SetRows(testRows(30), nil)

	cmd := m.SetTarget(highlight.Target{HighlightID: "42"})
	assert.Equal(t, 2, m.Page())
	assert.Contains(t, m.RenderedElementIDs(), "highlight-42")

	msg := probeMsg(t, cmd)
	assert.Equal(t, model.EntityAsset, msg.Entity)

	m, cmd = m.Update(msg)
	assert.NotNil(t, cmd, "clear timer scheduled")
	assert.Equal(t, highlight.StateHighlighting, m.Scroller().State())
	assert.Equal(t, 1, m.Scroller().Attempts(), "found on the immediate probe")

	row, ok := m.SelectedRow()
	require.True(t, ok)
	assert.Equal(t, int64(42), row.ID)
	id, ok := m.Scroller().Highlighted()
	require.True(t, ok)
	assert.Equal(t, "highlight-42", id)

	m, _ = m.Update(ui.HighlightClearMsg{Entity: model.EntityAsset, Gen: msg.Gen})
	assert.Equal(t, highlight.StateCleared, m.Scroller().State())
	_, ok = m.Scroller().Highlighted()
	assert.False(t, ok)
}

func TestTargetBeforeDataArrives(t *testing.T) {
	m := newTable(t)
	cmd := m.SetTarget(highlight.Target{HighlightID: "42"})
	msg := probeMsg(t, cmd)

	m, cmd = m.Update(msg)
	assert.NotNil(t, cmd, "retry scheduled while the data is loading")
	assert.Equal(t, highlight.StateSearching, m.Scroller().State())

	m.SetRows(testRows(30), nil)
	assert.Equal(t, 2, m.Page())

	m, _ = m.Update(msg)
	assert.Equal(t, highlight.StateHighlighting, m.Scroller().State())
	assert.Equal(t, 2, m.Scroller().Attempts())
}

func TestExplicitPageIsClamped(t *testing.T) {
	m := newTable(t)
	m.SetRows(testRows(30), nil)
	m.SetTarget(highlight.Target{HighlightID: "30", Page: 9})
	assert.Equal(t, 3, m.Page())
}

func TestExplicitPageWins(t *testing.T) {
	m := newTable(t)
	m.SetRows(testRows(30), nil)
	cmd := m.SetTarget(highlight.Target{HighlightID: "42", Page: 1})
	assert.Equal(t, 1, m.Page())

	// id 42 is on page 2, so the probes on page 1 never find it.
	m, next := m.Update(probeMsg(t, cmd))
	assert.NotNil(t, next)
	assert.Equal(t, highlight.StateSearching, m.Scroller().State())
}

func TestUnknownTargetExhausts(t *testing.T) {
	m := newTable(t)
	m.SetRows(testRows(30), nil)
	cmd := m.SetTarget(highlight.Target{HighlightID: "999"})
	msg := probeMsg(t, cmd)
	assert.Equal(t, 1, m.Page())

	for i := 0; i < 25; i++ {
		m, cmd = m.Update(msg)
		require.NotNil(t, cmd, "retry %d", i+1)
	}
	m, cmd = m.Update(msg)
	assert.Nil(t, cmd)
	assert.Equal(t, highlight.StateExhausted, m.Scroller().State())
	assert.Equal(t, 26, m.Scroller().Attempts())
}

func TestStaleProbeIgnored(t *testing.T) {
	m := newTable(t)
	m.SetRows(testRows(30), nil)

	first := probeMsg(t, m.SetTarget(highlight.Target{HighlightID: "999"}))
	second := probeMsg(t, m.SetTarget(highlight.Target{HighlightID: "28"}))

	m, cmd := m.Update(first)
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.Scroller().Attempts())

	m, _ = m.Update(second)
	assert.Equal(t, highlight.StateHighlighting, m.Scroller().State())
	row, ok := m.SelectedRow()
	require.True(t, ok)
	assert.Equal(t, int64(28), row.ID)
}

func TestProbeForOtherEntityIgnored(t *testing.T) {
	m := newTable(t)
	m.SetRows(testRows(30), nil)
	msg := probeMsg(t, m.SetTarget(highlight.Target{HighlightID: "28"}))
	msg.Entity = model.EntityVendor

	m, cmd := m.Update(msg)
	assert.Nil(t, cmd)
	assert.Equal(t, highlight.StateSearching, m.Scroller().State())
}

func TestEmptyTargetIsIdle(t *testing.T) {
	m := newTable(t)
	m.SetRows(testRows(5), nil)
	assert.Nil(t, m.SetTarget(highlight.Target{}))
	assert.Equal(t, highlight.StateIdle, m.Scroller().State())
}

func TestFilter(t *testing.T) {
	m := newTable(t)
	m.SetRows(testRows(30), nil)
	m, _ = m.Update(runes("l"))
	require.Equal(t, 2, m.Page())

	m, _ = m.Update(runes("f"))
	require.True(t, m.IsFiltering())
	for _, r := range "mumbai" {
		m, _ = m.Update(runes(string(r)))
	}
	assert.Equal(t, "mumbai", m.FilterText())
	assert.Equal(t, 1, m.Page(), "filtering resets to the first page")
	assert.Equal(t, 2, m.TotalPages())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.IsFiltering())
	assert.Equal(t, "mumbai", m.FilterText())

	m, _ = m.Update(runes("f"))
	m, _ = m.Update(runes("zzz"))
	assert.Contains(t, m.View(), "No results found.")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.FilterText())
	assert.Equal(t, 3, m.TotalPages())
}

func TestTargetClearsFilter(t *testing.T) {
	m := newTable(t)
	m.SetRows(testRows(30), nil)
	m, _ = m.Update(runes("f"))
	m, _ = m.Update(runes("mumbai"))
	require.NotEmpty(t, m.FilterText())

	m.SetTarget(highlight.Target{HighlightID: "42"})
	assert.Empty(t, m.FilterText())
	assert.False(t, m.IsFiltering())
	assert.Equal(t, 2, m.Page())
}

func TestViewStates(t *testing.T) {
	m := newTable(t)
	assert.Contains(t, m.View(), "Loading assets...")

	m.SetRows(nil, fmt.Errorf("GET /atms: HTTP 500"))
	assert.Contains(t, m.View(), "Error: GET /atms: HTTP 500")

	m.SetLoading()
	m.SetRows(testRows(12), nil)
	v := m.View()
	assert.True(t, strings.Contains(v, "ATM-027"))
	assert.Contains(t, v, "Page 1 of 2")
}
