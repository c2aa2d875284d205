// Package datatable is the paged, filterable table shared by every entity
// screen. It resolves highlight targets to a page and flashes the row.
package datatable

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/assetflow-tui/internal/highlight"
	"github.com/altinukshini/assetflow-tui/internal/metrics"
	"github.com/altinukshini/assetflow-tui/internal/model"
	"github.com/altinukshini/assetflow-tui/internal/pagination"
	"github.com/altinukshini/assetflow-tui/internal/ui"
)

// Row is one record. Cells line up with the table's columns; Fields feed
// the details view.
type Row struct {
	ID     int64
	Title  string
	Cells  []string
	Fields []ui.Field
}

// ElementID is the row's highlight anchor.
func (r Row) ElementID() string {
	return highlight.ElementID(r.ID)
}

func (r Row) matches(q string) bool {
	for _, c := range r.Cells {
		if strings.Contains(strings.ToLower(c), q) {
			return true
		}
	}
	return false
}

type Model struct {
	entity  model.EntityType
	table   table.Model
	pager   paginator.Model
	filter  textinput.Model
	metrics *metrics.Metrics

	rows    []Row // server order, unfiltered
	visible []Row
	page    pagination.State

	filtering  bool
	filterText string

	scroller      highlight.Scroller
	target        highlight.Target
	pendingTarget bool // page not yet resolved for target

	loading bool
	err     error
	width   int
	height  int
}

type Option func(*Model)

func WithPageSize(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.page.PageSize = n
		}
	}
}

func WithHighlightOptions(opts highlight.Options) Option {
	return func(m *Model) { m.scroller = highlight.NewScroller(opts) }
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Model) { m.metrics = mt }
}

func New(entity model.EntityType, columns []table.Column, opts ...Option) Model {
	km := table.DefaultKeyMap()
	// Page keys belong to the paginator and 'f' to the filter.
	km.PageDown = ui.Keys.PageDown
	km.PageUp = ui.Keys.PageUp
	km.HalfPageDown = key.NewBinding(key.WithKeys("ctrl+d"))
	km.HalfPageUp = key.NewBinding(key.WithKeys("ctrl+u"))

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithKeyMap(km),
	)

	p := paginator.New()
	p.Type = paginator.Arabic
	p.ArabicFormat = "Page %d of %d"

	fi := textinput.New()
	fi.Prompt = "Filter: "
	fi.Placeholder = "type to filter"
	fi.CharLimit = 128

	m := Model{
		entity:   entity,
		table:    t,
		pager:    p,
		filter:   fi,
		page:     pagination.State{CurrentPage: 1, PageSize: pagination.DefaultPageSize},
		scroller: highlight.NewScroller(highlight.DefaultOptions()),
		loading:  true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.syncStyles()
	return m
}

func (m Model) Entity() model.EntityType { return m.entity }
func (m Model) Page() int                { return m.page.CurrentPage }
func (m Model) TotalPages() int          { return m.page.TotalPages() }
func (m Model) Len() int                 { return len(m.rows) }
func (m Model) IsLoading() bool          { return m.loading }
func (m Model) Err() error               { return m.err }
func (m Model) IsFiltering() bool        { return m.filtering }
func (m Model) FilterText() string       { return m.filterText }
func (m Model) Scroller() highlight.Scroller {
	return m.scroller
}

// SetLoading marks the table as waiting for a fresh load.
func (m *Model) SetLoading() {
	m.loading = true
	m.err = nil
}

// SetRows installs freshly loaded data and, when a highlight target is
// waiting for data, moves to the target's page.
func (m *Model) SetRows(rows []Row, err error) {
	m.loading = false
	m.err = err
	if err != nil {
		return
	}
	m.rows = rows
	m.applyFilter()
	if m.pendingTarget {
		m.resolveTargetPage()
	} else {
		m.setPage(m.page.CurrentPage)
	}
}

// SetTarget starts highlighting the target row. The first probe is sent
// right away; later ones follow the scroller's retry schedule. The local
// filter is cleared so the target's page follows from its position in the
// unfiltered data.
func (m *Model) SetTarget(t highlight.Target) tea.Cmd {
	m.target = t
	gen := m.scroller.Activate(t.ElementID())
	if t.Empty() {
		m.pendingTarget = false
		m.syncStyles()
		return nil
	}
	m.clearFilter()
	m.pendingTarget = true
	if !m.loading && m.err == nil {
		m.resolveTargetPage()
	}
	m.syncStyles()
	entity := m.entity
	return func() tea.Msg {
		return ui.HighlightProbeMsg{Entity: entity, Gen: gen}
	}
}

func (m Model) Target() highlight.Target { return m.target }

// resolveTargetPage picks the page for the current target: an explicit page
// wins (clamped to the data), otherwise the page the row falls on.
func (m *Model) resolveTargetPage() {
	m.pendingTarget = false
	if m.target.Page > 0 {
		m.setPage(pagination.Clamp(m.target.Page, len(m.visible), m.page.PageSize))
		return
	}
	for i, r := range m.rows {
		if r.ElementID() == m.target.ElementID() {
			m.setPage(pagination.PageNumber(i, m.page.PageSize))
			return
		}
	}
	// Unknown id: stay put and let the probes run out.
	m.setPage(m.page.CurrentPage)
}

// PageOf returns the page a record falls on in the unfiltered data, or 0
// when the id is not loaded.
func (m Model) PageOf(id int64) int {
	for i, r := range m.rows {
		if r.ID == id {
			return pagination.PageNumber(i, m.page.PageSize)
		}
	}
	return 0
}

// SelectedRow returns the row under the cursor.
func (m Model) SelectedRow() (Row, bool) {
	start, end := m.page.Bounds()
	i := start + m.table.Cursor()
	if len(m.visible) == 0 || i < start || i >= end {
		return Row{}, false
	}
	return m.visible[i], true
}

// RenderedElementIDs lists the element ids of the rows on screen.
func (m Model) RenderedElementIDs() []string {
	start, end := m.page.Bounds()
	ids := make([]string, 0, end-start)
	for _, r := range m.visible[start:end] {
		ids = append(ids, r.ElementID())
	}
	return ids
}

func (m Model) renderedIndex(elementID string) int {
	for i, id := range m.RenderedElementIDs() {
		if id == elementID {
			return i
		}
	}
	return -1
}

func (m *Model) setPage(p int) {
	m.page.TotalItems = len(m.visible)
	m.page.CurrentPage = pagination.Clamp(p, m.page.TotalItems, m.page.PageSize)

	start, end := m.page.Bounds()
	trows := make([]table.Row, 0, end-start)
	for _, r := range m.visible[start:end] {
		trows = append(trows, table.Row(r.Cells))
	}
	m.table.SetRows(trows)
	m.table.SetCursor(0)

	m.pager.PerPage = m.page.PageSize
	m.pager.SetTotalPages(m.page.TotalItems)
	m.pager.Page = m.page.CurrentPage - 1
	m.syncStyles()
}

func (m *Model) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.filterText))
	if q == "" {
		m.visible = m.rows
		return
	}
	m.visible = make([]Row, 0, len(m.rows))
	for _, r := range m.rows {
		if r.matches(q) {
			m.visible = append(m.visible, r)
		}
	}
}

func (m *Model) clearFilter() {
	m.filtering = false
	m.filterText = ""
	m.filter.SetValue("")
	m.filter.Blur()
	m.applyFilter()
}

// syncStyles shows the flash style while the highlighted row is under the
// cursor.
func (m *Model) syncStyles() {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = ui.StyleSelected
	if id, ok := m.scroller.Highlighted(); ok {
		if r, ok := m.SelectedRow(); ok && r.ElementID() == id {
			s.Selected = ui.StyleFlash
		}
	}
	m.table.SetStyles(s)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case ui.HighlightProbeMsg:
		if msg.Entity != m.entity {
			return m, nil
		}
		cmd = m.probe(msg.Gen)

	case ui.HighlightClearMsg:
		if msg.Entity == m.entity {
			m.scroller.Clear(msg.Gen)
		}

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		switch {
		case key.Matches(msg, ui.Keys.Filter):
			if len(m.rows) > 0 {
				m.filtering = true
				cmd = m.filter.Focus()
			}
		case key.Matches(msg, ui.Keys.NextPage):
			if m.page.CurrentPage < m.page.TotalPages() {
				m.setPage(m.page.CurrentPage + 1)
			}
		case key.Matches(msg, ui.Keys.PrevPage):
			if m.page.CurrentPage > 1 {
				m.setPage(m.page.CurrentPage - 1)
			}
		case key.Matches(msg, ui.Keys.Back):
			if m.filterText != "" {
				m.clearFilter()
				m.setPage(1)
			}
		default:
			m.table, cmd = m.table.Update(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filter.Width = msg.Width - len(m.filter.Prompt) - 2
		// filter(1) + pager(1) + spacing(1)
		h := msg.Height - 3
		if h < 3 {
			h = 3
		}
		m.table.SetHeight(h)
		m.table.SetWidth(msg.Width)
	}
	m.syncStyles()
	return m, cmd
}

func (m *Model) probe(gen uint64) tea.Cmd {
	id := m.scroller.ElementID()
	idx := m.renderedIndex(id)
	step := m.scroller.Probe(gen, idx >= 0)

	entity := m.entity
	switch step.Action {
	case highlight.ActionRetry:
		return tea.Tick(step.Delay, func(time.Time) tea.Msg {
			return ui.HighlightProbeMsg{Entity: entity, Gen: gen}
		})
	case highlight.ActionHighlight:
		m.table.SetCursor(idx)
		m.metrics.RecordHighlight("found")
		return tea.Tick(step.Delay, func(time.Time) tea.Msg {
			return ui.HighlightClearMsg{Entity: entity, Gen: gen}
		})
	case highlight.ActionGiveUp:
		m.metrics.RecordHighlight("exhausted")
	}
	return nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case "esc":
		m.clearFilter()
		m.setPage(1)
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if v := m.filter.Value(); v != m.filterText {
		m.filterText = v
		m.applyFilter()
		m.setPage(1)
	}
	return m, cmd
}

func (m Model) View() string {
	if m.loading && len(m.rows) == 0 {
		return fmt.Sprintf("\n  Loading %s...", strings.ToLower(m.entity.PageLabel()))
	}
	if m.err != nil {
		return fmt.Sprintf("\n  Error: %v", m.err)
	}

	var b strings.Builder
	if m.filtering || m.filterText != "" {
		b.WriteString(m.filter.View())
	}
	b.WriteString("\n")
	if len(m.visible) == 0 {
		b.WriteString("\n  No results found.")
		return b.String()
	}
	b.WriteString(m.table.View())
	b.WriteString("\n")
	start, end := m.page.Bounds()
	b.WriteString(ui.StyleMuted.Render(fmt.Sprintf("  %s  (%d-%d of %d)",
		m.pager.View(), start+1, end, len(m.visible))))
	return b.String()
}
