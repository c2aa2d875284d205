package searchview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/assetflow-tui/internal/model"
	"github.com/altinukshini/assetflow-tui/internal/search"
	"github.com/altinukshini/assetflow-tui/internal/ui"
)

// SearchFunc runs one global search. A blank query yields no results.
type SearchFunc func(ctx context.Context, query string) []model.SearchResult

const (
	headerLines   = 2 // input + status line
	linesPerMatch = 2
)

type Model struct {
	coord  search.Coordinator
	input  textinput.Model
	run    SearchFunc
	active bool

	// Screen position of the component, for outside-click detection.
	originX int
	originY int
	width   int
	height  int
	offset  int
}

func New(run SearchFunc, debounce time.Duration) Model {
	ti := textinput.New()
	ti.Prompt = "Search: "
	ti.Placeholder = "assets, movements, vendors, costing..."
	ti.CharLimit = 256

	return Model{
		coord: search.NewCoordinator(debounce),
		input: ti,
		run:   run,
	}
}

// Activate focuses the input. A non-empty query re-opens its results.
func (m *Model) Activate() tea.Cmd {
	m.active = true
	m.coord.Reopen()
	return m.input.Focus()
}

func (m *Model) Deactivate() {
	m.active = false
	m.input.Blur()
}

// Close hides the results and drops focus. The query is kept.
func (m *Model) Close() {
	m.coord.Close()
	m.Deactivate()
}

func (m Model) IsActive() bool                  { return m.active }
func (m Model) IsOpen() bool                    { return m.coord.IsOpen() }
func (m Model) Query() string                   { return m.coord.Query() }
func (m Model) Coordinator() search.Coordinator { return m.coord }

// Visible reports whether the component takes screen space.
func (m Model) Visible() bool {
	return m.active || m.coord.IsOpen()
}

// SetOrigin records where the component is drawn.
func (m *Model) SetOrigin(x, y int) {
	m.originX = x
	m.originY = y
}

// Height is the number of lines View renders.
func (m Model) Height() int {
	return lipgloss.Height(m.View())
}

func (m Model) contains(x, y int) bool {
	return x >= m.originX && x < m.originX+m.width &&
		y >= m.originY && y < m.originY+m.Height()
}

func (m Model) maxVisible() int {
	n := (m.height - headerLines) / linesPerMatch
	if n < 1 {
		n = 1
	}
	return n
}

func (m *Model) keepCursorVisible() {
	n := m.maxVisible()
	cur := m.coord.Cursor()
	if cur < m.offset {
		m.offset = cur
	} else if cur >= m.offset+n {
		m.offset = cur - n + 1
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.SearchDebounceMsg:
		query, ok := m.coord.Fire(msg.Gen)
		if !ok {
			return m, nil
		}
		gen, run := msg.Gen, m.run
		return m, func() tea.Msg {
			return ui.SearchDoneMsg{Gen: gen, Results: run(context.Background(), query)}
		}

	case ui.SearchDoneMsg:
		if m.coord.Resolve(msg.Gen, msg.Results) {
			m.offset = 0
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if !m.Visible() || !m.contains(msg.X, msg.Y) {
			m.Close()
			return m, nil
		}
		line := msg.Y - m.originY - headerLines
		if line >= 0 && m.coord.IsOpen() && len(m.coord.Results()) > 0 {
			m.coord.Select(m.offset + line/linesPerMatch)
			return m.activateSelected()
		}
		return m, m.Activate()

	case tea.KeyMsg:
		if !m.active {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyDown:
			m.coord.MoveDown()
			m.keepCursorVisible()
			return m, nil
		case tea.KeyUp:
			m.coord.MoveUp()
			m.keepCursorVisible()
			return m, nil
		case tea.KeyEnter:
			return m.activateSelected()
		case tea.KeyEsc:
			m.Close()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if v := m.input.Value(); v != m.coord.Query() {
			gen, schedule := m.coord.QueryChanged(v)
			m.offset = 0
			if schedule {
				cmd = tea.Batch(cmd, tea.Tick(m.coord.Debounce, func(time.Time) tea.Msg {
					return ui.SearchDebounceMsg{Gen: gen}
				}))
			}
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - len(m.input.Prompt) - 4
	}
	return m, nil
}

// activateSelected clears the search and navigates to the selected result.
func (m Model) activateSelected() (Model, tea.Cmd) {
	r, ok := m.coord.Activate()
	if !ok {
		return m, nil
	}
	m.input.SetValue("")
	m.offset = 0
	m.Deactivate()
	link := r.Link
	return m, func() tea.Msg { return ui.NavigateMsg{Link: link} }
}

func (m Model) View() string {
	if !m.Visible() {
		return ""
	}

	var b strings.Builder
	b.WriteString(" " + m.input.View() + "\n")

	if !m.coord.IsOpen() {
		b.WriteString(ui.StyleMuted.Render("  Type to search across every screen"))
		return b.String()
	}
	if m.coord.IsLoading() {
		b.WriteString(ui.StyleMuted.Render("  Searching..."))
		return b.String()
	}
	results := m.coord.Results()
	if len(results) == 0 {
		b.WriteString(ui.StyleMuted.Render("  No results found"))
		return b.String()
	}
	b.WriteString(ui.StyleMuted.Render(fmt.Sprintf("  %d results  up/down:navigate  enter:open  esc:close", len(results))))

	end := m.offset + m.maxVisible()
	if end > len(results) {
		end = len(results)
	}
	bold := lipgloss.NewStyle().Bold(true)
	for i := m.offset; i < end; i++ {
		r := results[i]
		line1 := fmt.Sprintf("  %s %s  %s", ui.EntityBadge(r.EntityType), bold.Render(r.Title),
			ui.StyleMuted.Render(fmt.Sprintf("%s, page %d", r.PageLabel, r.PageNumber)))
		line2 := "    " + ui.StyleMuted.Render(r.Description)
		if i == m.coord.Cursor() {
			hl := ui.StyleSelected.Width(m.width)
			line1 = hl.Render(line1)
			line2 = hl.Render(line2)
		}
		b.WriteString("\n" + line1 + "\n" + line2)
	}
	return b.String()
}
