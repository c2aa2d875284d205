package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/assetflow-tui/internal/highlight"
	"github.com/altinukshini/assetflow-tui/internal/model"
	"github.com/altinukshini/assetflow-tui/internal/ui"
)

const barMaxLen = 24

type Model struct {
	data     *model.Dashboard
	err      error
	cursor   int // index into RecentMovements
	viewport viewport.Model
	width    int
	height   int
	loading  bool
	ready    bool
}

func New() Model {
	return Model{loading: true}
}

func (m *Model) SetLoading() {
	m.loading = true
}

func (m *Model) SetData(d *model.Dashboard, err error) {
	m.loading = false
	m.err = err
	if err == nil {
		m.data = d
		m.cursor = 0
	}
	m.refresh()
}

func (m Model) Data() *model.Dashboard { return m.data }

// SelectedMovement returns the recent movement under the cursor.
func (m Model) SelectedMovement() (model.Movement, bool) {
	if m.data == nil || m.cursor < 0 || m.cursor >= len(m.data.RecentMovements) {
		return model.Movement{}, false
	}
	return m.data.RecentMovements[m.cursor], true
}

func (m *Model) refresh() {
	if m.ready {
		m.viewport.SetContent(m.render())
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ui.Keys.Down):
			if m.data != nil && m.cursor < len(m.data.RecentMovements)-1 {
				m.cursor++
				m.refresh()
			}
			return m, nil
		case key.Matches(msg, ui.Keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.refresh()
			}
			return m, nil
		case key.Matches(msg, ui.Keys.Enter):
			// No page: the movements table works out where the row lives.
			if mv, ok := m.SelectedMovement(); ok {
				link := highlight.Link(model.EntityMovement.Route(), mv.ID, 0)
				return m, func() tea.Msg { return ui.NavigateMsg{Link: link} }
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height
		}
		m.viewport.SetContent(m.render())
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) render() string {
	if m.data == nil {
		return "  No data"
	}
	d := m.data
	bold := lipgloss.NewStyle().Bold(true)
	muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)

	var b strings.Builder

	if len(d.Unavailable) > 0 {
		b.WriteString(ui.StyleWarning.Render("  Unavailable: "+strings.Join(d.Unavailable, ", ")) + "\n\n")
	}

	// ── Overview ──────────────────────────────────────────────────────
	b.WriteString(bold.Render("  Overview") + "\n\n")
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		kpiCard("Total Assets", fmt.Sprintf("%d", d.KPIs.TotalAssets), ui.ColorPrimary),
		kpiCard("Active Assets", fmt.Sprintf("%d", d.KPIs.ActiveAssets), ui.ColorSuccess),
		kpiCard("Total Vendors", fmt.Sprintf("%d", d.KPIs.TotalVendors), ui.ColorInfo),
		kpiCard("Pending Moves", fmt.Sprintf("%d", d.KPIs.PendingMovements), ui.ColorWarning),
	)
	b.WriteString(indent(cards) + "\n")
	totals := lipgloss.JoinHorizontal(lipgloss.Top,
		kpiCard("Total Movements", fmt.Sprintf("%d", d.Totals.Movements), ui.ColorInfo),
		kpiCard("Final Costings", formatAmount(d.Totals.FinalCostings), ui.ColorSuccess),
		kpiCard("Vendor Costs", formatAmount(d.Totals.VendorCosts), ui.ColorWarning),
	)
	b.WriteString(indent(totals) + "\n")
	b.WriteString(fmt.Sprintf("  Idle: %s  Maintenance: %s  Active vendors: %s  Pending approvals: %s\n\n",
		ui.StyleMuted.Render(fmt.Sprintf("%d", d.KPIs.IdleAssets)),
		ui.StyleWarning.Render(fmt.Sprintf("%d", d.KPIs.InMaintenance)),
		ui.StyleSuccess.Render(fmt.Sprintf("%d", d.KPIs.ActiveVendors)),
		ui.StyleWarning.Render(fmt.Sprintf("%d", d.KPIs.PendingApprovals))))

	// ── Charts ───────────────────────────────────────────────────────
	if len(d.Distribution) > 0 {
		b.WriteString(bold.Render("  Asset Distribution") + "\n\n")
		b.WriteString(renderBars(d.Distribution, ui.ColorInfo))
		b.WriteString("\n")
	}
	if len(d.VendorAllocation) > 0 {
		b.WriteString(bold.Render("  Vendor Allocation") + "\n\n")
		b.WriteString(renderBars(d.VendorAllocation, ui.ColorPrimary))
		b.WriteString("\n")
	}

	// ── Recent Movements ─────────────────────────────────────────────
	b.WriteString(bold.Render("  Recent Movements") + "  " + muted.Render("enter:open in Movements") + "\n\n")
	if len(d.RecentMovements) == 0 {
		b.WriteString(muted.Render("  No recent movements") + "\n")
	}
	for i, mv := range d.RecentMovements {
		name := mv.AtmName()
		if name == "" {
			name = "Unknown Asset"
		}
		line := fmt.Sprintf("  %-24s %s → %s  %s", truncate(name, 24),
			mv.FromLocation, mv.ToLocation, ui.StatusText(mv.Status))
		if i == m.cursor {
			line = ui.StyleSelected.Width(m.width).Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func kpiCard(title, value string, color lipgloss.Color) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(18)
	return style.Render(
		lipgloss.NewStyle().Foreground(ui.ColorMuted).Render(title) + "\n" +
			lipgloss.NewStyle().Bold(true).Foreground(color).Render(value))
}

func renderBars(points []model.ChartPoint, fallback lipgloss.Color) string {
	maxVal := 0.0
	for _, p := range points {
		if float64(p.Value) > maxVal {
			maxVal = float64(p.Value)
		}
	}

	var b strings.Builder
	for _, p := range points {
		barLen := 0
		if maxVal > 0 {
			barLen = int(float64(p.Value) / maxVal * barMaxLen)
		}
		if barLen < 1 && p.Value > 0 {
			barLen = 1
		}
		color := fallback
		if p.Color != "" {
			color = lipgloss.Color(p.Color)
		}
		bar := strings.Repeat("█", barLen) + strings.Repeat("░", barMaxLen-barLen)
		label := p.Name
		if p.Label != "" {
			label = p.Label
		}
		b.WriteString(fmt.Sprintf("  %-20s %s %s\n",
			truncate(label, 20),
			lipgloss.NewStyle().Foreground(color).Render(bar),
			ui.StyleMuted.Render(formatValue(float64(p.Value)))))
	}
	return b.String()
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

func formatAmount(v float64) string {
	return "₹" + strconv.FormatFloat(v, 'f', 2, 64)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}

func (m Model) View() string {
	if m.loading && m.data == nil {
		return "\n  Loading dashboard..."
	}
	if m.err != nil {
		return fmt.Sprintf("\n  Error: %v", m.err)
	}
	if m.ready {
		return m.viewport.View()
	}
	return "\n  Initializing..."
}
