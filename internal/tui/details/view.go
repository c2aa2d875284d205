package details

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/assetflow-tui/internal/model"
	"github.com/altinukshini/assetflow-tui/internal/ui"
)

// Model shows every field of one record in a scrollable pane.
type Model struct {
	entity   model.EntityType
	title    string
	link     string
	fields   []ui.Field
	viewport viewport.Model
	width    int
	height   int
	ready    bool
	active   bool
}

func New() Model {
	return Model{}
}

// Show opens the view for a record. link is the record's shareable
// highlight link.
func (m *Model) Show(entity model.EntityType, title, link string, fields []ui.Field) {
	m.entity = entity
	m.title = title
	m.link = link
	m.fields = fields
	m.active = true
	if m.ready {
		m.viewport.SetContent(m.render())
		m.viewport.GotoTop()
	}
}

func (m *Model) Close() {
	m.active = false
}

func (m Model) IsActive() bool { return m.active }
func (m Model) Title() string  { return m.title }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		headerH := 1
		if !m.ready {
			m.viewport = viewport.New(wsm.Width, wsm.Height-headerH)
			m.ready = true
		} else {
			m.viewport.Width = wsm.Width
			m.viewport.Height = wsm.Height - headerH
		}
		if m.title != "" {
			m.viewport.SetContent(m.render())
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.active {
		return ""
	}
	pct := m.viewport.ScrollPercent() * 100
	header := fmt.Sprintf(" %s  %3.0f%%", m.entity.PageLabel(), pct)
	hints := lipgloss.NewStyle().Foreground(ui.ColorMuted).Render(
		"  j/k:scroll  PgUp/Dn:page  esc:back")
	headerLine := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("#F9FAFB")).
		Render(header) + hints

	if !m.ready {
		return headerLine + "\n" + m.render()
	}
	return headerLine + "\n" + m.viewport.View()
}

func (m Model) render() string {
	bold := lipgloss.NewStyle().Bold(true)
	label := lipgloss.NewStyle().Foreground(ui.ColorMuted).Width(20)
	value := lipgloss.NewStyle().Foreground(lipgloss.Color("#F9FAFB"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + ui.EntityBadge(m.entity) + " " + bold.Render(m.title) + "\n\n")
	for _, f := range m.fields {
		v := f.Value
		if v == "" {
			v = "-"
		}
		if strings.EqualFold(f.Label, "status") || strings.HasSuffix(f.Label, "Status") {
			b.WriteString("  " + label.Render(f.Label) + ui.StatusText(f.Value) + "\n")
			continue
		}
		b.WriteString("  " + label.Render(f.Label) + value.Render(v) + "\n")
	}
	if m.link != "" {
		b.WriteString("\n  " + label.Render("Link") + ui.StyleInfo.Render(m.link) + "\n")
	}
	return b.String()
}
