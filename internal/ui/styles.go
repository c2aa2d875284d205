package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/assetflow-tui/internal/model"
)

var (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorFailure   = lipgloss.Color("#EF4444")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorInfo      = lipgloss.Color("#3B82F6")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorBorder    = lipgloss.Color("#374151")
	ColorHighlight = lipgloss.Color("#1F2937")

	StylePaneFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleFailure = lipgloss.NewStyle().Foreground(ColorFailure)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)

	StyleSelected = lipgloss.NewStyle().Background(ColorHighlight)

	// StyleFlash marks a row reached through a search link.
	StyleFlash = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FCD34D")).
			Background(lipgloss.Color("#78350F"))
)

// StatusStyle colours asset, movement, vendor and billing statuses.
func StatusStyle(status string) lipgloss.Style {
	switch normalize(status) {
	case "active", "delivered", "approved", "paid", "completed":
		return StyleSuccess
	case "inactive", "rejected", "overdue", "cancelled":
		return StyleFailure
	case "maintenance", "pending", "hold", "on-hold":
		return StyleWarning
	case "in-transit", "in-progress", "submitted":
		return StyleInfo
	case "idle", "retired":
		return StyleMuted
	default:
		return lipgloss.NewStyle()
	}
}

func StatusText(status string) string {
	if status == "" {
		return StyleMuted.Render("-")
	}
	return StatusStyle(status).Render(status)
}

func EntityColor(t model.EntityType) lipgloss.Color {
	switch t {
	case model.EntityAsset:
		return ColorInfo
	case model.EntityMovement:
		return ColorSuccess
	case model.EntityVendor:
		return ColorPrimary
	case model.EntityCosting:
		return ColorWarning
	default:
		return ColorMuted
	}
}

// EntityBadge renders the short entity tag shown next to search results.
func EntityBadge(t model.EntityType) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#F9FAFB")).
		Background(EntityColor(t)).
		Padding(0, 1).
		Render(string(t))
}

func normalize(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	s = strings.ReplaceAll(s, "_", "-")
	return strings.ReplaceAll(s, " ", "-")
}
