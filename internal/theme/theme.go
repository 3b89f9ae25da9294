package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskmaster/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// Apply selects the dark or light side of every adaptive color. It must be
// called before the first frame is drawn and again whenever the mode flips.
func Apply(dark bool) {
	lipgloss.SetHasDarkBackground(dark)
}

// IsDark reports which side of the adaptive colors is in use.
func IsDark() bool {
	return lipgloss.HasDarkBackground()
}

// HeaderStyle is used for the view title bar.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// ErrorBarStyle replaces the status bar when the last operation failed.
var ErrorBarStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FFFFFF")).
	Background(ColorRed).
	Padding(0, 1)

// PanelStyle wraps overlay and form content.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// SidebarStyle frames the navigation column.
var SidebarStyle = lipgloss.NewStyle().
	Padding(1, 1).
	Border(lipgloss.NormalBorder(), false, true, false, false).
	BorderForeground(ColorBorder)

// NavItemStyle is an inactive navigation entry.
var NavItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Foreground(ColorGray)

// ActiveNavStyle highlights the navigation entry of the current view.
var ActiveNavStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// ListItemStyle is the base style for task cards.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the focused task card.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// DimmedStyle fades completed tasks.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Strikethrough(true)

// DeletingStyle marks a card that is about to be removed.
var DeletingStyle = lipgloss.NewStyle().
	Foreground(ColorRed).
	Faint(true)

// OverdueStyle is used for overdue due-date text.
var OverdueStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// DueDateStyle is used for due-date text that is not overdue.
var DueDateStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// BadgeStyle is the notification counter in the header.
var BadgeStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FFFFFF")).
	Background(ColorRed).
	Padding(0, 1)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// TitleStyle is used for panel titles.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	MarginBottom(1)

// StatusStyle returns a color-coded style for the given task status.
func StatusStyle(status model.Status) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch status {
	case model.StatusPending:
		return base.Foreground(ColorYellow)
	case model.StatusInProgress:
		return base.Foreground(ColorBlue)
	case model.StatusCompleted:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// PriorityStyle returns a color-coded style for the given priority.
func PriorityStyle(priority model.Priority) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch priority {
	case model.PriorityHigh:
		return base.Foreground(ColorRed)
	case model.PriorityMedium:
		return base.Foreground(ColorOrange)
	case model.PriorityLow:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}
