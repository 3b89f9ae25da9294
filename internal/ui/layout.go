package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskmaster/internal/reducer"
	"github.com/nhle/taskmaster/internal/theme"
)

// Sidebar widths, expanded and collapsed, including the border.
const (
	SidebarWidth          = 24
	SidebarCollapsedWidth = 6
)

// StateSource hands out snapshots of the dashboard state.
type StateSource interface {
	Snapshot() reducer.State
}

// Layout manages the multi-panel terminal layout dimensions.
type Layout struct {
	Width            int
	Height           int
	HeaderHeight     int
	StatusBarHeight  int
	SidebarCollapsed bool
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// SidebarWidth returns the width taken by the navigation column.
func (l Layout) SidebarWidth() int {
	if l.SidebarCollapsed {
		return SidebarCollapsedWidth
	}
	return SidebarWidth
}

// ContentWidth returns the width left of the sidebar.
func (l Layout) ContentWidth() int {
	return max(l.Width-l.SidebarWidth(), 0)
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return max(l.Height-l.HeaderHeight-l.StatusBarHeight, 0)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	return fillLine(theme.StatusBarStyle, hints, l.Width)
}

// RenderErrorBar renders the status bar in its error colors.
func (l Layout) RenderErrorBar(msg string) string {
	return fillLine(theme.ErrorBarStyle, msg, l.Width)
}

// RenderWithFrame composes a full terminal view: the sidebar on the left,
// the header and content on the right, and the status bar below both.
func (l Layout) RenderWithFrame(
	sidebar string,
	header string,
	content string,
	statusBar string,
) string {
	main := lipgloss.JoinVertical(lipgloss.Left, header, content)
	side := lipgloss.NewStyle().
		Width(l.SidebarWidth()).
		Height(l.ContentHeight() + l.HeaderHeight).
		Render(sidebar)
	body := lipgloss.JoinHorizontal(lipgloss.Top, side, main)
	return lipgloss.JoinVertical(lipgloss.Left, body, statusBar)
}

// fillLine renders text in style and pads it with the style's background
// to the given width.
func fillLine(style lipgloss.Style, text string, width int) string {
	rendered := style.Render(text)

	gap := max(width-lipgloss.Width(rendered), 0)

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(style.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// FormKeyMap returns the huh key map used by every form: esc cancels.
func FormKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel"))
	return km
}
