// Package sidebar renders the navigation column.
package sidebar

import (
	"fmt"
	"strings"

	"github.com/nhle/taskmaster/internal/model"
	"github.com/nhle/taskmaster/internal/reducer"
	"github.com/nhle/taskmaster/internal/theme"
	"github.com/nhle/taskmaster/internal/ui"
)

// AppName is shown at the top of the expanded sidebar.
const AppName = "TaskMaster"

// Model is the navigation sidebar. It holds no state of its own beyond
// the profile shown in its footer; everything else comes from the source.
type Model struct {
	src     ui.StateSource
	profile model.Profile
	height  int
}

// New creates a sidebar reading from src. It panics when src is nil.
func New(src ui.StateSource, profile model.Profile) Model {
	if src == nil {
		panic("sidebar: nil state source")
	}
	return Model{src: src, profile: profile}
}

// SetProfile replaces the profile shown in the footer.
func (m *Model) SetProfile(p model.Profile) {
	m.profile = p
}

// SetSize updates the sidebar height.
func (m *Model) SetSize(height int) {
	m.height = height
}

// View renders the sidebar.
func (m Model) View() string {
	s := m.src.Snapshot()
	if s.SidebarCollapsed {
		return m.viewCollapsed(s)
	}
	return m.viewExpanded(s)
}

func (m Model) viewExpanded(s reducer.State) string {
	var lines []string
	lines = append(lines, theme.TitleStyle.Render(AppName))

	for i, v := range reducer.PrimaryViews() {
		label := fmt.Sprintf("%d %s %s", i+1, icon(v), v.Title())
		lines = append(lines, navLine(label, v == s.ActiveView))
	}

	lines = append(lines, "")
	lines = append(lines, theme.NavItemStyle.Render("D "+darkModeLabel(s.IsDarkMode)))
	lines = append(lines, theme.NavItemStyle.Render("b « Collapse"))
	lines = append(lines, "")

	who := fmt.Sprintf("P (%s) %s", m.profile.Initials(), m.profile.Name)
	lines = append(lines, navLine(who, s.ActiveView == reducer.ViewProfile))

	return theme.SidebarStyle.
		Width(ui.SidebarWidth - 1).
		Height(max(m.height-2, 0)).
		Render(strings.Join(lines, "\n"))
}

func (m Model) viewCollapsed(s reducer.State) string {
	var lines []string
	lines = append(lines, theme.TitleStyle.Render("TM"))

	for _, v := range reducer.PrimaryViews() {
		lines = append(lines, navLine(icon(v), v == s.ActiveView))
	}

	lines = append(lines, "")
	if s.IsDarkMode {
		lines = append(lines, theme.NavItemStyle.Render("☀"))
	} else {
		lines = append(lines, theme.NavItemStyle.Render("☾"))
	}
	lines = append(lines, theme.NavItemStyle.Render("»"))
	lines = append(lines, "")
	lines = append(lines, navLine(m.profile.Initials(), s.ActiveView == reducer.ViewProfile))

	return theme.SidebarStyle.
		Width(ui.SidebarCollapsedWidth - 1).
		Height(max(m.height-2, 0)).
		Render(strings.Join(lines, "\n"))
}

func navLine(label string, active bool) string {
	if active {
		return theme.ActiveNavStyle.Render(label)
	}
	return theme.NavItemStyle.Render(label)
}

func darkModeLabel(dark bool) string {
	if dark {
		return "☀ Light mode"
	}
	return "☾ Dark mode"
}

func icon(v reducer.View) string {
	switch v {
	case reducer.ViewDashboard:
		return "▦"
	case reducer.ViewTasks:
		return "☑"
	case reducer.ViewSettings:
		return "⚙"
	case reducer.ViewProfile:
		return "☺"
	default:
		return "·"
	}
}
