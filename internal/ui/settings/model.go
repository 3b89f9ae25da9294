// Package settings edits the task preferences and offers the appearance
// and data actions.
package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskmaster/internal/keys"
	"github.com/nhle/taskmaster/internal/model"
	"github.com/nhle/taskmaster/internal/theme"
	"github.com/nhle/taskmaster/internal/ui"
)

// Mode represents the current state of the settings view.
type Mode int

const (
	ModeView         Mode = iota // Show current settings
	ModeEditPrefs                // Preferences form
	ModeConfirmClear             // Confirm clearing all data
)

// SavedMsg is dispatched when edited preferences are submitted.
type SavedMsg struct {
	Preferences model.Preferences
}

// ExportMsg asks the root model to export the task list.
type ExportMsg struct{}

// ClearMsg asks the root model to delete all persisted data.
type ClearMsg struct{}

var (
	exportKey = key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "export data"))
	clearKey  = key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all data"))
)

// prefBindings holds form values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type prefBindings struct {
	prefs        model.Preferences
	confirmClear bool
}

// Model is the settings view.
type Model struct {
	mode  Mode
	src   ui.StateSource
	keys  *keys.KeyMap
	prefs model.Preferences

	prefsForm   *huh.Form
	confirmForm *huh.Form
	fb          *prefBindings

	width, height int
}

// New creates a settings view. It panics when src is nil.
func New(src ui.StateSource, k *keys.KeyMap, prefs model.Preferences, width, height int) Model {
	if src == nil {
		panic("settings: nil state source")
	}
	return Model{
		src:    src,
		keys:   k,
		prefs:  prefs,
		fb:     &prefBindings{},
		width:  width,
		height: height,
	}
}

// Preferences returns the preferences currently shown.
func (m Model) Preferences() model.Preferences {
	return m.prefs
}

// Editing reports whether a form has focus.
func (m Model) Editing() bool {
	return m.mode != ModeView
}

// Update handles messages for the settings view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch m.mode {
	case ModeEditPrefs:
		return m.updatePrefsForm(msg)
	case ModeConfirmClear:
		return m.updateConfirmClear(msg)
	}

	msg2, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msg2, m.keys.EditProfile):
		return m, m.startEditPrefs()
	case key.Matches(msg2, exportKey):
		return m, func() tea.Msg { return ExportMsg{} }
	case key.Matches(msg2, clearKey):
		return m, m.startConfirmClear()
	}
	return m, nil
}

// --- Preferences ---

func (m *Model) startEditPrefs() tea.Cmd {
	m.fb.prefs = m.prefs
	opts := make([]huh.Option[model.Priority], 0, 3)
	for _, p := range model.Priorities() {
		opts = append(opts, huh.NewOption(p.Label(), p))
	}

	m.prefsForm = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[model.Priority]().
				Title("Default priority").
				Description("Preselected when adding a task").
				Options(opts...).
				Value(&m.fb.prefs.DefaultPriority),
			huh.NewConfirm().
				Title("Compact view").
				Description("Show each task on a single line").
				Value(&m.fb.prefs.CompactView),
			huh.NewConfirm().
				Title("Task reminders").
				Description("Count tasks due within a day in the header").
				Value(&m.fb.prefs.TaskReminders),
			huh.NewConfirm().
				Title("Weekly digest").
				Value(&m.fb.prefs.WeeklyDigest),
		),
	).WithWidth(m.formWidth()).WithKeyMap(ui.FormKeyMap())
	m.mode = ModeEditPrefs
	return m.prefsForm.Init()
}

func (m Model) updatePrefsForm(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.prefsForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.prefsForm = f
	}

	switch m.prefsForm.State {
	case huh.StateCompleted:
		m.mode = ModeView
		m.prefs = m.fb.prefs
		prefs := m.prefs
		return m, func() tea.Msg { return SavedMsg{Preferences: prefs} }
	case huh.StateAborted:
		m.mode = ModeView
		return m, nil
	}
	return m, cmd
}

// --- Clear confirmation ---

func (m *Model) startConfirmClear() tea.Cmd {
	m.fb.confirmClear = false
	m.confirmForm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Clear all data?").
				Description("This deletes every task and resets dark mode.").
				Affirmative("Yes, clear").
				Negative("Cancel").
				Value(&m.fb.confirmClear),
		),
	).WithWidth(m.formWidth()).WithKeyMap(ui.FormKeyMap())
	m.mode = ModeConfirmClear
	return m.confirmForm.Init()
}

func (m Model) updateConfirmClear(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}

	switch m.confirmForm.State {
	case huh.StateCompleted:
		m.mode = ModeView
		if m.fb.confirmClear {
			return m, func() tea.Msg { return ClearMsg{} }
		}
		return m, nil
	case huh.StateAborted:
		m.mode = ModeView
		return m, nil
	}
	return m, cmd
}

// --- View ---

// View renders the settings based on the current mode.
func (m Model) View() string {
	switch m.mode {
	case ModeEditPrefs:
		return m.viewForm("Preferences", m.prefsForm)
	case ModeConfirmClear:
		return m.viewForm("Clear Data", m.confirmForm)
	default:
		return m.viewSettings()
	}
}

func (m Model) viewSettings() string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render("Preferences") + "\n")
	row(&b, "Default priority", m.prefs.DefaultPriority.Label())
	row(&b, "Compact view", onOff(m.prefs.CompactView))
	row(&b, "Task reminders", onOff(m.prefs.TaskReminders))
	row(&b, "Weekly digest", onOff(m.prefs.WeeklyDigest))
	if m.prefs.WeeklyDigest {
		row(&b, "Digest schedule", m.prefs.DigestSchedule)
	}
	b.WriteString(theme.HelpStyle.Render("e edit") + "\n\n")

	b.WriteString(theme.TitleStyle.Render("Appearance") + "\n")
	row(&b, "Dark mode", onOff(m.src.Snapshot().IsDarkMode))
	b.WriteString(theme.HelpStyle.Render("D toggle") + "\n\n")

	b.WriteString(theme.TitleStyle.Render("Data") + "\n")
	b.WriteString(theme.HelpStyle.Render("E export tasks as JSON") + "\n")
	b.WriteString(theme.HelpStyle.Render("C clear all data") + "\n")

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) viewForm(title string, f *huh.Form) string {
	if f == nil {
		return ""
	}
	return theme.PanelStyle.
		Width(m.formWidth()).
		Render(theme.TitleStyle.Render(title) + "\n" + f.View())
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s %s\n", theme.HelpStyle.Width(18).Render(label), value)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 80)
}
