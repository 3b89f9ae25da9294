// Package profile shows the dashboard owner and their task statistics.
package profile

import (
	"errors"
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

// Mode is the current state of the profile view.
type Mode int

const (
	ModeView Mode = iota
	ModeEdit
)

// SavedMsg is dispatched when the edited profile is submitted.
type SavedMsg struct {
	Profile model.Profile
}

// Model is the profile view.
type Model struct {
	mode    Mode
	src     ui.StateSource
	keys    *keys.KeyMap
	profile model.Profile

	form *huh.Form
	// draft is on the heap so huh's Value() pointers survive model copies.
	draft *model.Profile

	width, height int
}

// New creates a profile view reading tasks from src. It panics when src
// is nil.
func New(src ui.StateSource, k *keys.KeyMap, p model.Profile, width, height int) Model {
	if src == nil {
		panic("profile: nil state source")
	}
	return Model{
		src:     src,
		keys:    k,
		profile: p,
		draft:   &model.Profile{},
		width:   width,
		height:  height,
	}
}

// Profile returns the profile currently shown.
func (m Model) Profile() model.Profile {
	return m.profile
}

// SetProfile replaces the profile shown.
func (m *Model) SetProfile(p model.Profile) {
	m.profile = p
}

// Editing reports whether the edit form has focus.
func (m Model) Editing() bool {
	return m.mode == ModeEdit
}

// Update handles messages for the profile view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.mode == ModeEdit {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.EditProfile) {
		return m, m.startEdit()
	}
	return m, nil
}

func (m *Model) startEdit() tea.Cmd {
	*m.draft = m.profile
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&m.draft.Name).Validate(validateRequired("Name")),
			huh.NewInput().Title("Email").Value(&m.draft.Email).Validate(validateEmail),
			huh.NewInput().Title("Phone").Value(&m.draft.Phone),
			huh.NewInput().Title("Location").Value(&m.draft.Location),
			huh.NewText().Title("Bio").Value(&m.draft.Bio),
		),
	).WithWidth(m.formWidth()).WithKeyMap(ui.FormKeyMap())
	m.mode = ModeEdit
	return m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.mode = ModeView
		m.profile = *m.draft
		p := m.profile
		return m, func() tea.Msg { return SavedMsg{Profile: p} }
	case huh.StateAborted:
		m.mode = ModeView
		return m, nil
	}
	return m, cmd
}

// View renders the profile card or the edit form.
func (m Model) View() string {
	if m.mode == ModeEdit {
		return theme.PanelStyle.
			Width(m.formWidth()).
			Render(theme.TitleStyle.Render("Edit Profile") + "\n" + m.form.View())
	}

	p := m.profile
	avatar := theme.HeaderStyle.Render(p.Initials())
	var b strings.Builder
	b.WriteString(avatar + " " + theme.TitleStyle.UnsetMarginBottom().Render(p.Name) + "\n\n")
	for _, row := range [][2]string{
		{"Email", p.Email},
		{"Phone", p.Phone},
		{"Location", p.Location},
		{"Joined", p.JoinDate},
	} {
		fmt.Fprintf(&b, "%s %s\n", theme.HelpStyle.Width(10).Render(row[0]), row[1])
	}
	if p.Bio != "" {
		b.WriteString("\n" + ui.RenderMarkdown(max(m.width-8, 20), p.Bio) + "\n")
	}

	stats := model.ComputeStats(m.src.Snapshot().Tasks)
	b.WriteString("\n" + theme.TitleStyle.Render("Statistics") + "\n")
	fmt.Fprintf(&b, "Total tasks   %d\n", stats.Total)
	fmt.Fprintf(&b, "Completed     %d\n", stats.Completed)
	fmt.Fprintf(&b, "In progress   %d\n", stats.InProgress)
	fmt.Fprintf(&b, "Pending       %d\n", stats.Pending)
	fmt.Fprintf(&b, "Completion    %d%%\n", stats.CompletionRate())

	b.WriteString("\n" + theme.HelpStyle.Render("e edit profile"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 80)
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return errors.New("invalid email address")
	}
	return nil
}
