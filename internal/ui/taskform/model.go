// Package taskform is the add-task form.
package taskform

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskmaster/internal/model"
	"github.com/nhle/taskmaster/internal/theme"
	"github.com/nhle/taskmaster/internal/ui"
)

// SubmitMsg is dispatched when the form is filled in and valid.
type SubmitMsg struct {
	Draft model.TaskDraft
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title    string
	priority model.Priority
	status   model.Status
	dueDate  string
}

// Model is the Bubble Tea model for the add-task form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	now    func() time.Time
	width  int
	height int
}

// New creates a new add-task form model.
func New(now func() time.Time, width, height int) Model {
	if now == nil {
		now = time.Now
	}
	return Model{
		fb:     &formBindings{priority: model.PriorityMedium, status: model.StatusPending},
		now:    now,
		width:  width,
		height: height,
	}
}

// Start resets the fields and builds a fresh form. The priority field is
// preselected with defaultPriority and the due date with today.
func (m *Model) Start(defaultPriority model.Priority) tea.Cmd {
	if !defaultPriority.IsValid() {
		defaultPriority = model.PriorityMedium
	}
	m.fb.title = ""
	m.fb.priority = defaultPriority
	m.fb.status = model.StatusPending
	m.fb.dueDate = m.now().Format(model.DateLayout)
	m.form = m.buildForm()
	return m.form.Init()
}

// Active reports whether a form is being edited.
func (m Model) Active() bool {
	return m.form != nil
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		draft, err := m.draft()
		m.form = nil
		if err != nil {
			// The field validators make this unreachable in practice.
			return m, func() tea.Msg { return CancelMsg{} }
		}
		return m, func() tea.Msg { return SubmitMsg{Draft: draft} }
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	content := theme.TitleStyle.Render("New Task") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	priorities := make([]huh.Option[model.Priority], 0, 3)
	for _, p := range model.Priorities() {
		priorities = append(priorities, huh.NewOption(p.Label(), p))
	}
	statuses := make([]huh.Option[model.Status], 0, 3)
	for _, s := range model.Statuses() {
		statuses = append(statuses, huh.NewOption(s.Label(), s))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What needs to be done?").
				CharLimit(model.MaxTitleLength).
				Value(&m.fb.title).
				Validate(model.ValidateTitle),
			huh.NewSelect[model.Priority]().
				Title("Priority").
				Options(priorities...).
				Value(&m.fb.priority),
			huh.NewSelect[model.Status]().
				Title("Status").
				Options(statuses...).
				Value(&m.fb.status),
			huh.NewInput().
				Title("Due Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fb.dueDate).
				Validate(m.validateDueDate),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight()).WithKeyMap(ui.FormKeyMap())
}

func (m *Model) validateDueDate(s string) error {
	due, err := model.ParseDueDate(s)
	if err != nil {
		return err
	}
	return model.ValidateDueDate(due, m.now())
}

func (m *Model) draft() (model.TaskDraft, error) {
	due, err := model.ParseDueDate(m.fb.dueDate)
	if err != nil {
		return model.TaskDraft{}, err
	}
	d := model.TaskDraft{
		Title:    strings.TrimSpace(m.fb.title),
		Priority: m.fb.priority,
		Status:   m.fb.status,
		DueDate:  due,
	}
	if err := d.Validate(m.now()); err != nil {
		return model.TaskDraft{}, err
	}
	return d, nil
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

func (m Model) formHeight() int {
	return max(m.height-4, 10)
}
