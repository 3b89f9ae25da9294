package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskmaster/internal/keys"
	"github.com/nhle/taskmaster/internal/model"
	"github.com/nhle/taskmaster/internal/reducer"
	"github.com/nhle/taskmaster/internal/state"
	"github.com/nhle/taskmaster/internal/theme"
	"github.com/nhle/taskmaster/internal/ui"
	"github.com/nhle/taskmaster/internal/ui/command"
	"github.com/nhle/taskmaster/internal/ui/header"
	helpview "github.com/nhle/taskmaster/internal/ui/help"
	"github.com/nhle/taskmaster/internal/ui/profile"
	"github.com/nhle/taskmaster/internal/ui/settings"
	"github.com/nhle/taskmaster/internal/ui/sidebar"
	"github.com/nhle/taskmaster/internal/ui/taskform"
	"github.com/nhle/taskmaster/internal/ui/taskgrid"
)

// overlay is drawn over the content area, above the active view.
type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayCommand
)

// DataStore exports and wipes the persisted data.
type DataStore interface {
	Export(ctx context.Context, w io.Writer) error
	Clear(ctx context.Context) error
}

// Options configures the root model.
type Options struct {
	// Store must already be hydrated.
	Store *state.Store

	Data       DataStore
	Config     *model.AppConfig
	ConfigPath string
	Logger     *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Model is the root Bubble Tea model. It routes input to the active view,
// turns component intents into store actions, and owns the timers that
// sequence task transitions.
type Model struct {
	store   *state.Store
	data    DataStore
	cfg     *model.AppConfig
	cfgPath string
	logger  *slog.Logger
	now     func() time.Time
	keys    *keys.KeyMap

	layout       ui.Layout
	sidebar      sidebar.Model
	header       header.Model
	grid         taskgrid.Model
	form         taskform.Model
	profileView  profile.Model
	settingsView settings.Model
	helpView     helpview.Model
	commandView  command.Model
	overlay      overlay

	// viewCtx lives as long as the active view. Switching views cancels it,
	// and viewGen tells timers started under an older view apart.
	viewCtx    context.Context
	cancelView context.CancelFunc
	viewGen    int
	pending    pendingDeletes

	// nextDigest is zero while the weekly digest is off.
	nextDigest time.Time

	ready   bool
	lastErr error
	notice  string
}

// New creates the root model. It panics when opts.Store is nil.
func New(opts Options) Model {
	if opts.Store == nil {
		panic("app: nil store")
	}
	if opts.Config == nil {
		opts.Config = model.DefaultAppConfig()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	k := keys.DefaultKeyMap()
	s := opts.Store
	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		store:        s,
		data:         opts.Data,
		cfg:          opts.Config,
		cfgPath:      opts.ConfigPath,
		logger:       opts.Logger,
		now:          opts.Now,
		keys:         k,
		layout:       ui.NewLayout(80, 24),
		sidebar:      sidebar.New(s, opts.Config.Profile),
		header:       header.New(s, opts.Now),
		grid:         taskgrid.New(s, k, opts.Now, 80, 24),
		form:         taskform.New(opts.Now, 80, 24),
		profileView:  profile.New(s, k, opts.Config.Profile, 80, 24),
		settingsView: settings.New(s, k, opts.Config.Preferences, 80, 24),
		helpView:     helpview.New(k, 80, 24),
		commandView:  command.New(80, 24),
		viewCtx:      ctx,
		cancelView:   cancel,
		pending:      pendingDeletes{},
	}

	if snap := s.Snapshot(); snap.SidebarCollapsed != opts.Config.Display.SidebarCollapsed {
		m.dispatch(reducer.ToggleSidebar{})
	}
	m.grid.SetCompact(opts.Config.Preferences.CompactView)
	m.header.SetReminders(opts.Config.Preferences.TaskReminders)
	m.scheduleDigest()
	m.sync(s.Snapshot())

	return m
}

// Init sets the terminal title and starts the clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle(sidebar.AppName), clockTick())
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.Width = msg.Width
		m.layout.Height = msg.Height
		m.ready = true
		m.resize()
		// Forward to an open form so huh can calculate its layout.
		return m.updateActiveView(msg)

	// --- Timers ---

	case addDueMsg:
		cmd := m.dispatch(reducer.AddTask{Draft: msg.draft})
		if m.store.Snapshot().ShowAddForm {
			// The draft went stale while waiting, e.g. its due date passed.
			m.lastErr = m.store.Accept(msg.draft)
			return m, tea.Batch(cmd, m.dispatch(reducer.SetShowAddForm{Show: false}))
		}
		return m, cmd

	case clockTickMsg:
		m.checkDigest()
		return m, tea.Batch(m.grid.Refresh(), clockTick())

	case completeDueMsg:
		if msg.gen != m.viewGen {
			return m, nil
		}
		return m, m.dispatch(reducer.UpdateStatus{ID: msg.id, Status: msg.status})

	case deleteDueMsg:
		if msg.gen != m.viewGen {
			return m.cancelDelete(msg.id)
		}
		if err := m.pending.commit(msg.id); err != nil {
			m.logger.Debug("stale delete timer", "err", err)
			return m, nil
		}
		return m, m.dispatch(reducer.CommitDeletion{ID: msg.id})

	case deleteCancelledMsg:
		return m.cancelDelete(msg.id)

	// --- Task intents ---

	case taskgrid.ToggleCompleteMsg:
		return m, m.after(m.cfg.Animation.CompleteDelay(),
			completeDueMsg{id: msg.ID, status: msg.Status, gen: m.viewGen}, nil)

	case taskgrid.CycleStatusMsg:
		return m, m.dispatch(reducer.UpdateStatus{ID: msg.ID, Status: msg.Status})

	case taskgrid.DeleteMsg:
		if err := m.pending.mark(msg.ID); err != nil {
			return m, nil
		}
		cmd := m.dispatch(reducer.MarkForDeletion{ID: msg.ID})
		return m, tea.Batch(cmd, m.after(m.cfg.Animation.DeleteDelay(),
			deleteDueMsg{id: msg.ID, gen: m.viewGen},
			deleteCancelledMsg{id: msg.ID}))

	case taskform.SubmitMsg:
		if err := m.store.Accept(msg.Draft); err != nil {
			m.lastErr = err
			return m, m.dispatch(reducer.SetShowAddForm{Show: false})
		}
		return m, delay(context.Background(), m.cfg.Animation.SubmitDelay(), addDueMsg{draft: msg.Draft}, nil)

	case taskform.CancelMsg:
		return m, m.dispatch(reducer.SetShowAddForm{Show: false})

	// --- Profile and settings ---

	case profile.SavedMsg:
		m.cfg.Profile = msg.Profile
		m.sidebar.SetProfile(msg.Profile)
		m.notice = "profile saved"
		return m, m.saveConfig()

	case settings.SavedMsg:
		m.cfg.Preferences = msg.Preferences
		m.grid.SetCompact(msg.Preferences.CompactView)
		m.header.SetReminders(msg.Preferences.TaskReminders)
		m.scheduleDigest()
		m.notice = "preferences saved"
		return m, m.saveConfig()

	case settings.ExportMsg:
		return m, m.exportTasks()

	case settings.ClearMsg:
		return m, m.clearData()

	case configSavedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			m.logger.Error("saving config failed", "err", msg.err)
		}
		return m, nil

	case dataClearedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			m.logger.Error("clearing data failed", "err", msg.err)
		}
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			m.logger.Error("export failed", "err", msg.err)
			return m, nil
		}
		m.notice = "exported to " + msg.path
		m.logger.Info("exported tasks", "path", msg.path)
		return m, nil

	// --- Palette ---

	case command.CommandMsg:
		m.overlay = overlayNone
		return m.executeCommand(string(msg))

	case command.CloseMsg:
		m.overlay = overlayNone
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleKey runs the global keys that apply when no form has focus.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	m.notice = ""
	if m.focused() {
		return m.updateActiveView(msg)
	}
	m.lastErr = nil

	if m.overlay == overlayHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Back) {
			m.overlay = overlayNone
		}
		return m, nil
	}

	snap := m.store.Snapshot()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.overlay = overlayHelp
		return m, nil
	case key.Matches(msg, m.keys.Command):
		m.overlay = overlayCommand
		return m, m.commandView.Focus()
	case key.Matches(msg, m.keys.Dashboard):
		return m, m.setView(reducer.ViewDashboard)
	case key.Matches(msg, m.keys.Tasks):
		return m, m.setView(reducer.ViewTasks)
	case key.Matches(msg, m.keys.Settings):
		return m, m.setView(reducer.ViewSettings)
	case key.Matches(msg, m.keys.Profile):
		return m, m.setView(reducer.ViewProfile)
	case key.Matches(msg, m.keys.Sidebar):
		return m, m.toggleSidebar()
	case key.Matches(msg, m.keys.DarkMode):
		return m, m.dispatch(reducer.ToggleDarkMode{})
	case key.Matches(msg, m.keys.New):
		if snap.ActiveView.ShowsTasks() {
			return m, m.openForm()
		}
	}

	return m.updateActiveView(msg)
}

// focused reports whether a text input or form should receive every key.
func (m Model) focused() bool {
	if m.overlay == overlayCommand {
		return true
	}
	snap := m.store.Snapshot()
	if snap.ShowAddForm && m.form.Active() {
		return true
	}
	switch snap.ActiveView {
	case reducer.ViewProfile:
		return m.profileView.Editing()
	case reducer.ViewSettings:
		return m.settingsView.Editing()
	default:
		return false
	}
}

// updateActiveView dispatches the message to the component that has focus.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.overlay == overlayCommand {
		m.commandView, cmd = m.commandView.Update(msg)
		return m, cmd
	}

	snap := m.store.Snapshot()
	if snap.ShowAddForm {
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	switch snap.ActiveView {
	case reducer.ViewProfile:
		m.profileView, cmd = m.profileView.Update(msg)
	case reducer.ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	default:
		m.grid, cmd = m.grid.Update(msg)
	}
	return m, cmd
}

// dispatch applies a to the store and brings the components up to date.
func (m *Model) dispatch(a reducer.Action) tea.Cmd {
	snap, err := m.store.Dispatch(context.Background(), a)
	if err != nil {
		m.lastErr = err
		m.logger.Error("dispatch failed", "action", fmt.Sprintf("%T", a), "err", err)
	}
	return m.sync(snap)
}

// sync applies the parts of the state that live outside the store.
func (m *Model) sync(snap reducer.State) tea.Cmd {
	if theme.IsDark() != snap.IsDarkMode {
		theme.Apply(snap.IsDarkMode)
	}
	if m.layout.SidebarCollapsed != snap.SidebarCollapsed {
		m.layout.SidebarCollapsed = snap.SidebarCollapsed
		m.resize()
	}
	return m.grid.Refresh()
}

// setView switches the content area. Leaving a view cancels its timers.
func (m *Model) setView(v reducer.View) tea.Cmd {
	if m.store.Snapshot().ActiveView != v {
		m.resetViewContext()
		m.logger.Debug("view changed", "view", v.String())
	}
	m.overlay = overlayNone
	return m.dispatch(reducer.SetActiveView{View: v})
}

func (m *Model) resetViewContext() {
	m.cancelView()
	m.viewCtx, m.cancelView = context.WithCancel(context.Background())
	m.viewGen++
}

func (m *Model) openForm() tea.Cmd {
	cmd := m.dispatch(reducer.SetShowAddForm{Show: true})
	return tea.Batch(cmd, m.form.Start(m.cfg.Preferences.DefaultPriority))
}

func (m *Model) toggleSidebar() tea.Cmd {
	cmd := m.dispatch(reducer.ToggleSidebar{})
	m.cfg.Display.SidebarCollapsed = m.store.Snapshot().SidebarCollapsed
	return tea.Batch(cmd, m.saveConfig())
}

func (m Model) cancelDelete(id string) (tea.Model, tea.Cmd) {
	if err := m.pending.cancel(id); err != nil {
		return m, nil
	}
	return m, m.dispatch(reducer.CancelDeletion{ID: id})
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.cancelView()
	return m, tea.Quit
}

// resize hands the layout dimensions to every component.
func (m *Model) resize() {
	w := m.layout.ContentWidth()
	h := m.layout.ContentHeight()
	m.sidebar.SetSize(m.layout.ContentHeight() + m.layout.HeaderHeight)
	m.header.SetSize(w)
	m.grid.SetSize(w, max(h-2, 0))
	m.form.SetSize(w, h)
	m.profileView.SetSize(w, h)
	m.settingsView.SetSize(w, h)
	m.helpView.SetSize(w, h)
	m.commandView.SetSize(w, h)
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	snap := m.store.Snapshot()
	content := lipgloss.NewStyle().
		Width(m.layout.ContentWidth()).
		Height(m.layout.ContentHeight()).
		MaxHeight(m.layout.ContentHeight()).
		Render(m.renderContent(snap))

	return m.layout.RenderWithFrame(
		m.sidebar.View(),
		m.header.View(),
		content,
		m.statusBar(snap),
	)
}

// renderContent returns the overlay or the active view.
func (m Model) renderContent(snap reducer.State) string {
	switch m.overlay {
	case overlayHelp:
		return m.helpView.View()
	case overlayCommand:
		return m.commandView.View()
	}
	if snap.ShowAddForm {
		if m.form.Active() {
			return m.form.View()
		}
		return theme.HelpStyle.Render("Adding task…")
	}

	switch snap.ActiveView {
	case reducer.ViewDashboard:
		return m.renderDashboard(snap)
	case reducer.ViewTasks:
		return m.renderTasks(snap)
	case reducer.ViewProfile:
		return m.profileView.View()
	case reducer.ViewSettings:
		return m.settingsView.View()
	default:
		return m.renderDashboard(snap)
	}
}

func (m Model) renderDashboard(snap reducer.State) string {
	stats := model.ComputeStats(snap.Tasks)
	summary := fmt.Sprintf("%s  %s  %s  %s",
		theme.TitleStyle.UnsetMarginBottom().Render(fmt.Sprintf("%d tasks", stats.Total)),
		theme.StatusStyle(model.StatusPending).Render(fmt.Sprintf("%d pending", stats.Pending)),
		theme.StatusStyle(model.StatusInProgress).Render(fmt.Sprintf("%d in progress", stats.InProgress)),
		theme.StatusStyle(model.StatusCompleted).Render(fmt.Sprintf("%d completed", stats.Completed)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, summary, "", m.grid.View())
}

func (m Model) renderTasks(snap reducer.State) string {
	title := theme.TitleStyle.UnsetMarginBottom().Render(fmt.Sprintf("All tasks (%d)", len(snap.Tasks)))
	return lipgloss.JoinVertical(lipgloss.Left, title, "", m.grid.View())
}

// statusBar shows the latest error, a notice, or keyboard hints.
func (m Model) statusBar(snap reducer.State) string {
	if m.lastErr != nil {
		return m.layout.RenderErrorBar("error: " + m.lastErr.Error())
	}
	if m.notice != "" {
		return m.layout.RenderStatusBar(m.notice)
	}
	return m.layout.RenderStatusBar(m.keyHints(snap))
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints(snap reducer.State) string {
	switch {
	case m.overlay == overlayHelp:
		return "? close help | esc back"
	case m.overlay == overlayCommand:
		return "enter execute | esc back"
	case snap.ShowAddForm:
		return "enter next | esc cancel"
	}

	switch snap.ActiveView {
	case reducer.ViewProfile:
		if m.profileView.Editing() {
			return "enter save | esc cancel"
		}
		return "e edit | 1-3 views | ? help | q quit"
	case reducer.ViewSettings:
		if m.settingsView.Editing() {
			return "enter confirm | esc cancel"
		}
		return "e edit | D dark | E export | C clear | q quit"
	default:
		return "n new | x done | s status | d delete | b sidebar | D dark | ? help | q quit"
	}
}
