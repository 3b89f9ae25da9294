package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/taskmaster/internal/model"
)

// addDueMsg fires when the submit delay has passed.
type addDueMsg struct {
	draft model.TaskDraft
}

// completeDueMsg fires when a completion toggle should be applied.
type completeDueMsg struct {
	id     string
	status model.Status
	gen    int
}

// deleteDueMsg fires when a marked task should be removed.
type deleteDueMsg struct {
	id  string
	gen int
}

// deleteCancelledMsg is sent when the view that started a delete timer
// went away before it fired.
type deleteCancelledMsg struct {
	id string
}

// after schedules fire under the active view's context.
func (m *Model) after(d time.Duration, fire, cancelled tea.Msg) tea.Cmd {
	return delay(m.viewCtx, d, fire, cancelled)
}

// delay returns a command that waits d and then yields fire. If ctx ends
// first it yields cancelled, which may be nil.
func delay(ctx context.Context, d time.Duration, fire, cancelled tea.Msg) tea.Cmd {
	return func() tea.Msg {
		if d <= 0 {
			if ctx.Err() != nil {
				return cancelled
			}
			return fire
		}

		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			return fire
		case <-ctx.Done():
			return cancelled
		}
	}
}

// clockInterval is how often due-date labels and alerts are recomputed.
const clockInterval = time.Minute

// clockTickMsg re-renders time-dependent text such as "Due today".
type clockTickMsg time.Time

func clockTick() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg { return clockTickMsg(t) })
}

// scheduleDigest computes when the next weekly digest is due.
func (m *Model) scheduleDigest() {
	m.nextDigest = time.Time{}
	if !m.cfg.Preferences.WeeklyDigest {
		return
	}
	next, err := m.cfg.Preferences.NextDigest(m.now())
	if err != nil {
		m.logger.Warn("weekly digest disabled", "err", err)
		return
	}
	m.nextDigest = next
}

// checkDigest shows the digest once its time has come.
func (m *Model) checkDigest() {
	if m.nextDigest.IsZero() || m.now().Before(m.nextDigest) {
		return
	}
	m.notice = model.DigestSummary(model.ComputeStats(m.store.Snapshot().Tasks))
	m.logger.Info("weekly digest", "due", m.nextDigest)
	m.scheduleDigest()
}
