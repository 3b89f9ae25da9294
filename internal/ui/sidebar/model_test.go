package sidebar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/taskmaster/internal/model"
	"github.com/nhle/taskmaster/internal/reducer"
)

type fakeSource struct{ s reducer.State }

func (f *fakeSource) Snapshot() reducer.State { return f.s }

func TestNew_PanicsWithoutSource(t *testing.T) {
	assert.Panics(t, func() { New(nil, model.Profile{}) })
}

func TestView_Expanded(t *testing.T) {
	src := &fakeSource{s: reducer.Initial()}
	m := New(src, model.Profile{Name: "Priya Das"})
	m.SetSize(20)

	out := m.View()
	assert.Contains(t, out, AppName)
	assert.Contains(t, out, "1 ▦ Dashboard")
	assert.Contains(t, out, "2 ☑ Tasks")
	assert.Contains(t, out, "3 ⚙ Settings")
	assert.Contains(t, out, "(PD) Priya Das")
	assert.Contains(t, out, "Dark mode")
	assert.NotContains(t, out, "Profile", "profile is not a nav entry")
}

func TestView_CollapsedHidesLabels(t *testing.T) {
	s := reducer.Initial()
	s.SidebarCollapsed = true
	s.IsDarkMode = true
	m := New(&fakeSource{s: s}, model.Profile{Name: "Priya Das"})

	out := m.View()
	assert.NotContains(t, out, "Dashboard")
	assert.NotContains(t, out, AppName)
	assert.Contains(t, out, "PD")
	assert.Contains(t, out, "☀")
}
