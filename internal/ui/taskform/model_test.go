package taskform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/taskmaster/internal/model"
)

var now = time.Date(2026, 7, 20, 15, 0, 0, 0, time.Local)

func newForm(t *testing.T) Model {
	t.Helper()
	m := New(func() time.Time { return now }, 80, 30)
	m.Start(model.PriorityHigh)
	return m
}

func TestStart_Defaults(t *testing.T) {
	m := newForm(t)

	assert.True(t, m.Active())
	assert.Equal(t, model.PriorityHigh, m.fb.priority)
	assert.Equal(t, model.StatusPending, m.fb.status)
	assert.Equal(t, "2026-07-20", m.fb.dueDate)
	assert.Contains(t, m.View(), "New Task")
}

func TestStart_InvalidDefaultPriority(t *testing.T) {
	m := New(func() time.Time { return now }, 80, 30)
	m.Start("urgent")
	assert.Equal(t, model.PriorityMedium, m.fb.priority)
}

func TestValidateDueDate(t *testing.T) {
	m := newForm(t)

	assert.NoError(t, m.validateDueDate("2026-07-20"), "today is allowed")
	assert.NoError(t, m.validateDueDate("2026-12-01"))
	assert.ErrorIs(t, m.validateDueDate("2026-07-19"), model.ErrDueDateInPast)
	assert.ErrorIs(t, m.validateDueDate(""), model.ErrMissingDueDate)
	assert.Error(t, m.validateDueDate("20/07/2026"))
}

func TestDraft(t *testing.T) {
	m := newForm(t)
	m.fb.title = "  Renew passport  "
	m.fb.status = model.StatusInProgress
	m.fb.dueDate = "2026-08-01"

	d, err := m.draft()
	require.NoError(t, err)
	assert.Equal(t, "Renew passport", d.Title)
	assert.Equal(t, model.PriorityHigh, d.Priority)
	assert.Equal(t, model.StatusInProgress, d.Status)
	assert.True(t, d.DueDate.Equal(time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)))

	m.fb.title = ""
	_, err = m.draft()
	assert.ErrorIs(t, err, model.ErrEmptyTitle)
}
