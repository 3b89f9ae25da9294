package state_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/taskmaster/internal/model"
	"github.com/nhle/taskmaster/internal/reducer"
	"github.com/nhle/taskmaster/internal/state"
	"github.com/nhle/taskmaster/internal/store"
	"github.com/nhle/taskmaster/tests/testutil"
)

var testNow = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

func newTestReducer() reducer.Reducer {
	var mu sync.Mutex
	n := 0
	return reducer.Reducer{
		Now: func() time.Time { return testNow },
		NewID: func() string {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("t%d", n)
		},
	}
}

func newHydratedStore(t *testing.T) (*state.Store, *store.SQLiteStore) {
	t.Helper()
	kv := testutil.NewTestStore(t)
	s := state.New(newTestReducer(), store.NewPersistence(kv, nil), nil)
	_, err := s.Hydrate(context.Background())
	require.NoError(t, err)
	return s, kv
}

func TestHydrate_SeedsDemoTasks(t *testing.T) {
	s, _ := newHydratedStore(t)

	snap := s.Snapshot()
	assert.Len(t, snap.Tasks, 4)
	assert.False(t, snap.IsDarkMode)
	assert.Equal(t, reducer.ViewDashboard, snap.ActiveView)
}

func TestHydrate_RestoresSavedState(t *testing.T) {
	ctx := context.Background()
	kv := testutil.NewTestStore(t)
	p := store.NewPersistence(kv, nil)
	saved := []model.Task{{
		ID: "x", Title: "Saved", Priority: model.PriorityMedium, Status: model.StatusPending,
		DueDate: testNow, CreatedAt: testNow,
	}}
	require.NoError(t, p.SaveTasks(ctx, saved))
	require.NoError(t, p.SaveDarkMode(ctx, true))

	s := state.New(newTestReducer(), p, nil)
	snap, err := s.Hydrate(ctx)
	require.NoError(t, err)

	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, "Saved", snap.Tasks[0].Title)
	assert.True(t, snap.IsDarkMode)
}

func TestDispatch_PersistsTaskChanges(t *testing.T) {
	ctx := context.Background()
	s, kv := newHydratedStore(t)

	_, err := s.Dispatch(ctx, reducer.AddTask{Draft: model.TaskDraft{
		Title: "Buy milk", Priority: model.PriorityLow, Status: model.StatusPending,
		DueDate: testNow.Add(24 * time.Hour),
	}})
	require.NoError(t, err)

	tasks, err := store.NewPersistence(kv, nil).LoadTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 5)
	assert.Equal(t, "Buy milk", tasks[0].Title)
}

func TestDispatch_FlagChangesDoNotWriteTasks(t *testing.T) {
	ctx := context.Background()
	s, kv := newHydratedStore(t)

	before, _, err := kv.Get(ctx, store.KeyTasks)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, store.KeyTasks, "sentinel"))

	_, err = s.Dispatch(ctx, reducer.ToggleSidebar{})
	require.NoError(t, err)
	_, err = s.Dispatch(ctx, reducer.SetActiveView{View: reducer.ViewSettings})
	require.NoError(t, err)

	raw, _, err := kv.Get(ctx, store.KeyTasks)
	require.NoError(t, err)
	assert.Equal(t, "sentinel", raw)
	assert.NotEqual(t, before, raw)
}

func TestHydrate_SeedSurvivesRestartWithoutEdits(t *testing.T) {
	ctx := context.Background()
	s, kv := newHydratedStore(t)
	first := s.Snapshot().Tasks

	_, err := s.Dispatch(ctx, reducer.ToggleDarkMode{})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	reloaded := state.New(newTestReducer(), store.NewPersistence(kv, nil), nil)
	snap, err := reloaded.Hydrate(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, snap.Tasks)
	assert.True(t, snap.IsDarkMode)
}

func TestDispatch_DarkModeToggledTwice(t *testing.T) {
	ctx := context.Background()
	s, kv := newHydratedStore(t)

	snap, err := s.Dispatch(ctx, reducer.ToggleDarkMode{})
	require.NoError(t, err)
	assert.True(t, snap.IsDarkMode)
	raw, _, _ := kv.Get(ctx, store.KeyDarkMode)
	assert.Equal(t, "true", raw)

	snap, err = s.Dispatch(ctx, reducer.ToggleDarkMode{})
	require.NoError(t, err)
	assert.False(t, snap.IsDarkMode)
	raw, ok, err := kv.Get(ctx, store.KeyDarkMode)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "false", raw)
}

func TestDispatch_StatusUpdateKeepsOrder(t *testing.T) {
	ctx := context.Background()
	kv := testutil.NewTestStore(t)
	p := store.NewPersistence(kv, nil)
	a := model.Task{ID: "A", Title: "A", Priority: model.PriorityHigh, Status: model.StatusCompleted,
		DueDate: testNow, CreatedAt: testNow}
	b := model.Task{ID: "B", Title: "B", Priority: model.PriorityLow, Status: model.StatusPending,
		DueDate: testNow, CreatedAt: testNow}
	require.NoError(t, p.SaveTasks(ctx, []model.Task{a, b}))
	s := state.New(newTestReducer(), p, nil)
	_, err := s.Hydrate(ctx)
	require.NoError(t, err)

	snap, err := s.Dispatch(ctx, reducer.UpdateStatus{ID: "B", Status: model.StatusCompleted})
	require.NoError(t, err)

	require.Len(t, snap.Tasks, 2)
	assert.Equal(t, "A", snap.Tasks[0].ID)
	assert.Equal(t, model.StatusCompleted, snap.Tasks[0].Status)
	assert.Equal(t, "B", snap.Tasks[1].ID)
	assert.Equal(t, model.StatusCompleted, snap.Tasks[1].Status)
}

func TestDispatch_DeletingEverythingKeepsLastSavedList(t *testing.T) {
	ctx := context.Background()
	s, kv := newHydratedStore(t)

	for _, task := range s.Snapshot().Tasks {
		_, err := s.Dispatch(ctx, reducer.MarkForDeletion{ID: task.ID})
		require.NoError(t, err)
		_, err = s.Dispatch(ctx, reducer.CommitDeletion{ID: task.ID})
		require.NoError(t, err)
	}
	require.Empty(t, s.Snapshot().Tasks)

	// A fresh process sees the list as it was before the last delete.
	reloaded := state.New(newTestReducer(), store.NewPersistence(kv, nil), nil)
	snap, err := reloaded.Hydrate(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, "4", snap.Tasks[0].ID)
}

func TestDispatch_ReturnsStorageErrorButKeepsState(t *testing.T) {
	ctx := context.Background()
	kv := &testutil.FailingKV{KV: testutil.NewTestStore(t)}
	s := state.New(newTestReducer(), store.NewPersistence(kv, nil), nil)
	_, err := s.Hydrate(ctx)
	require.NoError(t, err)

	kv.FailSet = true
	snap, err := s.Dispatch(ctx, reducer.UpdateStatus{ID: "2", Status: model.StatusCompleted})

	assert.ErrorIs(t, err, testutil.ErrInjected)
	task, ok := snap.FindTask("2")
	require.True(t, ok)
	assert.Equal(t, model.StatusCompleted, task.Status)
}

func TestSnapshot_IsIsolated(t *testing.T) {
	s, _ := newHydratedStore(t)

	snap := s.Snapshot()
	snap.Tasks[0].Title = "mutated"

	assert.Equal(t, "Finish quarterly report", s.Snapshot().Tasks[0].Title)
}

func TestDispatch_ConcurrentAddsAreSerialized(t *testing.T) {
	ctx := context.Background()
	s, _ := newHydratedStore(t)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Dispatch(ctx, reducer.AddTask{Draft: model.TaskDraft{
				Title: fmt.Sprintf("task %d", i), Priority: model.PriorityMedium,
				Status: model.StatusPending, DueDate: testNow,
			}})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Len(t, snap.Tasks, 24)
	ids := make(map[string]bool)
	for _, task := range snap.Tasks {
		assert.False(t, ids[task.ID])
		ids[task.ID] = true
	}
}

func TestAccept(t *testing.T) {
	s, _ := newHydratedStore(t)

	err := s.Accept(model.TaskDraft{Title: " ", Priority: model.PriorityLow,
		Status: model.StatusPending, DueDate: testNow})
	assert.ErrorIs(t, err, model.ErrEmptyTitle)
}
