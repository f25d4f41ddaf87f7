package tracker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joseda-hg/dailytodo/internal/codec"
	"github.com/Joseda-hg/dailytodo/internal/db"
	"github.com/Joseda-hg/dailytodo/internal/model"
	"github.com/Joseda-hg/dailytodo/internal/progress"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func newTestTracker(t *testing.T) (*Tracker, *db.Store, *testClock) {
	t.Helper()
	conn, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	store := db.NewStore(conn)
	clock := &testClock{now: time.Date(2026, time.October, 18, 8, 0, 0, 0, time.Local)}
	next := 0
	tr := New(store, WithClock(clock.Now), WithIDGenerator(func() string {
		next++
		return fmt.Sprintf("task-%d", next)
	}))
	return tr, store, clock
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestLoadEmptyMarksFirstLaunch(t *testing.T) {
	tr, store, _ := newTestTracker(t)
	ctx := context.Background()

	state, err := tr.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.Tasks)
	assert.NotNil(t, state.Pending)

	value, ok, err := store.Get(ctx, KeyLastReset)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2026-10-18", value)
}

func TestLoadNormalizesLegacyTasks(t *testing.T) {
	tr, store, _ := newTestTracker(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, KeyTasks, `[{"id":"1","name":"Legacy","total":10,"current":3,"createdDate":"2024-01-01"}]`))

	state, err := tr.Load(ctx)
	require.NoError(t, err)
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, 1, state.Tasks[0].DefaultIncrement)
	assert.Equal(t, 0, state.Tasks[0].StartValue)
	assert.True(t, state.Tasks[0].IncludeInTotal)
}

func TestAddTaskAppliesDefaultsAndPersists(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()
	state, err := tr.Load(ctx)
	require.NoError(t, err)

	state, created, err := tr.AddTask(ctx, state, NewTask{Name: "  Read  "})
	require.NoError(t, err)

	assert.Equal(t, model.Task{
		ID:               "task-1",
		Name:             "Read",
		Total:            model.DefaultTotal,
		Current:          0,
		DefaultIncrement: model.DefaultIncrement,
		IncludeInTotal:   true,
		CreatedDate:      "2026-10-18",
	}, created)
	assert.Equal(t, []model.Task{created}, state.Tasks)

	reloaded, err := tr.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, state.Tasks, reloaded.Tasks)
}

func TestAddTaskRejectsEmptyName(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	state, err := tr.Load(context.Background())
	require.NoError(t, err)

	next, _, err := tr.AddTask(context.Background(), state, NewTask{Name: "   ", Total: 5})
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Empty(t, next.Tasks)
}

func TestAddTaskKeepsInsertionOrder(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()
	state, err := tr.Load(ctx)
	require.NoError(t, err)

	for _, name := range []string{"c", "a", "b"} {
		state, _, err = tr.AddTask(ctx, state, NewTask{Name: name, Total: 3})
		require.NoError(t, err)
	}
	state, err = tr.Complete(ctx, state, "task-2")
	require.NoError(t, err)

	names := []string{}
	for _, task := range state.Tasks {
		names = append(names, task.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestCompleteAndIncrement(t *testing.T) {
	tr, _, clock := newTestTracker(t)
	ctx := context.Background()
	state, err := tr.Load(ctx)
	require.NoError(t, err)
	state, _, err = tr.AddTask(ctx, state, NewTask{Name: "Run", Total: 10, DefaultIncrement: 4})
	require.NoError(t, err)

	before := state
	state, err = tr.Complete(ctx, state, "task-1")
	require.NoError(t, err)
	assert.Equal(t, 4, state.Tasks[0].Current)
	assert.Equal(t, 0, before.Tasks[0].Current, "previous state must stay untouched")
	assert.True(t, progress.IsCompletedToday(state.Tasks[0], tr.Today()))

	clock.now = clock.now.AddDate(0, 0, 1)
	assert.False(t, progress.IsCompletedToday(state.Tasks[0], tr.Today()))

	state, err = tr.Increment(ctx, state, "task-1", 100)
	require.NoError(t, err)
	assert.Equal(t, 10, state.Tasks[0].Current)
	assert.Equal(t, model.Day("2026-10-19"), state.Tasks[0].LastUpdatedDate)

	state, err = tr.Increment(ctx, state, "task-1", -100)
	require.NoError(t, err)
	assert.Equal(t, 0, state.Tasks[0].Current)
}

func TestCompleteUnknownTask(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	state, err := tr.Load(context.Background())
	require.NoError(t, err)

	_, err = tr.Complete(context.Background(), state, "nope")
	var notFound *progress.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestCustomIncrementInput(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()
	state, err := tr.Load(ctx)
	require.NoError(t, err)
	state, _, err = tr.AddTask(ctx, state, NewTask{Name: "Pages", Total: 50})
	require.NoError(t, err)

	state = ToggleCustom(state, "task-1")
	assert.Equal(t, PendingIncrement{Visible: true, Value: 1}, state.Pending["task-1"])

	state = SetCustomValue(state, "task-1", 7)
	state, err = tr.ApplyPending(ctx, state, "task-1")
	require.NoError(t, err)

	assert.Equal(t, 7, state.Tasks[0].Current)
	assert.False(t, state.Pending["task-1"].Visible)
	assert.Equal(t, 7, state.Pending["task-1"].Value)
}

func TestApplyPendingDefaultsToOne(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()
	state, err := tr.Load(ctx)
	require.NoError(t, err)
	state, _, err = tr.AddTask(ctx, state, NewTask{Name: "Pages", Total: 50})
	require.NoError(t, err)

	state, err = tr.ApplyPending(ctx, state, "task-1")
	require.NoError(t, err)
	assert.Equal(t, 1, state.Tasks[0].Current)
}

func TestEditTaskNormalizesAndTracksProgressDay(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()
	state, err := tr.Load(ctx)
	require.NoError(t, err)
	state, _, err = tr.AddTask(ctx, state, NewTask{Name: "Swim", Total: 10})
	require.NoError(t, err)

	state, edited, err := tr.EditTask(ctx, state, "task-1", TaskEdit{Name: strPtr("Swim laps")})
	require.NoError(t, err)
	assert.Equal(t, "Swim laps", edited.Name)
	assert.Equal(t, model.Day(""), edited.LastUpdatedDate, "renaming is not progress")

	state, edited, err = tr.EditTask(ctx, state, "task-1", TaskEdit{StartValue: intPtr(20), Total: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, 20, edited.StartValue)
	assert.Equal(t, 21, edited.Total)
	assert.Equal(t, 20, edited.Current)
	assert.Equal(t, tr.Today(), edited.LastUpdatedDate)
	assert.Equal(t, model.Day("2026-10-18"), edited.CreatedDate)
	assert.Equal(t, "task-1", state.Tasks[0].ID)

	_, _, err = tr.EditTask(ctx, state, "task-1", TaskEdit{Name: strPtr(" ")})
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestDeleteTaskPrunesPendingInput(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()
	state, err := tr.Load(ctx)
	require.NoError(t, err)
	state, _, err = tr.AddTask(ctx, state, NewTask{Name: "a"})
	require.NoError(t, err)
	state, _, err = tr.AddTask(ctx, state, NewTask{Name: "b"})
	require.NoError(t, err)
	state = ToggleCustom(state, "task-1")
	state = ToggleCustom(state, "task-2")

	state, err = tr.DeleteTask(ctx, state, "task-1")
	require.NoError(t, err)

	require.Len(t, state.Tasks, 1)
	assert.Equal(t, "task-2", state.Tasks[0].ID)
	_, ok := state.Pending["task-1"]
	assert.False(t, ok)
	assert.True(t, state.Pending["task-2"].Visible)

	_, err = tr.DeleteTask(ctx, state, "task-1")
	var notFound *progress.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestExportImportReplacesCollection(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()
	state, err := tr.Load(ctx)
	require.NoError(t, err)
	state, _, err = tr.AddTask(ctx, state, NewTask{Name: "读书", Total: 30})
	require.NoError(t, err)
	state, err = tr.Complete(ctx, state, "task-1")
	require.NoError(t, err)

	token, err := tr.Export(state)
	require.NoError(t, err)

	other, _, err := tr.AddTask(ctx, state, NewTask{Name: "other"})
	require.NoError(t, err)
	other = ToggleCustom(other, "task-2")

	var previewed int
	imported, replaced, err := tr.Import(ctx, other, token, func(tasks []model.Task) bool {
		previewed = len(tasks)
		return true
	})
	require.NoError(t, err)
	assert.True(t, replaced)
	assert.Equal(t, 1, previewed)
	assert.Equal(t, state.Tasks, imported.Tasks)
	assert.Empty(t, imported.Pending)

	reloaded, err := tr.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, state.Tasks, reloaded.Tasks)
}

func TestImportDeclinedKeepsState(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()
	state, err := tr.Load(ctx)
	require.NoError(t, err)
	state, _, err = tr.AddTask(ctx, state, NewTask{Name: "keep"})
	require.NoError(t, err)

	token, err := codec.Encode([]model.Task{{ID: "x", Name: "incoming", Total: 2}}, time.Now())
	require.NoError(t, err)

	next, replaced, err := tr.Import(ctx, state, token, func([]model.Task) bool { return false })
	require.NoError(t, err)
	assert.False(t, replaced)
	assert.Equal(t, state, next)

	reloaded, err := tr.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "keep", reloaded.Tasks[0].Name)
}

func TestImportMalformedKeepsState(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()
	state, err := tr.Load(ctx)
	require.NoError(t, err)

	_, replaced, err := tr.Import(ctx, state, "%%%", nil)
	var importErr *codec.ImportError
	require.True(t, errors.As(err, &importErr))
	assert.Equal(t, codec.MalformedToken, importErr.Kind)
	assert.False(t, replaced)
}

func TestSettingsRoundTrip(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()

	settings, err := tr.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultParticleCount, settings.ParticleCount)

	saved, err := tr.SaveSettings(ctx, model.Settings{ParticleCount: 250})
	require.NoError(t, err)
	assert.Equal(t, model.MaxParticleCount, saved.ParticleCount)

	loaded, err := tr.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) { return "", false, nil }

func (failingStore) Set(context.Context, string, string) error { return errors.New("disk full") }

func TestPersistFailureLeavesStateUntouched(t *testing.T) {
	tr := New(failingStore{})
	state := State{
		Tasks:   []model.Task{{ID: "a", Name: "a", Total: 5, DefaultIncrement: 1, IncludeInTotal: true}},
		Pending: map[string]PendingIncrement{"a": {Visible: true, Value: 2}},
	}

	next, err := tr.Complete(context.Background(), state, "a")
	require.Error(t, err)
	assert.Equal(t, state, next)

	next, err = tr.DeleteTask(context.Background(), state, "a")
	require.Error(t, err)
	assert.Equal(t, state, next)
	assert.Len(t, state.Pending, 1)
}

func TestStateAggregates(t *testing.T) {
	state := State{Tasks: []model.Task{
		{ID: "a", Current: 5, Total: 10, IncludeInTotal: true, LastUpdatedDate: "2026-10-18"},
		{ID: "b", Current: 100, Total: 100, IncludeInTotal: false},
	}}

	assert.Equal(t, progress.Totals{Current: 5, Total: 10, Percentage: 50}, state.Totals())
	assert.Equal(t, 1, state.Stats("2026-10-18").CompletedToday)
}
