package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Joseda-hg/dailytodo/internal/codec"
	"github.com/Joseda-hg/dailytodo/internal/model"
	"github.com/Joseda-hg/dailytodo/internal/progress"
)

const (
	KeyTasks     = "daily-todo-tasks"
	KeySettings  = "daily-todo-settings"
	KeyLastReset = "daily-todo-last-reset"
)

var ErrEmptyName = errors.New("task name is required")

// Storage is the key-value contract the tracker persists through.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// PendingIncrement is the per-task custom increment input: whether it is
// shown and the amount typed into it.
type PendingIncrement struct {
	Visible bool
	Value   int
}

// State is everything a front end needs to render the task list. Every
// tracker operation takes a State and returns the next one; the input is
// never modified.
type State struct {
	Tasks   []model.Task
	Pending map[string]PendingIncrement
}

type NewTask struct {
	Name             string `json:"name"`
	Total            int    `json:"total"`
	DefaultIncrement int    `json:"defaultIncrement"`
	StartValue       int    `json:"startValue"`
	IncludeInTotal   *bool  `json:"includeInTotal"`
}

// TaskEdit carries the fields to change; nil fields keep their value.
type TaskEdit struct {
	Name             *string `json:"name,omitempty"`
	Total            *int    `json:"total,omitempty"`
	Current          *int    `json:"current,omitempty"`
	DefaultIncrement *int    `json:"defaultIncrement,omitempty"`
	StartValue       *int    `json:"startValue,omitempty"`
	IncludeInTotal   *bool   `json:"includeInTotal,omitempty"`
}

type Tracker struct {
	store Storage
	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

type Option func(*Tracker)

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(t *Tracker) { t.log = logger }
}

func WithIDGenerator(newID func() string) Option {
	return func(t *Tracker) { t.newID = newID }
}

func New(store Storage, opts ...Option) *Tracker {
	t := &Tracker{
		store: store,
		log:   zap.NewNop(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) Today() model.Day {
	return model.DayOf(t.now())
}

func (t *Tracker) Load(ctx context.Context) (State, error) {
	state := State{Tasks: []model.Task{}, Pending: map[string]PendingIncrement{}}

	raw, ok, err := t.store.Get(ctx, KeyTasks)
	if err != nil {
		return State{}, fmt.Errorf("load tasks: %w", err)
	}
	if !ok {
		if err := t.markFirstLaunch(ctx); err != nil {
			return State{}, err
		}
		return state, nil
	}

	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return State{}, fmt.Errorf("parse stored tasks: %w", err)
	}
	for _, task := range tasks {
		state.Tasks = append(state.Tasks, model.Normalize(task))
	}
	return state, nil
}

func (t *Tracker) markFirstLaunch(ctx context.Context) error {
	if _, ok, err := t.store.Get(ctx, KeyLastReset); err != nil || ok {
		return err
	}
	if err := t.store.Set(ctx, KeyLastReset, string(t.Today())); err != nil {
		return fmt.Errorf("mark first launch: %w", err)
	}
	return nil
}

func (t *Tracker) AddTask(ctx context.Context, state State, input NewTask) (State, model.Task, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return state, model.Task{}, ErrEmptyName
	}

	task := model.Task{
		ID:               t.newID(),
		Name:             name,
		Total:            input.Total,
		Current:          input.StartValue,
		DefaultIncrement: input.DefaultIncrement,
		StartValue:       input.StartValue,
		IncludeInTotal:   input.IncludeInTotal == nil || *input.IncludeInTotal,
		CreatedDate:      t.Today(),
	}
	if task.Total == 0 {
		task.Total = model.DefaultTotal
	}
	if task.DefaultIncrement == 0 {
		task.DefaultIncrement = model.DefaultIncrement
	}
	task = model.Normalize(task)

	next := state.clone()
	next.Tasks = append(next.Tasks, task)
	if err := t.persist(ctx, next.Tasks); err != nil {
		return state, model.Task{}, err
	}

	t.log.Info("task added", zap.String("id", task.ID), zap.String("name", task.Name), zap.Int("total", task.Total))
	return next, task, nil
}

// Complete applies the task's default increment.
func (t *Tracker) Complete(ctx context.Context, state State, id string) (State, error) {
	tasks, err := progress.ApplyDefaultIncrement(state.Tasks, id, t.Today())
	if err != nil {
		return state, err
	}
	return t.commitProgress(ctx, state, tasks, id)
}

func (t *Tracker) Increment(ctx context.Context, state State, id string, amount int) (State, error) {
	tasks, err := progress.ApplyCustomIncrement(state.Tasks, id, amount, t.Today())
	if err != nil {
		return state, err
	}
	return t.commitProgress(ctx, state, tasks, id)
}

// ApplyPending adds the amount held in the task's custom increment input
// (1 when nothing was entered) and hides the input.
func (t *Tracker) ApplyPending(ctx context.Context, state State, id string) (State, error) {
	amount := state.Pending[id].Value
	if amount == 0 {
		amount = 1
	}
	next, err := t.Increment(ctx, state, id, amount)
	if err != nil {
		return state, err
	}
	pending := next.Pending[id]
	pending.Visible = false
	pending.Value = amount
	next.Pending[id] = pending
	return next, nil
}

func (t *Tracker) commitProgress(ctx context.Context, state State, tasks []model.Task, id string) (State, error) {
	if err := t.persist(ctx, tasks); err != nil {
		return state, err
	}
	next := state.clone()
	next.Tasks = tasks

	task, _, _ := progress.Find(tasks, id)
	t.log.Debug("progress updated", zap.String("id", id), zap.Int("current", task.Current), zap.Int("total", task.Total))
	return next, nil
}

// ToggleCustom shows or hides the custom increment input of a task. The
// first time it opens, the input starts at 1.
func ToggleCustom(state State, id string) State {
	next := state.clone()
	pending := next.Pending[id]
	pending.Visible = !pending.Visible
	if pending.Value == 0 {
		pending.Value = 1
	}
	next.Pending[id] = pending
	return next
}

func SetCustomValue(state State, id string, value int) State {
	next := state.clone()
	pending := next.Pending[id]
	pending.Value = value
	next.Pending[id] = pending
	return next
}

func (t *Tracker) EditTask(ctx context.Context, state State, id string, edit TaskEdit) (State, model.Task, error) {
	before, index, err := progress.Find(state.Tasks, id)
	if err != nil {
		return state, model.Task{}, err
	}

	after := before
	if edit.Name != nil {
		after.Name = strings.TrimSpace(*edit.Name)
		if after.Name == "" {
			return state, model.Task{}, ErrEmptyName
		}
	}
	if edit.Total != nil {
		after.Total = *edit.Total
	}
	if edit.Current != nil {
		after.Current = *edit.Current
	}
	if edit.DefaultIncrement != nil {
		after.DefaultIncrement = *edit.DefaultIncrement
	}
	if edit.StartValue != nil {
		after.StartValue = *edit.StartValue
	}
	if edit.IncludeInTotal != nil {
		after.IncludeInTotal = *edit.IncludeInTotal
	}
	after = model.Normalize(after)
	if after.Current != before.Current {
		after.LastUpdatedDate = t.Today()
	}

	next := state.clone()
	next.Tasks[index] = after
	if err := t.persist(ctx, next.Tasks); err != nil {
		return state, model.Task{}, err
	}

	t.log.Info("task edited", zap.String("id", id))
	return next, after, nil
}

// DeleteTask removes the task and drops its custom increment input.
func (t *Tracker) DeleteTask(ctx context.Context, state State, id string) (State, error) {
	_, index, err := progress.Find(state.Tasks, id)
	if err != nil {
		return state, err
	}

	next := state.clone()
	next.Tasks = append(next.Tasks[:index], next.Tasks[index+1:]...)
	delete(next.Pending, id)
	if err := t.persist(ctx, next.Tasks); err != nil {
		return state, err
	}

	t.log.Info("task deleted", zap.String("id", id))
	return next, nil
}

func (t *Tracker) Export(state State) (string, error) {
	token, err := codec.Encode(state.Tasks, t.now())
	if err != nil {
		return "", err
	}
	t.log.Info("tasks exported", zap.Int("count", len(state.Tasks)))
	return token, nil
}

// Import decodes token and, if confirm accepts the decoded tasks, replaces
// the whole collection with them. A nil confirm accepts. The returned bool
// reports whether the collection was replaced.
func (t *Tracker) Import(ctx context.Context, state State, token string, confirm func([]model.Task) bool) (State, bool, error) {
	tasks, err := codec.Decode(token)
	if err != nil {
		t.log.Info("import rejected", zap.Error(err))
		return state, false, err
	}
	if confirm != nil && !confirm(tasks) {
		return state, false, nil
	}

	if err := t.persist(ctx, tasks); err != nil {
		return state, false, err
	}

	t.log.Info("tasks imported", zap.Int("count", len(tasks)))
	return State{Tasks: tasks, Pending: map[string]PendingIncrement{}}, true, nil
}

func (t *Tracker) LoadSettings(ctx context.Context) (model.Settings, error) {
	raw, ok, err := t.store.Get(ctx, KeySettings)
	if err != nil {
		return model.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	if !ok {
		return model.DefaultSettings(), nil
	}

	var settings model.Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return model.Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return model.NormalizeSettings(settings), nil
}

func (t *Tracker) SaveSettings(ctx context.Context, settings model.Settings) (model.Settings, error) {
	settings = model.NormalizeSettings(settings)
	payload, err := json.Marshal(settings)
	if err != nil {
		return model.Settings{}, err
	}
	if err := t.store.Set(ctx, KeySettings, string(payload)); err != nil {
		return model.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}

func (t *Tracker) persist(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	payload, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := t.store.Set(ctx, KeyTasks, string(payload)); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func (s State) Totals() progress.Totals {
	return progress.ComputeTotals(s.Tasks)
}

func (s State) Stats(today model.Day) progress.DailyStats {
	return progress.ComputeDailyStats(s.Tasks, today)
}

func (s State) clone() State {
	tasks := make([]model.Task, len(s.Tasks))
	copy(tasks, s.Tasks)
	pending := make(map[string]PendingIncrement, len(s.Pending))
	for id, value := range s.Pending {
		pending[id] = value
	}
	return State{Tasks: tasks, Pending: pending}
}
