// Package services contains the Manager, the authoritative in-memory store
// of tasks grouped by due day.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/tasklist/internal/tasks/application"
	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
	"github.com/felixgeelhaar/tasklist/pkg/observability"
)

// Manager holds every task in memory, bucketed by the day key of its due
// date, and writes the whole state through the repository after each
// mutation. A failed write is returned to the caller but the in-memory
// change is kept; Flush retries it.
//
// One mutex guards the state and is held across mutation and persist, so
// concurrent writers are serialized.
type Manager struct {
	mu      sync.RWMutex
	repo    task.StateRepository
	state   task.State
	loc     *time.Location
	logger  *slog.Logger
	metrics observability.Metrics
	dirty   bool
}

var _ application.TaskStore = (*Manager)(nil)

// Option configures a Manager.
type Option func(*Manager)

// WithLocation sets the time zone used to compute day keys.
func WithLocation(loc *time.Location) Option {
	return func(m *Manager) {
		if loc != nil {
			m.loc = loc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(metrics observability.Metrics) Option {
	return func(m *Manager) {
		if metrics != nil {
			m.metrics = metrics
		}
	}
}

// NewManager creates a Manager and loads its state from repo. A slot that
// was never written yields an empty store.
func NewManager(ctx context.Context, repo task.StateRepository, opts ...Option) (*Manager, error) {
	m := &Manager{
		repo:    repo,
		state:   task.State{},
		loc:     time.Local,
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.Reload(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// Location returns the time zone used for day keys.
func (m *Manager) Location() *time.Location {
	return m.loc
}

// DayOf returns the day key for t in the manager's time zone.
func (m *Manager) DayOf(t time.Time) task.Day {
	return task.NormalizeDay(t, m.loc)
}

// Reload replaces the in-memory state with the repository content.
func (m *Manager) Reload(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	fresh := false
	state, err := observability.TimeOperationResult(ctx, m.logger, m.metrics, "load", func() (task.State, error) {
		s, err := m.repo.Load(ctx)
		if errors.Is(err, task.ErrSlotNotFound) {
			fresh = true
			return task.State{}, nil
		}
		return s, err
	})
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	if fresh {
		m.logger.InfoContext(ctx, "no stored tasks, starting empty")
	}

	if misplaced := state.Misplaced(m.loc); len(misplaced) > 0 {
		m.logger.WarnContext(ctx, "moving tasks stored under the wrong day",
			"count", len(misplaced),
			"location", m.loc.String(),
		)
		state = m.rebucket(state)
	}

	m.state = state.Clone()
	m.recordSize()
	return nil
}

// rebucket rebuilds state so every task sits under its own day key.
// Relative order is kept for tasks sharing a bucket.
func (m *Manager) rebucket(state task.State) task.State {
	out := make(task.State, len(state))
	for _, day := range state.Days() {
		for _, t := range state[day] {
			key := task.NormalizeDay(t.DueDate, m.loc)
			out[key] = append(out[key], t)
		}
	}
	return out
}

// GetTasks returns the tasks due on day, ascending by due time. Unknown days
// yield an empty slice.
func (m *Manager) GetTasks(day task.Day) []task.Task {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return task.SortByDueDate(m.state[day])
}

// GetAllTasks returns every stored task. Order across days is unspecified.
func (m *Manager) GetAllTasks() []task.Task {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]task.Task, 0, m.state.Len())
	for _, tasks := range m.state {
		all = append(all, tasks...)
	}
	return all
}

// GetAllDays returns the days holding at least one task, ascending.
func (m *Manager) GetAllDays() []task.Day {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state.Days()
}

// GetGrouped returns one group per non-empty day, ascending by day, with
// each group's tasks ascending by due time.
func (m *Manager) GetGrouped() []task.DayGroup {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state.Grouped()
}

// Get finds a task by id in any bucket.
func (m *Manager) Get(id uuid.UUID) (task.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	day, idx, ok := m.find(id, "")
	if !ok {
		return task.Task{}, fmt.Errorf("task %s: %w", id, task.ErrTaskNotFound)
	}
	return m.state[day][idx], nil
}

// Snapshot returns a deep copy of the current state.
func (m *Manager) Snapshot() task.State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state.Clone()
}

// Add appends t to the bucket of its due day and persists. A record that
// could never be encoded is rejected with task.ErrMalformedTask before the
// state changes.
func (m *Manager) Add(ctx context.Context, t task.Task) error {
	if err := t.ValidateRecord(); err != nil {
		return fmt.Errorf("add task: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	day := task.NormalizeDay(t.DueDate, m.loc)
	m.state[day] = append(m.state[day], t)
	m.metrics.Counter(observability.MetricTasksAdded, 1)

	m.logger.DebugContext(ctx, "task added",
		observability.TaskIDKey, t.ID.String(),
		observability.DayKey, day.String(),
	)

	return m.persist(ctx, "task.add")
}

// Update replaces the stored task with the same id. When the due day
// changed, the task moves to the new day's bucket and the old bucket is
// dropped if it becomes empty. Returns task.ErrTaskNotFound, without
// persisting, when no task has that id, and task.ErrMalformedTask for a
// record that could never be encoded.
func (m *Manager) Update(ctx context.Context, t task.Task) error {
	if err := t.ValidateRecord(); err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	newDay := task.NormalizeDay(t.DueDate, m.loc)
	oldDay, idx, ok := m.find(t.ID, newDay)
	if !ok {
		return fmt.Errorf("update task %s: %w", t.ID, task.ErrTaskNotFound)
	}

	if oldDay == newDay {
		m.state[newDay][idx] = t
	} else {
		m.removeAt(oldDay, idx)
		m.state[newDay] = append(m.state[newDay], t)
		m.metrics.Counter(observability.MetricTasksMoved, 1)
		m.logger.DebugContext(ctx, "task moved to new day",
			observability.TaskIDKey, t.ID.String(),
			"from", oldDay.String(),
			"to", newDay.String(),
		)
	}
	m.metrics.Counter(observability.MetricTasksUpdated, 1)

	return m.persist(ctx, "task.update")
}

// Delete removes the task with t.ID from the bucket of t.DueDate, dropping
// the bucket when it becomes empty. Returns task.ErrTaskNotFound when the
// bucket or the id is absent.
func (m *Manager) Delete(ctx context.Context, t task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	day := task.NormalizeDay(t.DueDate, m.loc)
	idx := indexOf(m.state[day], t.ID)
	if idx < 0 {
		return fmt.Errorf("delete task %s on %s: %w", t.ID, day, task.ErrTaskNotFound)
	}

	m.removeAt(day, idx)
	m.metrics.Counter(observability.MetricTasksDeleted, 1)

	return m.persist(ctx, "task.delete")
}

// Flush writes the current state again, retrying a previously failed save.
func (m *Manager) Flush(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.persist(ctx, "task.flush")
}

// persist must be called with the write lock held.
func (m *Manager) persist(ctx context.Context, operation string) error {
	ctx = observability.WithOperation(ctx, operation)
	err := observability.TimeOperation(ctx, m.logger, m.metrics, "persist", func() error {
		return m.repo.Save(ctx, m.state)
	}, observability.T("trigger", operation))
	m.recordSize()

	if err != nil {
		m.dirty = true
		m.metrics.Counter(observability.MetricPersistErrors, 1)
		return fmt.Errorf("%s: %w", operation, err)
	}
	m.dirty = false
	m.metrics.Histogram(observability.MetricPersistTasks, float64(m.state.Len()))
	return nil
}

// Dirty reports whether the last write failed, leaving memory ahead of the
// slot.
func (m *Manager) Dirty() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dirty
}

func (m *Manager) recordSize() {
	m.metrics.Gauge(observability.MetricTasksStored, float64(m.state.Len()))
	m.metrics.Gauge(observability.MetricDaysStored, float64(len(m.state.Days())))
}

// find locates id, checking the preferred bucket first and then the rest
// in day order.
func (m *Manager) find(id uuid.UUID, preferred task.Day) (task.Day, int, bool) {
	if preferred != "" {
		if idx := indexOf(m.state[preferred], id); idx >= 0 {
			return preferred, idx, true
		}
	}

	days := make([]task.Day, 0, len(m.state))
	for day := range m.state {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	for _, day := range days {
		if day == preferred {
			continue
		}
		if idx := indexOf(m.state[day], id); idx >= 0 {
			return day, idx, true
		}
	}
	return "", -1, false
}

func (m *Manager) removeAt(day task.Day, idx int) {
	tasks := m.state[day]
	rest := append(tasks[:idx:idx], tasks[idx+1:]...)
	if len(rest) == 0 {
		delete(m.state, day)
		return
	}
	m.state[day] = rest
}

func indexOf(tasks []task.Task, id uuid.UUID) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
