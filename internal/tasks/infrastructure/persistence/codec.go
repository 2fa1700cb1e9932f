// Package persistence stores the task state in a single named slot. A
// SlotRepository combines the JSON StateCodec with one of the byte-level
// slots (memory, file, SQLite, PostgreSQL, Redis, WebDAV).
package persistence

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/value_objects"
)

// FormatVersion is written into every document.
const FormatVersion = 1

//go:embed state.schema.json
var stateSchemaSource string

var stateSchema = jsonschema.MustCompileString("state.schema.json", stateSchemaSource)

type stateDocument struct {
	Version int                  `json:"version"`
	Days    map[string][]taskRow `json:"days"`
}

type taskRow struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	Description         string `json:"description,omitempty"`
	DueDate             string `json:"due_date"`
	Status              string `json:"status"`
	Priority            string `json:"priority"`
	NotificationEnabled bool   `json:"notification_enabled"`
}

// StateCodec converts a task.State to and from its JSON document. Status
// and priority are stored by label, never by ordinal.
type StateCodec struct{}

// Encode serializes the state. Empty buckets are omitted. Failures wrap
// task.ErrEncoding.
func (StateCodec) Encode(state task.State) ([]byte, error) {
	doc := stateDocument{
		Version: FormatVersion,
		Days:    make(map[string][]taskRow, len(state)),
	}

	for day, tasks := range state {
		if len(tasks) == 0 {
			continue
		}
		rows := make([]taskRow, 0, len(tasks))
		for _, t := range tasks {
			row, err := taskToRow(t)
			if err != nil {
				return nil, fmt.Errorf("%w: day %s: %w", task.ErrEncoding, day, err)
			}
			rows = append(rows, row)
		}
		doc.Days[string(day)] = rows
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", task.ErrEncoding, err)
	}
	return data, nil
}

// Decode parses a document produced by Encode. Failures wrap
// task.ErrDecoding.
func (StateCodec) Decode(data []byte) (task.State, error) {
	var doc stateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", task.ErrDecoding, err)
	}
	if doc.Version != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", task.ErrDecoding, doc.Version)
	}
	if err := validateDocument(data); err != nil {
		return nil, fmt.Errorf("%w: %w", task.ErrDecoding, err)
	}

	state := make(task.State, len(doc.Days))
	for key, rows := range doc.Days {
		day, err := task.ParseDay(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", task.ErrDecoding, err)
		}
		if len(rows) == 0 {
			continue
		}
		tasks := make([]task.Task, 0, len(rows))
		for i, row := range rows {
			t, err := rowToTask(row)
			if err != nil {
				return nil, fmt.Errorf("%w: day %s entry %d: %w", task.ErrDecoding, key, i, err)
			}
			tasks = append(tasks, t)
		}
		state[day] = tasks
	}

	return state, nil
}

// validateDocument checks the raw document against the embedded schema so
// a missing field is reported by its location instead of as a zero value.
func validateDocument(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}

	err := stateSchema.Validate(v)
	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		return fmt.Errorf("schema: %s", strings.Join(schemaMessages(ve), "; "))
	}
	return err
}

func schemaMessages(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return []string{loc + ": " + ve.Message}
	}
	var out []string
	for _, cause := range ve.Causes {
		out = append(out, schemaMessages(cause)...)
	}
	return out
}

func taskToRow(t task.Task) (taskRow, error) {
	if !t.Status.IsValid() {
		return taskRow{}, fmt.Errorf("task %s: %w", t.ID, task.ErrInvalidStatus)
	}
	if !t.Priority.IsValid() {
		return taskRow{}, fmt.Errorf("task %s: %w", t.ID, value_objects.ErrInvalidPriority)
	}
	if t.ID == uuid.Nil {
		return taskRow{}, fmt.Errorf("task %q has no id", t.Title)
	}

	return taskRow{
		ID:                  t.ID.String(),
		Title:               t.Title,
		Description:         t.Description,
		DueDate:             t.DueDate.Format(time.RFC3339Nano),
		Status:              t.Status.String(),
		Priority:            t.Priority.String(),
		NotificationEnabled: t.NotificationEnabled,
	}, nil
}

func rowToTask(row taskRow) (task.Task, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return task.Task{}, fmt.Errorf("invalid id: %w", err)
	}

	dueDate, err := time.Parse(time.RFC3339Nano, row.DueDate)
	if err != nil {
		return task.Task{}, fmt.Errorf("invalid due_date format: %w", err)
	}

	status, err := task.ParseStatus(row.Status)
	if err != nil {
		return task.Task{}, fmt.Errorf("status %q: %w", row.Status, err)
	}

	priority, err := value_objects.ParsePriority(row.Priority)
	if err != nil {
		return task.Task{}, fmt.Errorf("priority %q: %w", row.Priority, err)
	}

	return task.Task{
		ID:                  id,
		Title:               row.Title,
		Description:         row.Description,
		DueDate:             dueDate,
		Status:              status,
		Priority:            priority,
		NotificationEnabled: row.NotificationEnabled,
	}, nil
}
