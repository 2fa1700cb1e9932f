package persistence

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
)

func TestStateCodec_RoundTrip(t *testing.T) {
	var codec StateCodec
	state := sampleState(t)

	data, err := codec.Encode(state)
	require.NoError(t, err)

	decoded, err := codec.Decode(data)
	require.NoError(t, err)
	assert.True(t, state.Equal(decoded))
}

func TestStateCodec_EmptyState(t *testing.T) {
	var codec StateCodec

	data, err := codec.Encode(task.State{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"days":{}}`, string(data))

	decoded, err := codec.Decode(data)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestStateCodec_SkipsEmptyBuckets(t *testing.T) {
	var codec StateCodec

	data, err := codec.Encode(task.State{"2024-11-20": {}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"days":{}}`, string(data))
}

func TestStateCodec_Document(t *testing.T) {
	var codec StateCodec
	tsk := newTestTask(t, "Pay rent", time.Date(2024, 11, 20, 9, 0, 0, 0, time.UTC))

	data, err := codec.Encode(task.State{"2024-11-20": {tsk}})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	days := doc["days"].(map[string]any)
	rows := days["2024-11-20"].([]any)
	require.Len(t, rows, 1)

	row := rows[0].(map[string]any)
	assert.Equal(t, tsk.ID.String(), row["id"])
	assert.Equal(t, "Pay rent", row["title"])
	assert.Equal(t, "2024-11-20T09:00:00Z", row["due_date"])
	assert.Equal(t, "todo", row["status"])
	assert.Equal(t, "medium", row["priority"])
	assert.Equal(t, false, row["notification_enabled"])
	assert.NotContains(t, row, "description")
}

func TestStateCodec_PreservesOffset(t *testing.T) {
	var codec StateCodec
	loc := time.FixedZone("UTC+9", 9*3600)
	tsk := newTestTask(t, "Call", time.Date(2024, 11, 20, 0, 30, 0, 0, loc))

	data, err := codec.Encode(task.State{"2024-11-20": {tsk}})
	require.NoError(t, err)

	decoded, err := codec.Decode(data)
	require.NoError(t, err)
	got := decoded["2024-11-20"][0]
	assert.True(t, got.DueDate.Equal(tsk.DueDate))
	assert.Equal(t, task.Day("2024-11-20"), got.Day(loc))
}

func TestStateCodec_EncodeInvalidTask(t *testing.T) {
	var codec StateCodec
	tsk := newTestTask(t, "Broken", time.Now())
	tsk.Status = 0

	_, err := codec.Encode(task.State{task.NormalizeDay(tsk.DueDate, nil): {tsk}})
	assert.ErrorIs(t, err, task.ErrEncoding)
	assert.ErrorIs(t, err, task.ErrPersistence)
}

func TestStateCodec_DecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `not json`},
		{name: "wrong version", data: `{"version":2,"days":{}}`},
		{name: "bad day key", data: `{"version":1,"days":{"20-11-2024":[]}}`},
		{name: "bad id", data: `{"version":1,"days":{"2024-11-20":[{"id":"x","title":"a","due_date":"2024-11-20T09:00:00Z","status":"todo","priority":"low"}]}}`},
		{name: "bad due date", data: `{"version":1,"days":{"2024-11-20":[{"id":"6b1f6d2a-3b8c-4a4e-9a53-0f3c9d4b7e21","title":"a","due_date":"tomorrow","status":"todo","priority":"low"}]}}`},
		{name: "bad status", data: `{"version":1,"days":{"2024-11-20":[{"id":"6b1f6d2a-3b8c-4a4e-9a53-0f3c9d4b7e21","title":"a","due_date":"2024-11-20T09:00:00Z","status":"done","priority":"low"}]}}`},
		{name: "missing days", data: `{"version":1}`},
		{name: "missing title", data: `{"version":1,"days":{"2024-11-20":[{"id":"6b1f6d2a-3b8c-4a4e-9a53-0f3c9d4b7e21","due_date":"2024-11-20T09:00:00Z","status":"todo","priority":"low"}]}}`},
		{name: "notification not bool", data: `{"version":1,"days":{"2024-11-20":[{"id":"6b1f6d2a-3b8c-4a4e-9a53-0f3c9d4b7e21","title":"a","due_date":"2024-11-20T09:00:00Z","status":"todo","priority":"low","notification_enabled":"yes"}]}}`},
		{name: "bad priority", data: `{"version":1,"days":{"2024-11-20":[{"id":"6b1f6d2a-3b8c-4a4e-9a53-0f3c9d4b7e21","title":"a","due_date":"2024-11-20T09:00:00Z","status":"todo","priority":"urgent"}]}}`},
	}

	var codec StateCodec
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode([]byte(tt.data))
			assert.ErrorIs(t, err, task.ErrDecoding)
			assert.ErrorIs(t, err, task.ErrPersistence)
		})
	}
}

func TestStateCodec_SchemaErrorNamesLocation(t *testing.T) {
	var codec StateCodec
	data := `{"version":1,"days":{"2024-11-20":[{"id":"6b1f6d2a-3b8c-4a4e-9a53-0f3c9d4b7e21","title":"a","status":"todo","priority":"low"}]}}`

	_, err := codec.Decode([]byte(data))
	require.ErrorIs(t, err, task.ErrDecoding)
	assert.Contains(t, err.Error(), "/days/2024-11-20/0")
	assert.Contains(t, err.Error(), "due_date")
}
