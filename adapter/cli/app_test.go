package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
)

func testApp() *App {
	a := NewApp(nil, nil, nil, nil, nil, nil)
	a.SetLocation(time.UTC)
	a.Now = func() time.Time { return time.Date(2024, time.November, 20, 22, 0, 0, 0, time.UTC) }
	return a
}

func TestApp_ParseDue(t *testing.T) {
	a := testApp()

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-11-20", time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC)},
		{"2024-11-20T09:30", time.Date(2024, 11, 20, 9, 30, 0, 0, time.UTC)},
		{"2024-11-20 09:30", time.Date(2024, 11, 20, 9, 30, 0, 0, time.UTC)},
		{"today", time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC)},
		{" Tomorrow ", time.Date(2024, 11, 21, 0, 0, 0, 0, time.UTC)},
		{"yesterday", time.Date(2024, 11, 19, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := a.ParseDue(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %s", tt.in, got)
	}

	got, err := a.ParseDue("2024-11-20T23:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, task.Day("2024-11-21"), task.NormalizeDay(got, time.UTC))

	_, err = a.ParseDue("")
	assert.Error(t, err)
	_, err = a.ParseDue("next blue moon")
	assert.Error(t, err)
}

func TestApp_ParseDueUsesLocation(t *testing.T) {
	a := testApp()
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	a.SetLocation(tokyo)

	got, err := a.ParseDue("2024-11-20T09:00")
	require.NoError(t, err)
	assert.Equal(t, tokyo, got.Location())

	// 22:00 UTC on the 20th is already the 21st in Tokyo.
	day, err := a.ParseDay("today")
	require.NoError(t, err)
	assert.Equal(t, task.Day("2024-11-21"), day)
}

func TestApp_ParseDay(t *testing.T) {
	a := testApp()

	day, err := a.ParseDay("")
	require.NoError(t, err)
	assert.Equal(t, task.Day("2024-11-20"), day)

	day, err = a.ParseDay("tomorrow")
	require.NoError(t, err)
	assert.Equal(t, task.Day("2024-11-21"), day)

	day, err = a.ParseDay("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, task.Day("2024-02-29"), day)

	_, err = a.ParseDay("2023-02-29")
	assert.ErrorIs(t, err, task.ErrInvalidDay)
}
