package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/tasklist/internal/tasks/application/queries"
)

func TestFormatICSTime(t *testing.T) {
	ts := time.Date(2024, time.May, 1, 13, 14, 15, 0, time.FixedZone("UTC+2", 2*60*60))
	assert.Equal(t, "20240501T111415Z", formatICSTime(ts))
}

func TestEscapeICS(t *testing.T) {
	input := "One\\Two;Three,Four\nFive"
	assert.Equal(t, "One\\\\Two\\;Three\\,Four\\nFive", escapeICS(input))
}

func TestGenerateICS_SingleTodo(t *testing.T) {
	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	due := time.Date(2024, time.November, 20, 9, 0, 0, 0, time.UTC)

	days := []queries.DayDTO{{
		Day: "2024-11-20",
		Tasks: []queries.TaskDTO{{
			ID:                  id,
			Title:               "Pay rent, landlord; March",
			Description:         "transfer",
			DueDate:             due,
			Day:                 "2024-11-20",
			Status:              "completed",
			Priority:            "high",
			NotificationEnabled: true,
		}},
	}}

	ics := generateICS(days, due)

	assertContains(t, ics, "BEGIN:VCALENDAR\r\n")
	assertContains(t, ics, "BEGIN:VTODO\r\n")
	assertContains(t, ics, "UID:11111111-1111-1111-1111-111111111111@tasklist\r\n")
	assertContains(t, ics, "DUE:20241120T090000Z\r\n")
	assertContains(t, ics, "SUMMARY:Pay rent\\, landlord\\; March\r\n")
	assertContains(t, ics, "DESCRIPTION:transfer\r\n")
	assertContains(t, ics, "PRIORITY:1\r\n")
	assertContains(t, ics, "STATUS:COMPLETED\r\n")
	assertContains(t, ics, "CATEGORIES:2024-11-20\r\n")
	assertContains(t, ics, "TRIGGER;VALUE=DATE-TIME:20241120T090000Z\r\n")
	assertContains(t, ics, "END:VTODO\r\n")
	assertContains(t, ics, "END:VCALENDAR\r\n")
}

func TestGenerateICS_NoAlarmWithoutNotification(t *testing.T) {
	days := []queries.DayDTO{{
		Day: "2024-11-21",
		Tasks: []queries.TaskDTO{{
			ID:       uuid.New(),
			Title:    "Call mom",
			DueDate:  time.Date(2024, time.November, 21, 18, 0, 0, 0, time.UTC),
			Status:   "todo",
			Priority: "low",
		}},
	}}

	ics := generateICS(days, time.Now())

	assert.NotContains(t, ics, "BEGIN:VALARM")
	assert.NotContains(t, ics, "DESCRIPTION:")
	assertContains(t, ics, "PRIORITY:9\r\n")
	assertContains(t, ics, "STATUS:NEEDS-ACTION\r\n")
}

func TestGenerateICS_Empty(t *testing.T) {
	ics := generateICS(nil, time.Now())
	assert.Equal(t, 0, strings.Count(ics, "BEGIN:VTODO"))
	assertContains(t, ics, "END:VCALENDAR\r\n")
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected to contain %q", needle)
	}
}
