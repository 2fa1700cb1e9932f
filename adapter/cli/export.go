package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tasklist/internal/tasks/application/queries"
)

var (
	exportFormat   string
	exportOutput   string
	exportHideDone bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks to iCalendar or JSON",
	Long: `Export every task as iCalendar to-dos (VTODO) for import into
calendar apps, or as the grouped JSON view.

Tasks with notifications enabled get an alarm at their due time.

Examples:
  tasklist export                          # iCalendar to stdout
  tasklist export -o tasks.ics             # iCalendar to a file
  tasklist export --format json --hide-done`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.ListTasksHandler == nil {
			return ErrNotInitialized
		}

		days, err := app.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{HideDone: exportHideDone})
		if err != nil {
			return err
		}

		var content string
		switch exportFormat {
		case "ics", "ical":
			content = generateICS(days, time.Now())
		case "json":
			data, err := json.MarshalIndent(days, "", "  ")
			if err != nil {
				return err
			}
			content = string(data) + "\n"
		default:
			return fmt.Errorf("unsupported format: %s (supported: ics, json)", exportFormat)
		}

		count := 0
		for _, d := range days {
			count += len(d.Tasks)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, []byte(content), 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks to %s\n", count, exportOutput)
			return nil
		}

		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	},
}

func generateICS(days []queries.DayDTO, stamp time.Time) string {
	var sb strings.Builder

	sb.WriteString("BEGIN:VCALENDAR\r\n")
	sb.WriteString("VERSION:2.0\r\n")
	sb.WriteString("PRODID:-//tasklist//tasklist CLI//EN\r\n")
	sb.WriteString("CALSCALE:GREGORIAN\r\n")
	sb.WriteString("METHOD:PUBLISH\r\n")
	sb.WriteString("X-WR-CALNAME:Tasks\r\n")

	for _, day := range days {
		for _, t := range day.Tasks {
			sb.WriteString("BEGIN:VTODO\r\n")
			sb.WriteString(fmt.Sprintf("UID:%s@tasklist\r\n", t.ID.String()))
			sb.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(stamp)))
			sb.WriteString(fmt.Sprintf("DUE:%s\r\n", formatICSTime(t.DueDate)))
			sb.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(t.Title)))
			if t.Description != "" {
				sb.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(t.Description)))
			}
			sb.WriteString(fmt.Sprintf("PRIORITY:%d\r\n", icsPriority(t.Priority)))
			sb.WriteString(fmt.Sprintf("STATUS:%s\r\n", icsStatus(t.Status)))
			sb.WriteString(fmt.Sprintf("CATEGORIES:%s\r\n", day.Day))

			if t.NotificationEnabled {
				sb.WriteString("BEGIN:VALARM\r\n")
				sb.WriteString("ACTION:DISPLAY\r\n")
				sb.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(t.Title)))
				sb.WriteString(fmt.Sprintf("TRIGGER;VALUE=DATE-TIME:%s\r\n", formatICSTime(t.DueDate)))
				sb.WriteString("END:VALARM\r\n")
			}

			sb.WriteString("END:VTODO\r\n")
		}
	}

	sb.WriteString("END:VCALENDAR\r\n")

	return sb.String()
}

// icsPriority maps to the RFC 5545 scale where 1 is highest.
func icsPriority(priority string) int {
	switch priority {
	case "high":
		return 1
	case "medium":
		return 5
	case "low":
		return 9
	default:
		return 0
	}
}

func icsStatus(status string) string {
	switch status {
	case "completed":
		return "COMPLETED"
	case "in_progress":
		return "IN-PROCESS"
	default:
		return "NEEDS-ACTION"
	}
}

func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "ics", "export format (ics, json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().BoolVar(&exportHideDone, "hide-done", false, "leave out completed tasks")

	rootCmd.AddCommand(exportCmd)
}
