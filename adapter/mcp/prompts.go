package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers MCP prompts for common task list workflows.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("daily_planning").
		Description("Plan today from the task list: what is due, what slipped, what to move.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return textPrompt("Daily Planning Session", `Help me plan my day. Please:

1. Read today's tasks from the tasklist://tasks/today resource
2. Read every open task from the tasklist://tasks/open resource
3. Check the tasklist://days resource for days that are overloaded

Based on this:
- Pick the three tasks I should finish first today
- List open tasks from earlier days that I have not completed
- For each of those, suggest whether to move it to today, to a later day, or delete it

Apply the changes I approve with task.update (set "due" to move a task to another
day), task.complete and task.delete.`), nil
		})

	srv.Prompt("weekly_review").
		Description("Review the past week and spread the coming week's tasks across days.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return textPrompt("Weekly Review Session", `Let's review my week. Please:

1. Read all tasks from the tasklist://tasks resource
2. Read the per-day counts from the tasklist://days resource

**Looking back:**
- Which tasks did I complete in the last seven days?
- Which tasks are still open on past days?

**Looking ahead:**
- Which of the next seven days has the most tasks?
- Which tasks could move to a lighter day?
- Which high priority tasks have no reminder yet?

Suggest concrete task.update calls (due, priority, notify) for each change.`), nil
		})

	srv.Prompt("task_breakdown").
		Description("Break a large task into smaller tasks spread over several days.").
		Argument("task_description", "Description of the task to break down", true).
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			taskDesc := args["task_description"]
			if taskDesc == "" {
				taskDesc = "[Please describe the task you want to break down]"
			}
			return textPrompt("Task Breakdown Assistant", fmt.Sprintf(`Help me break down this task into smaller, actionable tasks:

**Task:** %s

Please:
1. Identify the main components
2. Break it into 3-7 tasks that can each be done in one sitting
3. For each, suggest a clear title, a priority (high, medium, low) and a due date
4. Order the due dates so each task lands before the ones that depend on it

Once I approve the breakdown, use the task.add tool to add each task.
Use a consistent naming pattern like "[Parent Task] - Subtask Name".`, taskDesc)), nil
		})

	srv.Prompt("quick_capture").
		Description("Quickly turn a thought into a task with a due date.").
		Argument("content", "What you want to capture", true).
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			content := args["content"]
			if content == "" {
				content = "[Please specify what you want to capture]"
			}
			return textPrompt("Quick Capture", fmt.Sprintf(`Quick capture this item: "%s"

1. Pick a short title and, if the text names a day or time, a due date.
   Without one, use today.
2. Guess a priority from the wording.
3. Turn on the reminder (notify) if the text mentions a time.
4. Add it with task.add and confirm the day it was filed under.`, content)), nil
		})

	return nil
}

func textPrompt(description, text string) *mcp.PromptResult {
	return &mcp.PromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{
				Role: string(mcp.RoleUser),
				Content: mcp.TextContent{
					Type: "text",
					Text: text,
				},
			},
		},
	}
}
