// Package render formats tasks and messages for terminal output.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/taskman/internal/task"
)

const separatorWidth = 50

// StatusIcon returns the emoji used for a status in listings.
func StatusIcon(s task.Status) string {
	switch s {
	case task.StatusTodo:
		return "📋"
	case task.StatusInProgress:
		return "🔄"
	case task.StatusDone:
		return "✅"
	default:
		return "❓"
	}
}

// Table prints a task listing. filter is only used for the empty message.
func Table(out io.Writer, tasks []task.Task, filter task.Status) {
	if len(tasks) == 0 {
		if filter != "" {
			fmt.Fprintf(out, "📝 No tasks found with status: %s\n", filter)
		} else {
			fmt.Fprintln(out, "📝 No tasks found")
		}
		return
	}

	sep := strings.Repeat("─", separatorWidth)
	fmt.Fprintln(out, "\n📑 Task List:")
	fmt.Fprintln(out, sep)
	fmt.Fprintf(out, "%-4s %-15s %s\n", "ID", "Status", "Description")
	fmt.Fprintln(out, sep)
	for _, t := range tasks {
		Task(out, t)
	}
	fmt.Fprintln(out, sep)
}

// Task prints a single task line.
func Task(out io.Writer, t task.Task) {
	fmt.Fprintf(out, "%-4d %s %-12s %s\n", t.ID, StatusIcon(t.Status), t.Status, t.Description)
}

// Added prints the add confirmation.
func Added(out io.Writer, id int) {
	fmt.Fprintf(out, "Task added successfully (ID: %d)\n", id)
}

// Updated prints the update confirmation.
func Updated(out io.Writer, id int) {
	fmt.Fprintf(out, "Task %d updated successfully\n", id)
}

// Deleted prints the delete confirmation.
func Deleted(out io.Writer, id int) {
	fmt.Fprintf(out, "Task %d deleted successfully\n", id)
}

// Marked prints the mark-status confirmation.
func Marked(out io.Writer, id int, status task.Status) {
	fmt.Fprintf(out, "Task %d marked as %s\n", id, status)
}

// Error prints a user-facing error message.
func Error(out io.Writer, err error) {
	fmt.Fprintf(out, "Error: %v\n", err)
}
