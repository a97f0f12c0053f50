package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/tasktracker/internal/client/state"
)

// listTasks fetches the task list (newest first) and prints it.
func (a *App) listTasks(ctx context.Context) error {
	tasks, err := a.api.ListTasks(ctx)
	if err != nil {
		return err
	}

	a.store.Apply(state.TasksLoaded{Tasks: tasks})

	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks yet.")
		return nil
	}

	for _, t := range tasks {
		fmt.Fprintf(a.out, "%4d  %-12s  %s\n", t.ID, t.Status, t.Title)
	}
	return nil
}

// addTask prompts for a title and optional status and creates the task.
func (a *App) addTask(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}

	status, err := getSimpleText(a.reader, "Enter status (empty for pending)", a.out)
	if err != nil {
		return err
	}

	task, err := a.api.CreateTask(ctx, title, status)
	if err != nil {
		return err
	}

	a.store.Apply(state.TaskAdded{Task: *task})

	fmt.Fprintf(a.out, "Created task %d.\n", task.ID)
	return nil
}

// updateTask patches the task named by arg. Empty answers leave the field
// unchanged; at least one field must be supplied.
func (a *App) updateTask(ctx context.Context, arg string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid task id: %s", arg)
	}

	statusInput, err := getSimpleText(a.reader, "Enter new status (empty to keep)", a.out)
	if err != nil {
		return err
	}

	titleInput, err := getSimpleText(a.reader, "Enter new title (empty to keep)", a.out)
	if err != nil {
		return err
	}

	var status, title *string
	if statusInput != "" {
		status = &statusInput
	}
	if titleInput != "" {
		title = &titleInput
	}

	task, err := a.api.UpdateTask(ctx, id, status, title)
	if err != nil {
		return err
	}

	a.store.Apply(state.TaskUpdated{Task: *task})

	fmt.Fprintf(a.out, "Updated task %d.\n", task.ID)
	return nil
}

// removeTask deletes the task named by arg.
func (a *App) removeTask(ctx context.Context, arg string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid task id: %s", arg)
	}

	if err := a.api.DeleteTask(ctx, id); err != nil {
		return err
	}

	a.store.Apply(state.TaskRemoved{ID: id})

	fmt.Fprintf(a.out, "Deleted task %d.\n", id)
	return nil
}

// showStats fetches and prints the task analytics.
func (a *App) showStats(ctx context.Context) error {
	analytics, err := a.api.TaskAnalytics(ctx)
	if err != nil {
		return err
	}

	a.store.Apply(state.AnalyticsLoaded{Analytics: analytics})

	fmt.Fprintf(a.out, "Total:       %d\n", analytics.Total)
	fmt.Fprintf(a.out, "Pending:     %d\n", analytics.Pending)
	fmt.Fprintf(a.out, "In progress: %d\n", analytics.InProgress)
	fmt.Fprintf(a.out, "Completed:   %d\n", analytics.Completed)
	return nil
}
