package tasks

import (
	"context"
	"log/slog"
)

// Summary counts the outcome of a run.
type Summary struct {
	Succeeded int
	Failed    int
	Cancelled int
}

// Runner executes tasks one after another. A failing task is logged and does
// not stop the remaining ones.
type Runner struct{}

func NewRunner() *Runner {
	return &Runner{}
}

func (r *Runner) Run(ctx context.Context, tasks []TaskInterface) Summary {
	var summary Summary

	for i, task := range tasks {
		if ctx.Err() != nil {
			summary.Cancelled = len(tasks) - i
			slog.Warn("Run cancelled", "remaining", summary.Cancelled, "error", ctx.Err())
			break
		}

		slog.Info("Task started", "type", task.GetType(), "feed", task.GetFeedName(), "task_id", task.GetID())
		task.Start()

		if err := task.Execute(ctx); err != nil {
			summary.Failed++
			slog.Error("Task failed",
				"type", task.GetType(),
				"feed", task.GetFeedName(),
				"duration", task.GetDuration(),
				"error", err)
			continue
		}
		summary.Succeeded++
	}

	return summary
}
