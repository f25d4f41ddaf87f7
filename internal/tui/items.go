package tui

import (
	"fmt"
	"strings"

	"github.com/Joseda-hg/dailytodo/internal/model"
	"github.com/Joseda-hg/dailytodo/internal/progress"
)

const barWidth = 20

func formatBar(percentage int) string {
	filled := min(max(percentage, 0), 100) * barWidth / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled) + "]"
}

func formatTaskSummary(task model.Task, today model.Day) string {
	marker := " "
	if progress.IsCompletedToday(task, today) {
		marker = "✓"
	}
	excluded := ""
	if !task.IncludeInTotal {
		excluded = " (not counted)"
	}
	return fmt.Sprintf("%s %s %3d%% %d/%d %s%s", marker, formatBar(progress.Percentage(task)), progress.Percentage(task), task.Current, task.Total, task.Name, excluded)
}

func formatTaskDetail(task model.Task, today model.Day) []string {
	lastUpdated := string(task.LastUpdatedDate)
	if lastUpdated == "" {
		lastUpdated = "never"
	}
	done := "no"
	if progress.IsCompletedToday(task, today) {
		done = "yes"
	}
	return []string{
		task.Name,
		"",
		fmt.Sprintf("Progress:      %d / %d (%d%%)", task.Current, task.Total, progress.Percentage(task)),
		fmt.Sprintf("Increment:     %d", task.DefaultIncrement),
		fmt.Sprintf("Start value:   %d", task.StartValue),
		fmt.Sprintf("Count in total: %s", formatInclude(task.IncludeInTotal)),
		fmt.Sprintf("Created:       %s", task.CreatedDate),
		fmt.Sprintf("Last updated:  %s", lastUpdated),
		fmt.Sprintf("Done today:    %s", done),
	}
}

// formatCelebration is the status line shown after a successful increment;
// its length follows the configured particle count.
func formatCelebration(task model.Task, amount int, settings model.Settings) string {
	sparks := strings.Repeat("*", max(settings.ParticleCount/10, 1))
	sign := "+"
	if amount < 0 {
		sign = ""
	}
	return fmt.Sprintf("%s %s%d %s (%d/%d)", sparks, sign, amount, task.Name, task.Current, task.Total)
}
