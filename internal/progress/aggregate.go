package progress

import "github.com/Joseda-hg/dailytodo/internal/model"

type Totals struct {
	Current    int `json:"current"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

type DailyStats struct {
	Total          int `json:"total"`
	CompletedToday int `json:"completedToday"`
	InProgress     int `json:"inProgress"`
	NotStarted     int `json:"notStarted"`
}

// ComputeTotals sums only tasks that opted into the aggregate.
func ComputeTotals(tasks []model.Task) Totals {
	var totals Totals
	for _, task := range tasks {
		if !task.IncludeInTotal {
			continue
		}
		totals.Current = addSaturating(totals.Current, task.Current)
		totals.Total = addSaturating(totals.Total, task.Total)
	}
	totals.Percentage = percent(totals.Current, totals.Total)
	return totals
}

// ComputeDailyStats counts every task regardless of includeInTotal.
// Progress is measured from startValue, so a task sitting at its start
// value counts as not started.
func ComputeDailyStats(tasks []model.Task, today model.Day) DailyStats {
	stats := DailyStats{Total: len(tasks)}
	for _, task := range tasks {
		if IsCompletedToday(task, today) {
			stats.CompletedToday++
		}
		switch {
		case task.Current <= task.StartValue:
			stats.NotStarted++
		case task.Current < task.Total:
			stats.InProgress++
		}
	}
	return stats
}
