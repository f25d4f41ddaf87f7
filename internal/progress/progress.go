package progress

import (
	"fmt"
	"math"

	"github.com/Joseda-hg/dailytodo/internal/model"
)

type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %q not found", e.ID)
}

// ApplyDefaultIncrement bumps the task by its default increment, capped at
// total. The update day is refreshed even when the task was already full.
func ApplyDefaultIncrement(tasks []model.Task, id string, today model.Day) ([]model.Task, error) {
	return update(tasks, id, func(task model.Task) model.Task {
		task.Current = clamp(addSaturating(task.Current, task.DefaultIncrement), task.StartValue, task.Total)
		task.LastUpdatedDate = today
		return task
	})
}

// ApplyCustomIncrement adds amount, which may be negative, and clamps the
// result into [startValue, total].
func ApplyCustomIncrement(tasks []model.Task, id string, amount int, today model.Day) ([]model.Task, error) {
	return update(tasks, id, func(task model.Task) model.Task {
		task.Current = clamp(addSaturating(task.Current, amount), task.StartValue, task.Total)
		task.LastUpdatedDate = today
		return task
	})
}

func Percentage(task model.Task) int {
	return percent(task.Current, task.Total)
}

func IsCompletedToday(task model.Task, today model.Day) bool {
	return task.LastUpdatedDate != "" && task.LastUpdatedDate == today
}

func Find(tasks []model.Task, id string) (model.Task, int, error) {
	for i, task := range tasks {
		if task.ID == id {
			return task, i, nil
		}
	}
	return model.Task{}, -1, &NotFoundError{ID: id}
}

func update(tasks []model.Task, id string, fn func(model.Task) model.Task) ([]model.Task, error) {
	_, index, err := Find(tasks, id)
	if err != nil {
		return tasks, err
	}
	updated := make([]model.Task, len(tasks))
	copy(updated, tasks)
	updated[index] = fn(updated[index])
	return updated, nil
}

func percent(current, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(current) / float64(total)))
}

func clamp(value, low, high int) int {
	return min(max(value, low), high)
}

func addSaturating(a, b int) int {
	sum := a + b
	if b > 0 && sum < a {
		return math.MaxInt
	}
	if b < 0 && sum > a {
		return math.MinInt
	}
	return sum
}
