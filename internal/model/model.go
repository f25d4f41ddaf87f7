package model

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

const (
	DefaultTotal         = 100
	DefaultIncrement     = 1
	DefaultParticleCount = 30
	MinParticleCount     = 10
	MaxParticleCount     = 100

	ExportVersion = "1.0"
)

// Day is a calendar date in YYYY-MM-DD form. The empty Day means "never".
type Day string

func DayOf(t time.Time) Day {
	return Day(t.Format(time.DateOnly))
}

type Task struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Total            int    `json:"total"`
	Current          int    `json:"current"`
	DefaultIncrement int    `json:"defaultIncrement"`
	StartValue       int    `json:"startValue"`
	IncludeInTotal   bool   `json:"includeInTotal"`
	CreatedDate      Day    `json:"createdDate"`
	LastUpdatedDate  Day    `json:"lastUpdatedDate,omitempty"`
}

// UnmarshalJSON treats a missing includeInTotal as true so collections
// saved before the field existed keep counting toward totals.
func (t *Task) UnmarshalJSON(data []byte) error {
	type plain Task
	var raw struct {
		plain
		IncludeInTotal *bool `json:"includeInTotal"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Task(raw.plain)
	t.IncludeInTotal = raw.IncludeInTotal == nil || *raw.IncludeInTotal
	return nil
}

// Normalize clamps every numeric field into its valid range. It is
// idempotent and is the only validation applied on create, edit and import.
func Normalize(task Task) Task {
	task.Name = strings.TrimSpace(task.Name)
	task.StartValue = min(max(0, task.StartValue), math.MaxInt-1)
	task.Total = max(task.StartValue+1, task.Total)
	task.Current = min(max(task.Current, task.StartValue), task.Total)
	task.DefaultIncrement = max(1, task.DefaultIncrement)
	return task
}

type Settings struct {
	ParticleCount int `json:"particleCount"`
}

func DefaultSettings() Settings {
	return Settings{ParticleCount: DefaultParticleCount}
}

func NormalizeSettings(settings Settings) Settings {
	if settings.ParticleCount == 0 {
		settings.ParticleCount = DefaultParticleCount
	}
	settings.ParticleCount = min(max(settings.ParticleCount, MinParticleCount), MaxParticleCount)
	return settings
}

type ExportBundle struct {
	Tasks      []Task    `json:"tasks"`
	ExportDate time.Time `json:"exportDate"`
	Version    string    `json:"version"`
}
