package model

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKeepsInvariants(t *testing.T) {
	cases := []struct {
		name string
		in   Task
	}{
		{"zero value", Task{}},
		{"negative everything", Task{Total: -5, Current: -10, DefaultIncrement: -3, StartValue: -7}},
		{"current above total", Task{Total: 10, Current: 50, DefaultIncrement: 1}},
		{"start above total", Task{Total: 5, Current: 0, StartValue: 20, DefaultIncrement: 2}},
		{"huge values", Task{Total: math.MaxInt32, Current: math.MaxInt32 + 10, StartValue: 3}},
		{"max int start", Task{Total: 100, StartValue: math.MaxInt, DefaultIncrement: math.MaxInt}},
		{"max int total and current", Task{Total: math.MaxInt, Current: math.MaxInt, StartValue: math.MaxInt}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.in)
			assert.GreaterOrEqual(t, got.StartValue, 0)
			assert.GreaterOrEqual(t, got.Total, got.StartValue+1)
			assert.GreaterOrEqual(t, got.Current, got.StartValue)
			assert.LessOrEqual(t, got.Current, got.Total)
			assert.GreaterOrEqual(t, got.DefaultIncrement, 1)
			assert.Equal(t, got, Normalize(got), "normalize must be idempotent")
		})
	}
}

func TestNormalizeStartValueRaisesTotalAndCurrent(t *testing.T) {
	got := Normalize(Task{Name: "  Read  ", Total: 10, Current: 3, StartValue: 20, DefaultIncrement: 0})

	assert.Equal(t, "Read", got.Name)
	assert.Equal(t, 21, got.Total)
	assert.Equal(t, 20, got.Current)
	assert.Equal(t, 1, got.DefaultIncrement)
}

func TestTaskUnmarshalDefaultsIncludeInTotal(t *testing.T) {
	var legacy Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","name":"Old","total":10,"current":2,"defaultIncrement":1,"createdDate":"2024-01-01"}`), &legacy))
	assert.True(t, legacy.IncludeInTotal)
	assert.Equal(t, 0, legacy.StartValue)
	assert.Equal(t, Day(""), legacy.LastUpdatedDate)

	var optedOut Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":"2","name":"New","total":10,"current":2,"includeInTotal":false}`), &optedOut))
	assert.False(t, optedOut.IncludeInTotal)
}

func TestDayOf(t *testing.T) {
	at := time.Date(2026, time.March, 4, 23, 59, 0, 0, time.Local)
	assert.Equal(t, Day("2026-03-04"), DayOf(at))
}

func TestNormalizeSettings(t *testing.T) {
	assert.Equal(t, DefaultParticleCount, NormalizeSettings(Settings{}).ParticleCount)
	assert.Equal(t, MinParticleCount, NormalizeSettings(Settings{ParticleCount: 3}).ParticleCount)
	assert.Equal(t, MaxParticleCount, NormalizeSettings(Settings{ParticleCount: 500}).ParticleCount)
	assert.Equal(t, 42, NormalizeSettings(Settings{ParticleCount: 42}).ParticleCount)
}
