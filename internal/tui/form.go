package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Joseda-hg/dailytodo/internal/model"
	"github.com/Joseda-hg/dailytodo/internal/tracker"
)

type formField struct {
	Label string
	Value string
}

const (
	fieldName = iota
	fieldTotal
	fieldIncrement
	fieldStartValue
	fieldInclude
	fieldCurrent
)

const (
	includeYes = "yes"
	includeNo  = "no"
)

func buildFormFields(task *model.Task) []formField {
	fields := []formField{
		{Label: "Name"},
		{Label: "Total"},
		{Label: "Increment"},
		{Label: "Start value"},
		{Label: "Count in total (space)"},
	}

	if task == nil {
		fields[fieldTotal].Value = strconv.Itoa(model.DefaultTotal)
		fields[fieldIncrement].Value = strconv.Itoa(model.DefaultIncrement)
		fields[fieldStartValue].Value = "0"
		fields[fieldInclude].Value = includeYes
		return fields
	}

	fields = append(fields, formField{Label: "Current"})
	fields[fieldName].Value = task.Name
	fields[fieldTotal].Value = strconv.Itoa(task.Total)
	fields[fieldIncrement].Value = strconv.Itoa(task.DefaultIncrement)
	fields[fieldStartValue].Value = strconv.Itoa(task.StartValue)
	fields[fieldInclude].Value = formatInclude(task.IncludeInTotal)
	fields[fieldCurrent].Value = strconv.Itoa(task.Current)
	return fields
}

func parseNewTask(fields []formField) (tracker.NewTask, error) {
	values, err := parseNumbers(fields)
	if err != nil {
		return tracker.NewTask{}, err
	}
	include := fields[fieldInclude].Value != includeNo
	return tracker.NewTask{
		Name:             strings.TrimSpace(fields[fieldName].Value),
		Total:            values[fieldTotal],
		DefaultIncrement: values[fieldIncrement],
		StartValue:       values[fieldStartValue],
		IncludeInTotal:   &include,
	}, nil
}

func parseTaskEdit(fields []formField) (tracker.TaskEdit, error) {
	values, err := parseNumbers(fields)
	if err != nil {
		return tracker.TaskEdit{}, err
	}
	name := strings.TrimSpace(fields[fieldName].Value)
	total := values[fieldTotal]
	increment := values[fieldIncrement]
	startValue := values[fieldStartValue]
	include := fields[fieldInclude].Value != includeNo
	edit := tracker.TaskEdit{
		Name:             &name,
		Total:            &total,
		DefaultIncrement: &increment,
		StartValue:       &startValue,
		IncludeInTotal:   &include,
	}
	if len(fields) > fieldCurrent {
		current := values[fieldCurrent]
		edit.Current = &current
	}
	return edit, nil
}

func parseNumbers(fields []formField) (map[int]int, error) {
	values := make(map[int]int, len(fields))
	for index, field := range fields {
		if index == fieldName || index == fieldInclude {
			continue
		}
		parsed, err := parseInt(field.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s", strings.ToLower(field.Label))
		}
		values[index] = parsed
	}
	return values, nil
}

func parseInt(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	return strconv.Atoi(trimmed)
}

func formatInclude(include bool) string {
	if include {
		return includeYes
	}
	return includeNo
}

func isIncludeField(index int) bool {
	return index == fieldInclude
}

func toggleInclude(value string) string {
	if value == includeNo {
		return includeYes
	}
	return includeNo
}
