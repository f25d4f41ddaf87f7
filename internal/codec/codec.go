package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Joseda-hg/dailytodo/internal/model"
)

type ImportErrorKind int

const (
	MalformedToken ImportErrorKind = iota + 1
	MalformedPayload
	InvalidShape
	NoValidTasks
)

func (k ImportErrorKind) String() string {
	switch k {
	case MalformedToken:
		return "malformed token"
	case MalformedPayload:
		return "malformed payload"
	case InvalidShape:
		return "invalid shape"
	case NoValidTasks:
		return "no valid tasks"
	default:
		return "unknown import error"
	}
}

type ImportError struct {
	Kind ImportErrorKind
	Err  error
}

func (e *ImportError) Error() string {
	if e.Err == nil {
		return "import: " + e.Kind.String()
	}
	return fmt.Sprintf("import: %s: %v", e.Kind, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// Largest float64 that still holds every integer exactly.
const maxExactNumber = 1 << 53

// Encode wraps the collection in an export bundle and returns it as a
// base64 token of its UTF-8 JSON, safe to paste through a plain-text clipboard.
func Encode(tasks []model.Task, now time.Time) (string, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	payload, err := json.Marshal(model.ExportBundle{
		Tasks:      tasks,
		ExportDate: now.UTC(),
		Version:    model.ExportVersion,
	})
	if err != nil {
		return "", fmt.Errorf("encode bundle: %w", err)
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

// decodeBase64 accepts padded and unpadded standard base64. Padding is only
// honoured on a token whose length is a multiple of four, and non-zero
// trailing bits are ignored.
func decodeBase64(token string) ([]byte, error) {
	if len(token)%4 == 0 {
		token = strings.TrimSuffix(token, "=")
		token = strings.TrimSuffix(token, "=")
	}
	return base64.RawStdEncoding.DecodeString(token)
}

// Decode reverses Encode and returns the structurally valid, normalized
// tasks of the bundle. Invalid entries are dropped; an error is returned
// only when nothing usable remains.
func Decode(token string) ([]model.Task, error) {
	token = strings.Join(strings.Fields(token), "")
	if token == "" {
		return nil, &ImportError{Kind: MalformedToken, Err: fmt.Errorf("empty token")}
	}

	payload, err := decodeBase64(token)
	if err != nil {
		return nil, &ImportError{Kind: MalformedToken, Err: err}
	}
	if !utf8.Valid(payload) {
		return nil, &ImportError{Kind: MalformedPayload, Err: fmt.Errorf("payload is not valid UTF-8")}
	}

	if !json.Valid(payload) {
		return nil, &ImportError{Kind: MalformedPayload, Err: fmt.Errorf("payload is not valid JSON")}
	}

	var bundle map[string]json.RawMessage
	if err := json.Unmarshal(payload, &bundle); err != nil {
		return nil, &ImportError{Kind: InvalidShape, Err: err}
	}

	rawTasks, ok := bundle["tasks"]
	if !ok || !isArray(rawTasks) {
		return nil, &ImportError{Kind: InvalidShape, Err: fmt.Errorf("tasks must be an array")}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(rawTasks, &elements); err != nil {
		return nil, &ImportError{Kind: InvalidShape, Err: err}
	}

	tasks := make([]model.Task, 0, len(elements))
	seen := make(map[string]struct{}, len(elements))
	for _, element := range elements {
		task, ok := parseTask(element)
		if !ok {
			continue
		}
		if _, dup := seen[task.ID]; dup {
			continue
		}
		seen[task.ID] = struct{}{}
		tasks = append(tasks, model.Normalize(task))
	}

	if len(tasks) == 0 {
		return nil, &ImportError{Kind: NoValidTasks}
	}
	return tasks, nil
}

func parseTask(raw json.RawMessage) (model.Task, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return model.Task{}, false
	}

	id, ok := idField(fields["id"])
	if !ok {
		return model.Task{}, false
	}
	name, ok := stringField(fields["name"])
	if !ok || strings.TrimSpace(name) == "" {
		return model.Task{}, false
	}
	total, ok := numberField(fields["total"])
	if !ok {
		return model.Task{}, false
	}
	current, ok := numberField(fields["current"])
	if !ok {
		return model.Task{}, false
	}

	task := model.Task{
		ID:               id,
		Name:             name,
		Total:            total,
		Current:          current,
		DefaultIncrement: model.DefaultIncrement,
		IncludeInTotal:   true,
	}
	if value, ok := numberField(fields["defaultIncrement"]); ok {
		task.DefaultIncrement = value
	}
	if value, ok := numberField(fields["startValue"]); ok {
		task.StartValue = value
	}
	if value, ok := boolField(fields["includeInTotal"]); ok {
		task.IncludeInTotal = value
	}
	if value, ok := stringField(fields["createdDate"]); ok {
		task.CreatedDate = model.Day(value)
	}
	if value, ok := stringField(fields["lastUpdatedDate"]); ok {
		task.LastUpdatedDate = model.Day(value)
	}
	return task, true
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func idField(raw json.RawMessage) (string, bool) {
	if value, ok := stringField(raw); ok {
		return value, value != ""
	}
	if !present(raw) {
		return "", false
	}
	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil || number == "" {
		return "", false
	}
	if value, err := number.Float64(); err != nil || value == 0 {
		return "", false
	}
	return number.String(), true
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func stringField(raw json.RawMessage) (string, bool) {
	if !present(raw) {
		return "", false
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false
	}
	return value, true
}

func numberField(raw json.RawMessage) (int, bool) {
	if !present(raw) {
		return 0, false
	}
	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, false
	}
	if math.Abs(value) > maxExactNumber {
		return 0, false
	}
	return int(math.Round(value)), true
}

func boolField(raw json.RawMessage) (bool, bool) {
	if !present(raw) {
		return false, false
	}
	var value bool
	if err := json.Unmarshal(raw, &value); err != nil {
		return false, false
	}
	return value, true
}
