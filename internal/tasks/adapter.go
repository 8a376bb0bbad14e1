package tasks

import (
	"bytes"
	"encoding/json"
	"fmt"

	"chaintask/internal/contract"
)

// DecodeTasks maps a decoded getTasks result to a Collection.
// Every record must carry a string description and a boolean completed flag.
// Unknown fields are ignored.
func DecodeTasks(d contract.Decoded) (Collection, error) {
	if d.IsError {
		return nil, &QueryDecodeError{Message: d.DecodedOutput}
	}

	out := bytes.TrimSpace(d.Output)
	if len(out) == 0 || bytes.Equal(out, []byte("null")) {
		return nil, &QueryDecodeError{Message: "missing output"}
	}

	var records []map[string]json.RawMessage
	if err := json.Unmarshal(out, &records); err != nil {
		return nil, &QueryDecodeError{Message: fmt.Sprintf("expected a list of tasks: %v", err)}
	}

	result := make(Collection, 0, len(records))
	for i, rec := range records {
		task, err := decodeTask(rec)
		if err != nil {
			return nil, &QueryDecodeError{Message: fmt.Sprintf("task %d: %v", i, err)}
		}
		result = append(result, task)
	}
	return result, nil
}

func decodeTask(rec map[string]json.RawMessage) (Task, error) {
	if rec == nil {
		return Task{}, fmt.Errorf("not an object")
	}

	var t Task
	raw, ok := rec["description"]
	if !ok {
		return Task{}, fmt.Errorf("missing description")
	}
	if err := strictUnmarshal(raw, &t.Description); err != nil {
		return Task{}, fmt.Errorf("description: %v", err)
	}

	raw, ok = rec["completed"]
	if !ok {
		return Task{}, fmt.Errorf("missing completed")
	}
	if err := strictUnmarshal(raw, &t.Completed); err != nil {
		return Task{}, fmt.Errorf("completed: %v", err)
	}
	return t, nil
}

// strictUnmarshal rejects null, which json.Unmarshal accepts as a no-op.
func strictUnmarshal(raw json.RawMessage, v any) error {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return fmt.Errorf("null value")
	}
	return json.Unmarshal(raw, v)
}
