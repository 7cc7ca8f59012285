package repository

import (
	"encoding/json"
	"fmt"
	"time"
)

// marshalJSON serializes a value for storage in a TEXT column.
func marshalJSON(v any, what string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshaling %s: %w", what, err)
	}
	return string(data), nil
}

// unmarshalJSON deserializes a TEXT column into out. Empty input leaves
// out at its zero value.
func unmarshalJSON(data string, out any, what string) error {
	if data == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return fmt.Errorf("unmarshaling %s: %w", what, err)
	}
	return nil
}

// parseTime parses an RFC3339 timestamp column.
func parseTime(s, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// formatTime formats a timestamp for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
