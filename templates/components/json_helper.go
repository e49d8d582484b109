package components

import (
	"encoding/json"
)

// JSON marshals v to a JSON string, returning fallback on error.
func JSON(v interface{}, fallback string) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fallback
	}
	return string(b)
}
