// Package envelope provides schema-less field extraction over arbitrary
// decoded JSON values. Accessors report absence instead of returning errors,
// so callers can handle responses from services whose shape is not guaranteed.
package envelope

import (
	"fmt"
	"strconv"
)

// DefaultMessage is used when a response carries no usable message field.
const DefaultMessage = "no message provided"

// Field returns the raw value stored under key when v is a JSON object.
func Field(v any, key string) (any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}

	val, ok := obj[key]
	return val, ok
}

// StringField returns the value under key when it is a string.
func StringField(v any, key string) (string, bool) {
	val, ok := Field(v, key)
	if !ok {
		return "", false
	}

	s, ok := val.(string)
	return s, ok
}

// StringArrayField returns the value under key coerced to a string slice
// when it is an array. Non-string elements are rendered with fmt.Sprint.
func StringArrayField(v any, key string) ([]string, bool) {
	val, ok := Field(v, key)
	if !ok {
		return nil, false
	}

	arr, ok := val.([]any)
	if !ok {
		return nil, false
	}

	result := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			result = append(result, s)
			continue
		}
		result = append(result, fmt.Sprint(item))
	}

	return result, true
}

// NumericField returns the value under key when it is a JSON number or a
// numeric-looking string.
func NumericField(v any, key string) (float64, bool) {
	val, ok := Field(v, key)
	if !ok {
		return 0, false
	}

	switch n := val.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}

	return 0, false
}

// Parsed is the lenient view of a response body.
type Parsed struct {
	Message   string
	Status    int
	HasStatus bool
	Details   []string
	Body      any
	HasBody   bool
}

// Parse extracts the envelope fields from an arbitrary decoded JSON value.
// Missing or wrong-shaped fields are left absent; Message falls back to
// DefaultMessage.
func Parse(v any) Parsed {
	p := Parsed{Message: DefaultMessage}

	if msg, ok := StringField(v, "message"); ok {
		p.Message = msg
	}

	if details, ok := StringArrayField(v, "details"); ok {
		p.Details = details
	}

	if status, ok := NumericField(v, "status"); ok {
		p.Status = int(status)
		p.HasStatus = true
	}

	if body, ok := Field(v, "body"); ok {
		p.Body = body
		p.HasBody = true
	}

	return p
}

// Failed reports whether the parsed response is failure-shaped. The
// classification is driven purely by the presence of non-empty details,
// independent of the transport-level HTTP status.
func (p Parsed) Failed() bool {
	return len(p.Details) > 0
}
