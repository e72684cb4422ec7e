package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/validation"
)

// maxBodyBytes caps JSON request bodies at 1 MB
const maxBodyBytes = 1 << 20

var errInvalidBody = errors.New("invalid request body")

// decodePayload reads the request body into a loose map so the rule engine
// can strip unknown fields and coerce types before anything is trusted.
func decodePayload(r *http.Request) (map[string]interface{}, error) {
	defer r.Body.Close()

	var payload map[string]interface{}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(&payload); err != nil {
		return nil, errInvalidBody
	}
	return payload, nil
}

// queryPayload lifts query parameters into a payload map. Values stay
// strings; the rule engine coerces them to their declared kinds.
func queryPayload(r *http.Request) map[string]interface{} {
	q := r.URL.Query()
	payload := make(map[string]interface{}, len(q))
	for key := range q {
		if v := q.Get(key); v != "" {
			payload[key] = v
		}
	}
	return payload
}

// validatePayload runs the named rule set over a decoded body
func validatePayload(r *http.Request, ruleSet string) (map[string]interface{}, validation.Errors, error) {
	payload, err := decodePayload(r)
	if err != nil {
		return nil, nil, err
	}
	rs, ok := validation.Get(ruleSet)
	if !ok {
		return nil, nil, fmt.Errorf("unknown rule set %q", ruleSet)
	}
	normalized, errs := rs.Validate(payload)
	if errs != nil {
		return nil, errs, nil
	}
	return normalized, nil, nil
}

// Typed accessors for normalized payloads. The rule engine has already
// coerced values, so a present key is guaranteed to hold the declared type.

func strVal(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func strPtr(m map[string]interface{}, key string) *string {
	if s, ok := m[key].(string); ok {
		return &s
	}
	return nil
}

func intVal(m map[string]interface{}, key string) int {
	n, _ := m[key].(int)
	return n
}

func intPtr(m map[string]interface{}, key string) *int {
	if n, ok := m[key].(int); ok {
		return &n
	}
	return nil
}

func int64Val(m map[string]interface{}, key string) int64 {
	n, _ := m[key].(int)
	return int64(n)
}

func int64Ptr(m map[string]interface{}, key string) *int64 {
	if n, ok := m[key].(int); ok {
		v := int64(n)
		return &v
	}
	return nil
}

func floatVal(m map[string]interface{}, key string) float64 {
	f, _ := m[key].(float64)
	return f
}

func floatPtr(m map[string]interface{}, key string) *float64 {
	if f, ok := m[key].(float64); ok {
		return &f
	}
	return nil
}

func boolVal(m map[string]interface{}, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func boolPtr(m map[string]interface{}, key string) *bool {
	if b, ok := m[key].(bool); ok {
		return &b
	}
	return nil
}

func sliceVal(m map[string]interface{}, key string) []string {
	s, _ := m[key].([]string)
	return s
}
