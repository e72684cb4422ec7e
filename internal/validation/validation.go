package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// FieldError describes a single violated rule. Value carries the offending
// input so clients can echo it back next to the message.
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value"`
}

// Errors is the full list of violations found in one validation pass.
// Evaluation is exhaustive, not fail-fast: every violated rule across every
// field is collected before the payload is rejected.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Kind is the expected type of a field. Coercion runs before any checks so
// that JSON numbers (float64) and query-string values (string) both satisfy
// integer and boolean fields.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Bool
	StringSlice
)

// Check is a single constraint on a coerced value. Fn reports whether the
// value is acceptable.
type Check struct {
	Fn      func(v interface{}) bool
	Message string
}

// Field is one entry in a rule set: a name, an expected kind, and an ordered
// list of checks. Default is applied to the normalized payload only after
// the whole payload validates.
type Field struct {
	Name       string
	Kind       Kind
	Required   bool
	Default    interface{}
	Checks     []Check
	ElemChecks []Check // per-element checks for StringSlice fields
}

// CrossCheck is a constraint spanning multiple fields. Cross checks always
// run, even when individual fields already failed.
type CrossCheck struct {
	Field   string
	Message string
	Fn      func(payload map[string]interface{}) bool
}

// RuleSet is a named collection of field rules for one logical operation.
// Rule sets are keyed per operation, not per entity: create, update and
// login shapes differ in which fields are required.
type RuleSet struct {
	Name   string
	Fields []Field
	Cross  []CrossCheck
}

const msgRequired = "This field is required"

// Validate checks payload against the rule set. On success it returns the
// normalized payload: unknown fields stripped, values coerced to their
// declared kinds, defaults applied. On failure it returns every violation.
func (rs *RuleSet) Validate(payload map[string]interface{}) (map[string]interface{}, Errors) {
	var errs Errors
	out := make(map[string]interface{}, len(rs.Fields))

	for _, f := range rs.Fields {
		raw, present := payload[f.Name]
		if !present || raw == nil {
			if f.Required {
				errs = append(errs, FieldError{Field: f.Name, Message: msgRequired, Value: nil})
			}
			continue
		}

		coerced, ok := coerce(raw, f.Kind)
		if !ok {
			errs = append(errs, FieldError{Field: f.Name, Message: kindMessage(f.Kind), Value: raw})
			continue
		}

		for _, c := range f.Checks {
			if !c.Fn(coerced) {
				errs = append(errs, FieldError{Field: f.Name, Message: c.Message, Value: raw})
			}
		}

		if f.Kind == StringSlice && len(f.ElemChecks) > 0 {
			for i, elem := range coerced.([]string) {
				for _, c := range f.ElemChecks {
					if !c.Fn(elem) {
						errs = append(errs, FieldError{
							Field:   fmt.Sprintf("%s.%d", f.Name, i),
							Message: c.Message,
							Value:   elem,
						})
					}
				}
			}
		}

		out[f.Name] = coerced
	}

	for _, cc := range rs.Cross {
		if !cc.Fn(payload) {
			errs = append(errs, FieldError{Field: cc.Field, Message: cc.Message, Value: payload[cc.Field]})
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	for _, f := range rs.Fields {
		if _, set := out[f.Name]; !set && f.Default != nil {
			out[f.Name] = f.Default
		}
	}

	return out, nil
}

func kindMessage(k Kind) string {
	switch k {
	case Int:
		return "Must be an integer"
	case Float:
		return "Must be a number"
	case Bool:
		return "Must be a boolean"
	case StringSlice:
		return "Must be a list of strings"
	default:
		return "Must be a string"
	}
}

// coerce converts raw into the declared kind. JSON decoding yields float64
// for every number and query parameters arrive as strings, so both are
// accepted wherever they convert losslessly.
func coerce(raw interface{}, k Kind) (interface{}, bool) {
	switch k {
	case String:
		s, ok := raw.(string)
		return s, ok
	case Int:
		switch v := raw.(type) {
		case int:
			return v, true
		case int64:
			return int(v), true
		case float64:
			if v != float64(int(v)) {
				return nil, false
			}
			return int(v), true
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, false
			}
			return n, true
		}
		return nil, false
	case Float:
		switch v := raw.(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case int64:
			return float64(v), true
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, false
			}
			return f, true
		}
		return nil, false
	case Bool:
		switch v := raw.(type) {
		case bool:
			return v, true
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, false
			}
			return b, true
		}
		return nil, false
	case StringSlice:
		switch v := raw.(type) {
		case []string:
			return v, true
		case []interface{}:
			out := make([]string, 0, len(v))
			for _, e := range v {
				s, ok := e.(string)
				if !ok {
					return nil, false
				}
				out = append(out, s)
			}
			return out, true
		}
		return nil, false
	}
	return nil, false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// MinLen requires a string of at least n characters.
func MinLen(n int) Check {
	return Check{
		Fn: func(v interface{}) bool {
			s, ok := v.(string)
			return ok && len([]rune(s)) >= n
		},
		Message: fmt.Sprintf("Must be at least %d characters", n),
	}
}

// MaxLen requires a string of at most n characters.
func MaxLen(n int) Check {
	return Check{
		Fn: func(v interface{}) bool {
			s, ok := v.(string)
			return ok && len([]rune(s)) <= n
		},
		Message: fmt.Sprintf("Must be at most %d characters", n),
	}
}

// Email requires an RFC 5322 address.
func Email() Check {
	return Check{
		Fn: func(v interface{}) bool {
			s, ok := v.(string)
			if !ok {
				return false
			}
			a, err := mail.ParseAddress(s)
			return err == nil && a.Address == s
		},
		Message: "Must be a valid email address",
	}
}

// Pattern requires the value to match re.
func Pattern(re *regexp.Regexp, message string) Check {
	return Check{
		Fn: func(v interface{}) bool {
			s, ok := v.(string)
			return ok && re.MatchString(s)
		},
		Message: message,
	}
}

// Min requires a numeric value >= n.
func Min(n float64) Check {
	return Check{
		Fn: func(v interface{}) bool {
			f, ok := toFloat(v)
			return ok && f >= n
		},
		Message: fmt.Sprintf("Must be at least %v", n),
	}
}

// Max requires a numeric value <= n.
func Max(n float64) Check {
	return Check{
		Fn: func(v interface{}) bool {
			f, ok := toFloat(v)
			return ok && f <= n
		},
		Message: fmt.Sprintf("Must be at most %v", n),
	}
}

// Positive requires a numeric value > 0.
func Positive() Check {
	return Check{
		Fn: func(v interface{}) bool {
			f, ok := toFloat(v)
			return ok && f > 0
		},
		Message: "Must be a positive number",
	}
}

// NonNegative requires a numeric value >= 0.
func NonNegative() Check {
	return Check{
		Fn: func(v interface{}) bool {
			f, ok := toFloat(v)
			return ok && f >= 0
		},
		Message: "Must be zero or greater",
	}
}

// OneOfFold requires case-insensitive membership in options.
func OneOfFold(options ...string) Check {
	return Check{
		Fn: func(v interface{}) bool {
			s, ok := v.(string)
			if !ok {
				return false
			}
			for _, o := range options {
				if strings.EqualFold(s, o) {
					return true
				}
			}
			return false
		},
		Message: "Must be one of: " + strings.Join(options, ", "),
	}
}

// URI requires an absolute http or https URL.
func URI() Check {
	return Check{
		Fn: func(v interface{}) bool {
			s, ok := v.(string)
			if !ok {
				return false
			}
			u, err := url.Parse(s)
			return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
		},
		Message: "Must be a valid URL",
	}
}
