// Package validation provides the small rule library used by event records
// to check required fields, enumerations, timestamps and amounts before
// they are submitted.
//
// Records declare a field table:
//
//	validation.Check(
//	    validation.F("user_id", e.UserID, validation.Required()),
//	    validation.F("device", e.Device, validation.OneOf(vocab.Values(validation.SetDevice)...)),
//	    validation.F("event_time", e.EventTime, validation.Required(), validation.ISODateTime()),
//	)
//
// Every rule except Required ignores absent values.
package validation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"time"
)

// Result reports the outcome of validating a record.
type Result struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Rule checks one field value and returns an error message, or "" when the
// value passes.
type Rule func(field string, value any) string

// Field pairs a value with the rules that apply to it.
type Field struct {
	Name  string
	Value any
	Rules []Rule
}

// F builds a Field.
func F(name string, value any, rules ...Rule) Field {
	return Field{Name: name, Value: value, Rules: rules}
}

// Check applies every field's rules in order and collects all messages.
func Check(fields ...Field) Result {
	errs := make([]string, 0)
	for _, f := range fields {
		for _, rule := range f.Rules {
			if msg := rule(f.Name, f.Value); msg != "" {
				errs = append(errs, msg)
			}
		}
	}
	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// Append adds other's errors to r, each prefixed with prefix when it is
// non-empty.
func (r *Result) Append(prefix string, other Result) {
	for _, e := range other.Errors {
		if prefix != "" {
			e = prefix + ": " + e
		}
		r.Errors = append(r.Errors, e)
	}
	r.IsValid = len(r.Errors) == 0
}

// Required rejects absent values: nil pointers, blank strings, empty maps
// and empty raw JSON.
func Required() Rule {
	return func(field string, v any) string {
		if absent(v) {
			return field + " is required"
		}
		return ""
	}
}

// OneOf restricts a string value to allowed. An empty allowed set imposes
// no constraint, so unknown vocabulary keys never reject data.
func OneOf(allowed ...string) Rule {
	return func(field string, v any) string {
		s, ok := str(v)
		if !ok || len(allowed) == 0 || slices.Contains(allowed, s) {
			return ""
		}
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", "))
	}
}

// Equals requires a string value to equal want; context completes the
// message, e.g. `for account events`.
func Equals(want, context string) Rule {
	return func(field string, v any) string {
		s, ok := str(v)
		if !ok || s == want {
			return ""
		}
		return fmt.Sprintf("%s must be %q %s", field, want, context)
	}
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04",
	time.DateOnly,
}

// ISODateTime requires an ISO-8601 timestamp.
func ISODateTime() Rule {
	return func(field string, v any) string {
		s, ok := str(v)
		if !ok {
			return ""
		}
		for _, layout := range dateTimeLayouts {
			if _, err := time.Parse(layout, s); err == nil {
				return ""
			}
		}
		return field + " must be in ISO 8601 format (YYYY-MM-DDTHH:mm:ssZ)"
	}
}

// Date requires a calendar date in YYYY-MM-DD form.
func Date() Rule {
	return func(field string, v any) string {
		s, ok := str(v)
		if !ok {
			return ""
		}
		if _, err := time.Parse(time.DateOnly, s); err != nil {
			return field + " must be in YYYY-MM-DD format"
		}
		return ""
	}
}

// Positive requires a number greater than zero.
func Positive() Rule {
	return func(field string, v any) string {
		n, ok := num(v)
		if !ok || n > 0 {
			return ""
		}
		return field + " must be positive"
	}
}

// NonNegative requires a number greater than or equal to zero.
func NonNegative() Rule {
	return func(field string, v any) string {
		n, ok := num(v)
		if !ok || n >= 0 {
			return ""
		}
		return field + " must be a non-negative number"
	}
}

// Pattern requires a string value to match re; msg completes the message.
func Pattern(re *regexp.Regexp, msg string) Rule {
	return func(field string, v any) string {
		s, ok := str(v)
		if !ok || re.MatchString(s) {
			return ""
		}
		return field + " " + msg
	}
}

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Email requires a plausible email address.
func Email() Rule {
	return Pattern(emailRe, "must be a valid email address")
}

// Currency requires a 3-letter ISO currency code.
func Currency() Rule {
	return Pattern(currencyRe, "must be a valid 3-letter ISO currency code")
}

// JSONObject requires raw JSON to hold an object.
func JSONObject() Rule {
	return func(field string, v any) string {
		raw, ok := v.(json.RawMessage)
		if !ok || len(raw) == 0 {
			return ""
		}
		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
			return field + " must be a valid JSON object"
		}
		return ""
	}
}

// absent reports whether v carries no value.
func absent(v any) bool {
	if v == nil {
		return true
	}
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x) == ""
	case json.RawMessage:
		return len(x) == 0 || string(x) == "null"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return absent(rv.Elem().Interface())
	case reflect.Map, reflect.Slice:
		return rv.Len() == 0
	default:
		return false
	}
}

// str extracts a present string value.
func str(v any) (string, bool) {
	if absent(v) {
		return "", false
	}
	switch x := v.(type) {
	case string:
		return x, true
	case *string:
		return *x, true
	}
	return "", false
}

// num extracts a present numeric value.
func num(v any) (float64, bool) {
	if absent(v) {
		return 0, false
	}
	switch x := v.(type) {
	case float64:
		return x, true
	case *float64:
		return *x, true
	case int:
		return float64(x), true
	case *int:
		return float64(*x), true
	}
	return 0, false
}
