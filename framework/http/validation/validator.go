package validation

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gofrs/uuid"
)

// ── Errors ───────────────────────────────────────────────────────────────────

// Errors collects messages per field.
// JSON output: {"errors": {"field": ["msg1", "msg2"]}}
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

// Add appends msg to the messages of field.
func (e *Errors) Add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has returns true if there are any errors.
func (e *Errors) Has() bool { return len(e.Bag) > 0 }

// First returns the first error for a field.
func (e *Errors) First(field string) string {
	if msgs := e.Bag[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// ── Validator ────────────────────────────────────────────────────────────────

// Rules maps a field to a pipe-separated rule list, e.g.
// Rules{"title": "required|max:200", "id": "required|uuid"}.
type Rules map[string]string

// Validator checks a flat map of input values against Rules.
type Validator struct {
	data   map[string]string
	rules  Rules
	errors *Errors
	ran    bool
}

// Make creates a Validator. Nothing is checked until Fails or Passes.
func Make(data map[string]string, rules Rules) *Validator {
	return &Validator{data: data, rules: rules, errors: &Errors{}}
}

// Fails validates once and reports whether any rule failed.
func (v *Validator) Fails() bool {
	if !v.ran {
		v.ran = true
		v.validate()
	}
	return v.errors.Has()
}

// Passes is the negation of Fails.
func (v *Validator) Passes() bool { return !v.Fails() }

// Errors returns the error bag.
func (v *Validator) Errors() *Errors { return v.errors }

// Fields are checked in name order; the first failing rule of a field stops
// the remaining ones.
func (v *Validator) validate() {
	for _, field := range slices.Sorted(maps.Keys(v.rules)) {
		value, present := v.data[field]
		for _, r := range strings.Split(v.rules[field], "|") {
			name, param, _ := strings.Cut(strings.TrimSpace(r), ":")
			if name == "" {
				continue
			}
			if name == "sometimes" {
				if !present || value == "" {
					break
				}
				continue
			}
			check, ok := checks[name]
			if !ok {
				panic(fmt.Sprintf("validation: unknown rule %q", name))
			}
			if msg, ok := check(field, value, param); !ok {
				v.errors.Add(field, msg)
				break
			}
		}
	}
}

// ── Rules ────────────────────────────────────────────────────────────────────

type check func(field, value, param string) (string, bool)

var checks = map[string]check{
	"required": func(field, value, _ string) (string, bool) {
		return fmt.Sprintf("The %s field is required.", field), strings.TrimSpace(value) != ""
	},
	"min": func(field, value, param string) (string, bool) {
		n, _ := strconv.Atoi(param)
		return fmt.Sprintf("The %s must be at least %d characters.", field, n), utf8.RuneCountInString(value) >= n
	},
	"max": func(field, value, param string) (string, bool) {
		n, _ := strconv.Atoi(param)
		return fmt.Sprintf("The %s may not be greater than %d characters.", field, n), utf8.RuneCountInString(value) <= n
	},
	"integer": func(field, value, _ string) (string, bool) {
		_, err := strconv.Atoi(value)
		return fmt.Sprintf("The %s must be an integer.", field), err == nil
	},
	"boolean": func(field, value, _ string) (string, bool) {
		switch strings.ToLower(value) {
		case "true", "false", "1", "0", "yes", "no":
			return "", true
		}
		return fmt.Sprintf("The %s field must be true or false.", field), false
	},
	"in": func(field, value, param string) (string, bool) {
		for _, a := range strings.Split(param, ",") {
			if strings.TrimSpace(a) == value {
				return "", true
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field), false
	},
	"uuid": func(field, value, _ string) (string, bool) {
		_, err := uuid.FromString(value)
		return fmt.Sprintf("The %s must be a valid UUID.", field), err == nil
	},
}
