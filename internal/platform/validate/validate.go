// Package validate collects field-level validation issues for service inputs.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalid matches every *Error via errors.Is.
var ErrInvalid = errors.New("validation failed")

// Issue describes one invalid field.
type Issue struct {
	Field   string
	Message string
}

// Error carries all issues found in one input.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = is.Field + ": " + is.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is reports ErrInvalid.
func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// Collector accumulates issues.
type Collector struct {
	issues []Issue
}

// Add records an issue.
func (c *Collector) Add(field, format string, args ...any) {
	c.issues = append(c.issues, Issue{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Required records an issue when value is blank.
func (c *Collector) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		c.Add(field, "is required")
	}
}

// MaxLength records an issue when value exceeds n characters.
func (c *Collector) MaxLength(field, value string, n int) {
	if utf8.RuneCountInString(value) > n {
		c.Add(field, "must be at most %d characters", n)
	}
}

// NonEmptyList records an issue when list has no non-blank entry.
func (c *Collector) NonEmptyList(field string, list []string) {
	for _, v := range list {
		if strings.TrimSpace(v) != "" {
			return
		}
	}
	c.Add(field, "must contain at least one entry")
}

// Check records an issue when ok is false.
func (c *Collector) Check(ok bool, field, format string, args ...any) {
	if !ok {
		c.Add(field, format, args...)
	}
}

// Err returns an *Error when issues were recorded, nil otherwise.
func (c *Collector) Err() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &Error{Issues: append([]Issue(nil), c.issues...)}
}

// CleanList trims entries, drops blanks and duplicates, and keeps order.
func CleanList(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, v := range list {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
