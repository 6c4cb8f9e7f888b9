// Package validation provides structured validation errors that carry the
// full list of field violations instead of stopping at the first failure.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
)

// Violation is a single failed check, tied to the field path that failed.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// Error aggregates every violation found while validating an object tree.
type Error struct {
	Violations []Violation
}

// NewError creates an Error with a single violation.
func NewError(field, message string) *Error {
	return &Error{Violations: []Violation{{Field: field, Message: message}}}
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, "; ")
}

// Index renders an indexed field path element such as "evidence[2]".
func Index(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}

// Collector accumulates violations from nested validations. The zero value
// is ready to use.
type Collector struct {
	violations []Violation
}

// Add records a single violation.
func (c *Collector) Add(field, format string, args ...any) {
	c.violations = append(c.violations, Violation{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Merge folds err into the collector. *Error values contribute their
// violations unchanged, ozzo error maps are flattened into field paths, and
// any other error becomes a single violation under field.
func (c *Collector) Merge(field string, err error) {
	if err == nil {
		return
	}

	var verr *Error
	if errors.As(err, &verr) {
		c.violations = append(c.violations, verr.Violations...)
		return
	}

	var ozzoErrs ozzo.Errors
	if errors.As(err, &ozzoErrs) {
		c.violations = append(c.violations, flattenOzzo(field, ozzoErrs)...)
		return
	}

	c.violations = append(c.violations, Violation{Field: field, Message: err.Error()})
}

// MergePrefixed is like Merge but prepends prefix to every violation field
// of a nested *Error, giving violations their full path from the root.
func (c *Collector) MergePrefixed(prefix string, err error) {
	if err == nil {
		return
	}

	var verr *Error
	if errors.As(err, &verr) {
		for _, v := range verr.Violations {
			field := v.Field
			if prefix != "" {
				field = prefix + "." + field
			}
			c.violations = append(c.violations, Violation{Field: field, Message: v.Message})
		}
		return
	}

	c.Merge(prefix, err)
}

// Err returns the accumulated violations as an *Error, or nil if no
// violation was recorded.
func (c *Collector) Err() error {
	if len(c.violations) == 0 {
		return nil
	}
	return &Error{Violations: c.violations}
}

func flattenOzzo(prefix string, errs ozzo.Errors) []Violation {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []Violation
	for _, key := range keys {
		field := key
		if prefix != "" {
			field = prefix + "." + key
		}
		if nested, ok := errs[key].(ozzo.Errors); ok {
			out = append(out, flattenOzzo(field, nested)...)
			continue
		}
		out = append(out, Violation{Field: field, Message: errs[key].Error()})
	}
	return out
}
