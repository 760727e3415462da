// Package validation provides the issue-collection type used by the
// structural program validator (internal/validator). The rules loader does
// not use it: its type-check returns configuration errors directly.
package validation

import "fmt"

// Issue is a single validation finding with a dotted location path, e.g.
// "days[3].exercises[1].week_2".
type Issue struct {
	Type     string
	Location string
	Field    string
	Message  string
	Value    interface{}
}

func (i Issue) String() string {
	if i.Field != "" {
		return fmt.Sprintf("%s (%s.%s): %s", i.Type, i.Location, i.Field, i.Message)
	}
	return fmt.Sprintf("%s (%s): %s", i.Type, i.Location, i.Message)
}

// Result accumulates errors and warnings produced while validating a single
// entity or document. Errors mark the result invalid; warnings never do.
type Result struct {
	Errors   []Issue
	Warnings []Issue
}

// NewResult returns an empty, initially-valid Result.
func NewResult() *Result {
	return &Result{Errors: []Issue{}, Warnings: []Issue{}}
}

// AddError records an error-level issue.
func (r *Result) AddError(issueType, location, field, message string, value interface{}) {
	r.Errors = append(r.Errors, Issue{Type: issueType, Location: location, Field: field, Message: message, Value: value})
}

// AddWarning records a warning-level issue. Warnings do not affect Valid().
func (r *Result) AddWarning(issueType, location, field, message string, value interface{}) {
	r.Warnings = append(r.Warnings, Issue{Type: issueType, Location: location, Field: field, Message: message, Value: value})
}

// Valid reports whether no errors have been recorded.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings reports whether any warnings have been recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Merge folds another Result's errors and warnings into this one.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Error renders a combined message, satisfying the error interface so a
// Result can be returned directly from a fallible validation call.
func (r *Result) Error() string {
	if r.Valid() {
		return ""
	}
	if len(r.Errors) == 1 {
		return r.Errors[0].String()
	}
	return fmt.Sprintf("%d validation errors, first: %s", len(r.Errors), r.Errors[0].String())
}

// AsError returns r as an error when invalid, or nil when valid.
func (r *Result) AsError() error {
	if r.Valid() {
		return nil
	}
	return r
}
