package site

import (
	"fmt"
	"strings"
)

// Severity of a configuration issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Code identifies the rule an issue was raised by.
type Code string

const (
	CodeMalformedNode  Code = "malformed-node"
	CodeEmptyGroup     Code = "empty-group"
	CodeNestedGroup    Code = "nested-group"
	CodeUnknownField   Code = "unknown-field"
	CodeDuplicateMenu  Code = "duplicate-menu"
	CodeEmptySection   Code = "empty-section"
	CodeMissingField   Code = "missing-field"
	CodeInvalidPath    Code = "invalid-path"
	CodeInvalidURL     Code = "invalid-url"
	CodeInvalidValue   Code = "invalid-value"
	CodeRespelledValue Code = "respelled-value"
	CodeDanglingMenu   Code = "dangling-menu"
	CodeDuplicateRoute Code = "duplicate-route"
	CodeOutsideSection Code = "outside-section"
	CodeMissingDoc     Code = "missing-doc"
)

// Issue is a single finding about a configuration document.
type Issue struct {
	Code     Code     `json:"code"`
	Severity Severity `json:"severity"`
	Location string   `json:"location"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	var b strings.Builder
	if i.Line > 0 {
		fmt.Fprintf(&b, "%d:%d: ", i.Line, i.Column)
	}
	fmt.Fprintf(&b, "%s [%s]", i.Severity, i.Code)
	if i.Location != "" {
		fmt.Fprintf(&b, " %s", i.Location)
	}
	fmt.Fprintf(&b, ": %s", i.Message)
	return b.String()
}

// Report collects issues in the order they were found.
type Report struct {
	Issues []Issue `json:"issues"`
}

// Add appends an issue.
func (r *Report) Add(issue Issue) {
	r.Issues = append(r.Issues, issue)
}

// Errorf appends an error-severity issue.
func (r *Report) Errorf(code Code, location, format string, args ...any) {
	r.Add(Issue{Code: code, Severity: SeverityError, Location: location, Message: fmt.Sprintf(format, args...)})
}

// Warnf appends a warning.
func (r *Report) Warnf(code Code, location, format string, args ...any) {
	r.Add(Issue{Code: code, Severity: SeverityWarning, Location: location, Message: fmt.Sprintf(format, args...)})
}

// Merge appends all issues of other.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Issues = append(r.Issues, other.Issues...)
}

// HasErrors reports whether any issue has error severity.
func (r *Report) HasErrors() bool {
	return len(r.Errors()) > 0
}

// Errors returns error-severity issues.
func (r *Report) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns warning-severity issues.
func (r *Report) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

// Escalate turns every warning into an error.
func (r *Report) Escalate() {
	for i := range r.Issues {
		r.Issues[i].Severity = SeverityError
	}
}

// Err returns a *ReportError when the report contains errors, nil otherwise.
func (r *Report) Err() error {
	if r == nil || !r.HasErrors() {
		return nil
	}
	return &ReportError{Report: r}
}

func (r *Report) filter(s Severity) []Issue {
	if r == nil {
		return nil
	}
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			out = append(out, i)
		}
	}
	return out
}

// ReportError is returned when a document has error-severity issues.
type ReportError struct {
	Report *Report
}

func (e *ReportError) Error() string {
	errs := e.Report.Errors()
	switch len(errs) {
	case 0:
		return "configuration is invalid"
	case 1:
		return errs[0].String()
	default:
		return fmt.Sprintf("%s (and %d more)", errs[0].String(), len(errs)-1)
	}
}
