package uc

import (
	"errors"
	"fmt"
)

// Sentinel errors. LayoutErrors unwrap to one of these.
var (
	ErrNoKeyTable               = errors.New("layout has no key table info")
	ErrUnsupportedDeadKeyFormat = errors.New("unsupported dead key record format")
	ErrMissingInitiatingState   = errors.New("dead key state has no initiating chord")
	ErrMissingModifierCombo     = errors.New("character table has no modifier combination")
)

// ErrorSeverity represents the severity level of a layout decoding error.
type ErrorSeverity int

const (
	// SeverityCritical indicates an error that makes the layout unusable.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor indicates that a whole sub-table had to be skipped.
	SeverityMajor
	// SeverityMinor indicates that a single record or entry had to be skipped.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// LayoutError represents an error encountered during layout decoding.
// Non-critical errors are accumulated during decoding and can be inspected
// from the resulting Layout. Critical errors are returned by Parse.
type LayoutError struct {
	Section  string        // sub-table where the error occurred (e.g., "StateRecords")
	Issue    string        // human-readable description of the issue
	Severity ErrorSeverity // severity level of the error
	Offset   uint32        // byte offset in the layout data (0 if unknown)
	Err      error         // sentinel error, may be nil
}

// Error implements the error interface.
func (e LayoutError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("[%s] %s at offset %d: %s", e.Severity, e.Section, e.Offset, e.Issue)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Section, e.Issue)
}

// Unwrap returns the sentinel error for use with errors.Is.
func (e LayoutError) Unwrap() error {
	return e.Err
}

// LayoutWarning represents a non-critical oddity found in the layout data.
type LayoutWarning struct {
	Section string // sub-table where the warning occurred
	Issue   string // human-readable description of the warning
	Offset  uint32 // byte offset in the layout data (0 if unknown)
}

// String returns a human-readable representation of the warning.
func (w LayoutWarning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("[WARNING] %s at offset %d: %s", w.Section, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING] %s: %s", w.Section, w.Issue)
}

// errorCollector accumulates errors and warnings during decoding.
type errorCollector struct {
	errors   []LayoutError
	warnings []LayoutWarning
}

// addError records a decoding error.
func (ec *errorCollector) addError(section string, issue string, severity ErrorSeverity, offset uint32, err error) {
	ec.errors = append(ec.errors, LayoutError{
		Section:  section,
		Issue:    issue,
		Severity: severity,
		Offset:   offset,
		Err:      err,
	})
}

// addWarning records a decoding warning.
func (ec *errorCollector) addWarning(section string, issue string, offset uint32) {
	ec.warnings = append(ec.warnings, LayoutWarning{
		Section: section,
		Issue:   issue,
		Offset:  offset,
	})
}

// critical records a critical error and returns it, ready to be handed back
// to the caller of Parse.
func (ec *errorCollector) critical(section string, offset uint32, err error) error {
	e := LayoutError{
		Section:  section,
		Issue:    err.Error(),
		Severity: SeverityCritical,
		Offset:   offset,
		Err:      err,
	}
	ec.errors = append(ec.errors, e)
	tracer().Errorf("%s", e.Error())
	return e
}
