package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Add adds an error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// Validate validates the sweep configuration.
//
// Returns nil if valid, or a *ValidationErrors containing every problem found.
func (c *SweepConfig) Validate() error {
	errs := &ValidationErrors{}

	if c.Repeat < 1 {
		errs.Add("repeat", fmt.Sprintf("must be at least 1, got %d", c.Repeat))
	}
	if c.Tolerance <= 0 {
		errs.Add("tolerance", fmt.Sprintf("must be positive, got %g", c.Tolerance))
	}
	if c.MaxMemoryMB < 0 {
		errs.Add("maxMemoryMB", fmt.Sprintf("must not be negative, got %d", c.MaxMemoryMB))
	}

	if len(c.Threads) == 0 {
		errs.Add("threads", "at least one thread count is required")
	}
	for i, t := range c.Threads {
		if t < 1 {
			errs.Add(fmt.Sprintf("threads[%d]", i), fmt.Sprintf("must be positive, got %d", t))
		}
	}

	if len(c.Tests) == 0 {
		errs.Add("tests", "at least one test is required")
	}
	labels := make(map[string]int, len(c.Tests))
	for i, tc := range c.Tests {
		validateTest(i, tc, errs)
		if tc.Label == "" {
			continue
		}
		if prev, dup := labels[tc.Label]; dup {
			errs.Add(fmt.Sprintf("tests[%d].label", i), fmt.Sprintf("duplicate label %q (also tests[%d])", tc.Label, prev))
			continue
		}
		labels[tc.Label] = i
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// validateTest validates a single problem size.
func validateTest(i int, tc TestCase, errs *ValidationErrors) {
	prefix := fmt.Sprintf("tests[%d]", i)

	if tc.K <= 0 {
		errs.Add(prefix+".k", fmt.Sprintf("array count must be positive, got %d", tc.K))
	}
	if tc.N <= 0 {
		errs.Add(prefix+".n", fmt.Sprintf("array length must be positive, got %d", tc.N))
	}
	if strings.ContainsAny(tc.Label, ",\n\"") {
		errs.Add(prefix+".label", "must not contain commas, quotes or newlines")
	}
}
