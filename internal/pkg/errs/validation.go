package errs

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationReport is the flat form of a validation outcome: whether the subject is valid
// and every rule it breaks.
type ValidationReport struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// ValidationError aggregates every rule violated by one subject (an entity, a value object
// or a request). It never reports just the first failure.
type ValidationError struct {
	Subject string
	Causes  []error
}

// Validate collects the non-nil errors produced by field setters of subject.
// It returns nil when every check passed, otherwise a *ValidationError holding all of them.
// Nested ValidationErrors are flattened into the outer one.
//
// Example:
//
//	if err := errs.Validate("pizza",
//	    p.setName(name),
//	    p.setBasePrice(basePrice),
//	    p.setSize(size),
//	); err != nil {
//	    return nil, err
//	}
func Validate(subject string, checks ...error) error {
	var causes []error
	for _, err := range checks {
		if err == nil {
			continue
		}

		var nested *ValidationError
		if errors.As(err, &nested) {
			causes = append(causes, nested.Causes...)
			continue
		}
		causes = append(causes, err)
	}

	if len(causes) == 0 {
		return nil
	}

	return &ValidationError{
		Subject: subject,
		Causes:  causes,
	}
}

// Problems returns a human readable line for every violated rule.
func (e *ValidationError) Problems() []string {
	out := make([]string, 0, len(e.Causes))
	for _, c := range e.Causes {
		out = append(out, c.Error())
	}
	return out
}

// Report converts the error into its flat report form.
func (e *ValidationError) Report() ValidationReport {
	return ValidationReport{
		IsValid: false,
		Errors:  e.Problems(),
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Subject, strings.Join(e.Problems(), ", "))
}

func (e *ValidationError) Unwrap() []error {
	return append([]error{ErrValidation}, e.Causes...)
}

// ReportOf builds a report for any error returned by a Validate method.
// A nil error is a valid report; a non-validation error becomes a single-line report.
func ReportOf(err error) ValidationReport {
	if err == nil {
		return ValidationReport{IsValid: true, Errors: []string{}}
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Report()
	}

	return ValidationReport{IsValid: false, Errors: []string{err.Error()}}
}
