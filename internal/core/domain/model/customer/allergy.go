package customer

import (
	"errors"
	"fmt"
	"strings"

	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var ErrAllergyIsNotConstructed = errors.New("Allergy must be created via NewAllergy constructor")

// Severity grades how strongly a customer reacts to an allergen.
type Severity string

const (
	Mild     Severity = "mild"
	Moderate Severity = "moderate"
	Severe   Severity = "severe"
)

// ParseSeverity accepts the wire form of a severity. Blank input means Moderate.
func ParseSeverity(s string) (Severity, error) {
	switch sev := Severity(strings.ToLower(strings.TrimSpace(s))); sev {
	case "":
		return Moderate, nil
	case Mild, Moderate, Severe:
		return sev, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause(
			"severity",
			fmt.Errorf("%q is not one of mild, moderate, severe", s),
		)
	}
}

func (s Severity) String() string {
	return string(s)
}

// Allergy is an immutable value object describing one allergy of a customer.
// Two allergies are equal when name and severity match; notes are informational.
//
// The protected marker is set by the storage masking transform and says nothing
// about the allergy itself.
type Allergy struct {
	name      string
	severity  Severity
	notes     string
	protected bool

	guard guard.ConstructorGuard
}

// NewAllergy validates name and severity together. An empty severity defaults to Moderate.
func NewAllergy(name string, severity Severity, notes string) (Allergy, error) {
	a := Allergy{
		notes: strings.TrimSpace(notes),
		guard: guard.NewConstructorGuard(),
	}

	if severity == "" {
		severity = Moderate
	}

	if err := errs.Validate("allergy",
		a.setName(name),
		a.setSeverity(severity),
	); err != nil {
		return Allergy{}, err
	}

	return a, nil
}

func (a Allergy) Validate() error {
	return a.guard.Validate(ErrAllergyIsNotConstructed)
}

func (a Allergy) Name() string {
	return a.name
}

func (a Allergy) Severity() Severity {
	return a.severity
}

func (a Allergy) Notes() string {
	return a.notes
}

// IsProtected reports whether the allergy went through the storage masking transform.
func (a Allergy) IsProtected() bool {
	return a.protected
}

// Protect returns a copy carrying the protected marker.
func (a Allergy) Protect() Allergy {
	a.protected = true
	return a
}

// Equals compares by name and severity.
func (a Allergy) Equals(other Allergy) bool {
	return a.name == other.name && a.severity == other.severity
}

func (a *Allergy) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("allergy name")
	}
	a.name = name
	return nil
}

func (a *Allergy) setSeverity(severity Severity) error {
	switch severity {
	case Mild, Moderate, Severe:
		a.severity = severity
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"severity",
			fmt.Errorf("%q is not one of mild, moderate, severe", severity),
		)
	}
}
