// Package masking provides implementations of ports.AllergyMasker.
package masking

import (
	"slices"

	"pizzeria/internal/core/domain/model/customer"
)

// MarkerMasker tags allergy records as protected on write and returns them unchanged on
// read. It is a placeholder for real encryption and provides no confidentiality.
type MarkerMasker struct{}

func NewMarkerMasker() MarkerMasker {
	return MarkerMasker{}
}

// Mask returns copies of allergies carrying the protected marker.
func (MarkerMasker) Mask(allergies []customer.Allergy) ([]customer.Allergy, error) {
	out := make([]customer.Allergy, 0, len(allergies))
	for _, a := range allergies {
		out = append(out, a.Protect())
	}
	return out, nil
}

// Unmask is a pass-through.
func (MarkerMasker) Unmask(allergies []customer.Allergy) ([]customer.Allergy, error) {
	return slices.Clone(allergies), nil
}
