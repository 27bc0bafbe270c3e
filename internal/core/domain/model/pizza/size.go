package pizza

import (
	"fmt"
	"strings"

	"pizzeria/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Size is the pizza size. It selects the multiplier applied to the base price plus toppings.
//
//	Small  x1.0
//	Medium x1.3
//	Large  x1.6
type Size int

const (
	// UnknownSize (0) catches uninitialized Size values.
	UnknownSize Size = iota
	Small
	Medium
	Large
)

var (
	sizeNames = map[Size]string{
		Small:  "small",
		Medium: "medium",
		Large:  "large",
	}

	sizeMultipliers = map[Size]decimal.Decimal{
		Small:  decimal.RequireFromString("1.0"),
		Medium: decimal.RequireFromString("1.3"),
		Large:  decimal.RequireFromString("1.6"),
	}

	fallbackMultiplier = decimal.NewFromInt(1)
)

// ParseSize converts the wire form ("small", "medium", "large", any case) into a Size.
func ParseSize(s string) (Size, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for size, name := range sizeNames {
		if name == needle {
			return size, nil
		}
	}
	return UnknownSize, errs.NewValueIsInvalidErrorWithCause(
		"size",
		fmt.Errorf("%q is not one of small, medium, large", s),
	)
}

// Validate rejects UnknownSize and out-of-range values.
func (s Size) Validate() error {
	if _, ok := sizeNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("size", fmt.Errorf("%d is not a valid size", s))
	}
	return nil
}

func (s Size) String() string {
	if name, ok := sizeNames[s]; ok {
		return name
	}
	return "unknown"
}

// Multiplier returns the price factor for the size. Unrecognized sizes price at 1.0.
func (s Size) Multiplier() decimal.Decimal {
	if m, ok := sizeMultipliers[s]; ok {
		return m
	}
	return fallbackMultiplier
}
