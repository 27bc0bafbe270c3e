package order

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

// DefaultCountry is used when an address is given without a country.
const DefaultCountry = "USA"

var ErrDeliveryAddressIsNotConstructed = errors.New("DeliveryAddress must be created via NewDeliveryAddress constructor")

var zipCodePattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// DeliveryAddress is an immutable US postal address with optional courier instructions.
type DeliveryAddress struct {
	street       string
	city         string
	state        string
	zipCode      string
	country      string
	instructions string

	guard guard.ConstructorGuard
}

// NewDeliveryAddress validates street, city, state and ZIP code together.
func NewDeliveryAddress(street, city, state, zipCode, country, instructions string) (DeliveryAddress, error) {
	a := DeliveryAddress{
		country:      strings.TrimSpace(country),
		instructions: strings.TrimSpace(instructions),
		guard:        guard.NewConstructorGuard(),
	}
	if a.country == "" {
		a.country = DefaultCountry
	}

	if err := errs.Validate("delivery address",
		a.setStreet(street),
		a.setCity(city),
		a.setState(state),
		a.setZipCode(zipCode),
	); err != nil {
		return DeliveryAddress{}, err
	}

	return a, nil
}

func (a DeliveryAddress) Validate() error {
	return a.guard.Validate(ErrDeliveryAddressIsNotConstructed)
}

func (a DeliveryAddress) Street() string       { return a.street }
func (a DeliveryAddress) City() string         { return a.city }
func (a DeliveryAddress) State() string        { return a.state }
func (a DeliveryAddress) ZipCode() string      { return a.zipCode }
func (a DeliveryAddress) Country() string      { return a.country }
func (a DeliveryAddress) Instructions() string { return a.instructions }

// Equals compares every field except the instructions.
func (a DeliveryAddress) Equals(other DeliveryAddress) bool {
	return a.street == other.street &&
		a.city == other.city &&
		a.state == other.state &&
		a.zipCode == other.zipCode &&
		a.country == other.country
}

func (a DeliveryAddress) String() string {
	return fmt.Sprintf("%s, %s, %s %s, %s", a.street, a.city, a.state, a.zipCode, a.country)
}

func (a *DeliveryAddress) setStreet(street string) error {
	if a.street = strings.TrimSpace(street); a.street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	return nil
}

func (a *DeliveryAddress) setCity(city string) error {
	if a.city = strings.TrimSpace(city); a.city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	return nil
}

func (a *DeliveryAddress) setState(state string) error {
	if a.state = strings.TrimSpace(state); a.state == "" {
		return errs.NewValueIsRequiredError("state")
	}
	return nil
}

func (a *DeliveryAddress) setZipCode(zipCode string) error {
	zipCode = strings.TrimSpace(zipCode)
	if !zipCodePattern.MatchString(zipCode) {
		return errs.NewValueIsInvalidErrorWithCause("zip code", fmt.Errorf("%q is not a valid US ZIP code", zipCode))
	}
	a.zipCode = zipCode
	return nil
}
