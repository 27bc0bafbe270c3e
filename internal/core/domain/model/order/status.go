package order

import (
	"fmt"
	"strings"

	"pizzeria/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions driven by the order itself:
//
//	Pending ──> Confirmed
//	   │            │
//	   └─────┬──────┘
//	         v
//	     Cancelled   (from any state except Delivered)
//
// Preparing, Delivering and Delivered are assigned by the kitchen and courier process
// through Order.SetStatus; no transition logic exists for them here.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order is a shopping cart being filled.
	Pending

	// Confirmed orders passed checkout validation and the allergen check.
	Confirmed

	Preparing
	Delivering

	// Delivered orders can no longer be cancelled.
	Delivered

	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Confirmed:  "confirmed",
		Preparing:  "preparing",
		Delivering: "delivering",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Confirmed:  "confirmed",
		Preparing:  "preparing",
		Delivering: "delivering",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

// ParseStatus converts the wire form ("pending", "confirmed", ...) into a Status.
func ParseStatus(s string) (Status, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for status, name := range getValidStatusStrings() {
		if name == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Unknown (0) and any value outside the declared constants are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ValidateConfirm checks if the status allows confirmation without performing the transition.
// Only Pending orders may be confirmed.
func (s Status) ValidateConfirm() error {
	if s != Pending {
		return errs.NewDomainRuleErrorWithCause(
			"order cannot be confirmed",
			fmt.Errorf("%s is not a valid status to confirm", s),
		)
	}
	return nil
}

// Confirm transitions the status to Confirmed.
//
// Valid transitions:
//   - Pending -> Confirmed
//
// Returns:
//   - (Confirmed, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Confirm() (Status, error) {
	if err := s.ValidateConfirm(); err != nil {
		return 0, err
	}
	return Confirmed, nil
}

// Cancel transitions the status to Cancelled.
//
// Every status except Delivered may be cancelled, including Cancelled itself:
// re-cancelling succeeds without error.
//
// Returns:
//   - (Cancelled, nil) on valid transition
//   - (0, *errs.ConflictError) for Delivered orders
func (s Status) Cancel() (Status, error) {
	if s == Delivered {
		return 0, errs.NewConflictError("order", "is already delivered and cannot be cancelled")
	}
	return Cancelled, nil
}
