// Package services provides domain services that implement rules spanning more than one
// aggregate of the pizzeria.
//
// The package includes:
//   - AllergenGuard: cross-checks pizzas and orders against allergen lists
//
// Domain services are stateless and never touch repositories; the application layer loads
// the aggregates and hands them in.
package services
