// Package kernel provides core domain primitives shared by every aggregate of the pizzeria.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - IDGenerator: The injected facility that produces identifiers for new entities
//   - Money: An exact decimal amount used for base prices, topping prices and order totals
//   - Clock: The injected source of createdAt/updatedAt instants
//
// These primitives are immutable and safe for concurrent use.
package kernel
