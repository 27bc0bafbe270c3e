// Package pizza holds the catalog model: the Pizza aggregate root, its Topping entities
// and the Size value that drives pricing.
//
// Prices are derived, never stored: Pizza.CalculatePrice is the only pricing rule and
// order items snapshot its result at the moment they are added or re-priced.
package pizza
