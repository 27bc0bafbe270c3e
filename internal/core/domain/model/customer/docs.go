// Package customer holds the Customer entity and its Allergy value object.
package customer
