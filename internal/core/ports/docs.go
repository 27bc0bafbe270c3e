// Package ports defines the contracts between the pizzeria core and its storage adapters.
// Every repository returns *errs.ObjectNotFoundError instead of a nil entity, so callers
// branch with errors.Is(err, errs.ErrObjectNotFound).
package ports
