// Package apperr holds the error kinds shared by the domain packages and the
// HTTP layer. Domain sentinels wrap one of these; transport matches on the
// kind and never on a domain package.
package apperr

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is the kind behind every "no such row for this tenant".
	ErrNotFound = errors.New("not found")

	// ErrValidation prefixes input errors. The text after "validation
	// failed: " is safe to show to clients.
	ErrValidation = errors.New("validation failed")
)

// Message returns the client-facing part of a validation error, e.g.
// "qty must be positive" for "append item: validation failed: qty must be
// positive".
func Message(err error) string {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if errors.Unwrap(e) == ErrValidation {
			return strings.TrimPrefix(e.Error(), ErrValidation.Error()+": ")
		}
	}
	return err.Error()
}
