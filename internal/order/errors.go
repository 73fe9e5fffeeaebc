package order

import (
	"fmt"

	"github.com/MikeMC777/ordenes-mesa/internal/apperr"
)

var (
	// ErrNotFound covers both unknown ids and ids owned by another
	// restaurant; callers must not be able to tell the two apart.
	ErrNotFound = fmt.Errorf("order %w", apperr.ErrNotFound)

	ErrValidation = apperr.ErrValidation

	ErrInvalidStatus = fmt.Errorf("%w: Invalid status", ErrValidation)
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
