package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Precondition and caller-error sentinels surfaced by the cart and the
// submission workflow. ErrEmptyCart is distinct from a validation failure so
// the UI can render an empty-cart state instead of a form error.
var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrDuplicateLine = errors.New("item is already in the cart")
	ErrLineNotFound  = errors.New("item is not in the cart")
	ErrSoldOut       = errors.New("menu item is sold out")
)

// ValidationErrors maps a form field to a human-readable message. It is
// returned as structured data and never treated as a fatal fault.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed for: %s", strings.Join(fields, ", "))
}
