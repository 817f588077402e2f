package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates a malformed request: empty query, no
	// sources selected, a non-positive target price, or similar.
	// No state is mutated when this is returned.
	ErrValidation = errors.New("invalid input")

	// ErrDuplicateQuery indicates a product with the same normalised
	// query is already tracked.
	ErrDuplicateQuery = errors.New("query already tracked")

	// ErrCapacity indicates the tracked-product ceiling has been
	// reached. Existing products are unaffected.
	ErrCapacity = errors.New("product limit reached")

	// ErrCheckInProgress indicates a check is already running for the
	// requested product.
	ErrCheckInProgress = errors.New("check in progress")
)
