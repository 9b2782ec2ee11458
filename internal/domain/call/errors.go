package call

import "errors"

var (
	// ErrCallNotFound is returned for call IDs the registry has never seen.
	ErrCallNotFound = errors.New("call not found")
	// ErrStateConflict is returned when a compare-and-set transition finds a
	// different current state. Callers treat it as a normal outcome, not a
	// fault: it is how duplicate and out-of-order provider callbacks are
	// absorbed.
	ErrStateConflict = errors.New("call state conflict")
	// ErrNoTransferTarget is returned when neither the request nor the
	// configuration provides a hand-off destination.
	ErrNoTransferTarget = errors.New("no transfer target configured")
)
