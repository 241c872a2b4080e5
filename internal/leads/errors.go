package leads

import "errors"

var (
	// ErrStorage is returned when the document store rejects or fails a write.
	// The underlying cause is wrapped alongside it.
	ErrStorage = errors.New("leads: storage failure")

	// ErrNoStore is returned when the service was built without a store.
	ErrNoStore = errors.New("leads: store not configured")
)
