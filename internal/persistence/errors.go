package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a uniqueness constraint rejects a write.
	ErrDuplicate = errors.New("persistence: duplicate")
	// ErrConflict is returned when a reservation insert would overlap an
	// existing booking. The guard runs inside the insert transaction so
	// racing creates cannot both land.
	ErrConflict = errors.New("persistence: booking conflict")
	// ErrStaleStatus is returned when a compare-and-set status update finds
	// the record no longer in the expected state.
	ErrStaleStatus = errors.New("persistence: stale status")
	// ErrConstraintViolation is returned when a CHECK constraint rejects a write.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
	// ErrForeignKeyViolation is returned when a referenced record is missing.
	ErrForeignKeyViolation = errors.New("persistence: foreign key violation")
)
