package sentinel

import "errors"

// Sentinel errors for storage facts. Stores return these (optionally wrapped) so
// services can translate them into coded domain errors.
//
//   - ErrNotFound: key does not exist in the store
//   - ErrAlreadyUsed: claim-once key already taken
//   - ErrConflict: relation already recorded
//   - ErrUnavailable: backing service temporarily unavailable
var (
	ErrNotFound    = errors.New("not found")
	ErrAlreadyUsed = errors.New("already used")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
