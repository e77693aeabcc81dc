package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Loaders return these (optionally
// wrapped) so callers can tell "nothing there" apart from "bad content".
//
// For validation errors (bad input, malformed files), use pkg/domain-errors.
var (
	ErrNotFound = errors.New("not found")
)
