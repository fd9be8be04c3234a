// Package sentinel holds the infrastructure facts stores report.
//
// Stores return these (optionally wrapped) and services translate them into
// domain errors:
//   - ErrNotFound: record does not exist
//   - ErrConflict: a unique attribute (slug, acronym) is already taken
//   - ErrInvalidState: record is in the wrong publishing state for a write
//   - ErrUnavailable: backing service could not be reached
package sentinel

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
