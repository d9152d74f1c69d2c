package memberrepo

import "errors"

var (
	// ErrNotFound indicates the requested member does not exist.
	ErrNotFound = errors.New("member not found")

	// ErrDuplicateID indicates a roster was loaded with two records sharing an ID.
	ErrDuplicateID = errors.New("duplicate member id")
)
