package dock

import "errors"

var (
	// ErrNotFound is returned when an item or stack is not part of the tree.
	// The tree is left unchanged.
	ErrNotFound = errors.New("not found")
	// ErrMalformed is returned by SetLayout for snapshots with an invalid
	// shape. The tree is left unchanged.
	ErrMalformed = errors.New("malformed layout")
	// ErrDuplicateItem is returned when adding an item whose id is present.
	ErrDuplicateItem = errors.New("duplicate item")
	// ErrInvalidItem is returned for items without an id.
	ErrInvalidItem = errors.New("invalid item")
	// ErrInvalidTarget is returned for drop targets that cannot receive an
	// item, such as an outside hotspot.
	ErrInvalidTarget = errors.New("invalid drop target")
)
