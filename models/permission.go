package models

import "fmt"

// Permission identifies the kind of access being requested during an
// authorization check. It is a parameter to permission evaluation, not a
// persisted entity.
type Permission int

const (
	// Read grants visibility of an entity.
	Read Permission = iota

	// Write grants creation and modification of an entity.
	Write
)

// String returns the canonical upper-case name of the permission.
// It implements the [fmt.Stringer] interface.
func (p Permission) String() string {
	switch p {
	case Read:
		return "READ"
	case Write:
		return "WRITE"
	default:
		return fmt.Sprintf("Permission(%d)", int(p))
	}
}
