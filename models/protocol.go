package models

import "time"

// Protocol represents a laboratory protocol document owned by the user who
// registered it.
type Protocol struct {
	// ID is the internal unique identifier. Zero for unpersisted entities.
	ID int64 `json:"id"`

	// Name is the unique protocol name.
	Name string `json:"name"`

	// OwnerID references the user who registered the protocol.
	OwnerID int64 `json:"ownerId"`

	// CreationDate is the timestamp when the protocol was registered.
	CreationDate time.Time `json:"creationDate"`
}

// TableName returns the name of the database table
// associated with the Protocol model.
func (p Protocol) TableName() string {
	return "protocols"
}
