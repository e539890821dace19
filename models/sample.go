package models

import "time"

// Sample represents a biological sample attached to a sequencing run.
type Sample struct {
	// ID is the internal unique identifier. Zero for unpersisted entities.
	ID int64 `json:"id"`

	// Name is the sample name within its run.
	Name string `json:"name"`

	// OwnerID references the user who registered the sample.
	OwnerID int64 `json:"ownerId"`

	// ProtocolID references the protocol the sample was prepared with.
	ProtocolID int64 `json:"protocolId"`

	// CreationDate is the timestamp when the sample was registered.
	CreationDate time.Time `json:"creationDate"`
}

// TableName returns the name of the database table
// associated with the Sample model.
func (s Sample) TableName() string {
	return "samples"
}
