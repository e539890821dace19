package models

import "time"

// Dataset represents a sequencing dataset registered by a laboratory member.
// Ownership drives the read/write permission rules: the owner and users
// holding MANAGER or ADMIN may read, writes follow the same rule.
type Dataset struct {
	// ID is the internal unique identifier. Zero for entities that have
	// not been persisted yet.
	ID int64 `json:"id"`

	// Name is the human-readable dataset name.
	Name string `json:"name"`

	// OwnerID references the user who created the dataset.
	OwnerID int64 `json:"ownerId"`

	// Editable indicates whether the dataset is still open for changes.
	Editable bool `json:"editable"`

	// CreationDate is the timestamp when the dataset was registered.
	CreationDate time.Time `json:"creationDate"`
}

// TableName returns the name of the database table
// associated with the Dataset model.
func (d Dataset) TableName() string {
	return "datasets"
}
