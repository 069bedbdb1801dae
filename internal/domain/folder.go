package domain

import "time"

// Folder groups an owner's notes. Notes reference a folder by id; a nil
// reference means the note is unfiled. Deleting a folder never deletes
// notes, it reassigns them to unfiled first.
type Folder struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
