package domain

import (
	"time"
)

type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// Note is the private, owner-scoped record. Content holds the stored form
// (possibly compressed, see Compressed); use cases hand decompressed bodies
// to callers. Slug is assigned once at creation and never regenerated.
type Note struct {
	ID         string     `json:"id"`
	OwnerID    string     `json:"owner_id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Compressed bool       `json:"compressed"`
	Slug       string     `json:"slug"`
	Tags       []string   `json:"tags"`
	Visibility Visibility `json:"visibility"`
	FolderID   *string    `json:"folder_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// PublicNote is the shareable projection of a private note. It exists only
// while the private note's visibility is public, and at most one projection
// exists per private note.
type PublicNote struct {
	ID            string    `json:"id"`
	PrivateNoteID string    `json:"private_note_id"`
	OwnerID       string    `json:"owner_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Compressed    bool      `json:"compressed"`
	Slug          string    `json:"slug"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
