package models

import "time"

// Comparison is a saved diff between two files, owned by one user.
// Immutable after creation; only the owner can delete it.
type Comparison struct {
	ID        int       `json:"id"`
	UserID    int       `json:"-"`
	Filename1 string    `json:"filename1"`
	Filename2 string    `json:"filename2"`
	Diff      string    `json:"diff"`
	CreatedAt time.Time `json:"created_at"`
}
