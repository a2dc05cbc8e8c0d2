package models

import "github.com/google/uuid"

// ChatEntry is immutable once created. Name and Color are the author's values
// at posting time, not live references, so a later rename never rewrites the
// log.
type ChatEntry struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Time  int64     `json:"time"`
	Value string    `json:"value"`
}
