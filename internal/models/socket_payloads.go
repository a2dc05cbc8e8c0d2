package models

import "github.com/google/uuid"

type PositionPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ColorPayload struct {
	Color string `json:"color"`
}

type NamePayload struct {
	Name string `json:"name"`
}

type ChatPayload struct {
	Text string `json:"text"`
}

type CompleteStrokePayload struct {
	Image string `json:"image"`
}

type UserLeftPayload struct {
	ID uuid.UUID `json:"id"`
}
