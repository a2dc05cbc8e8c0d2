package models

// HistorySnapshot is a completed stroke rasterized by the client into an
// opaque payload. Time is the server-side creation time in Unix milliseconds
// and drives the retention window.
type HistorySnapshot struct {
	Time  int64  `json:"time"`
	Value string `json:"value"`
}
