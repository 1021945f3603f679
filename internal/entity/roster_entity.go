package entity

import "time"

// RosterSnapshot is one loaded roster with its provenance. LoadId
// changes on every successful load so derived views can memoise
// against it.
type RosterSnapshot struct {
	Characters []*Character `json:"characters"`
	Source     string       `json:"source"`
	LoadId     string       `json:"load_id"`
	LoadedAt   time.Time    `json:"loaded_at"`
}
