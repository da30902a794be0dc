package models

// Subject is a taught discipline; the service keys everything about it by
// name rather than id.
type Subject struct {
	Name string `json:"name"`
}
