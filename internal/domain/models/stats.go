// internal/domain/models/stats.go
package models

// Stat is one labelled counter on the dashboard overview.
type Stat struct {
	Key   string
	Label string
	Value int
}
