// internal/domain/models/event.go
package models

import "time"

// Event statuses.
const (
	EventDraft     = "DRAFT"
	EventPublished = "PUBLISHED"
	EventCompleted = "COMPLETED"
	EventCancelled = "CANCELLED"
)

// EventStatuses lists the statuses in display order.
var EventStatuses = []string{EventDraft, EventPublished, EventCompleted, EventCancelled}

// Event is organized by an institution.
type Event struct {
	ID          string    `json:"_id,omitempty"`
	Title       string    `json:"title"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	Venue       string    `json:"venue,omitempty"`
	Status      string    `json:"status,omitempty"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

// RoleAssignment binds a verifier to an event role.
type RoleAssignment struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// AwardRanking places a student at a rank for an event.
type AwardRanking struct {
	Rank      int    `json:"rank"`
	StudentID string `json:"studentId"`
	Title     string `json:"title,omitempty"`
}
