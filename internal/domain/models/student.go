// internal/domain/models/student.go
package models

// Student statuses.
const (
	StudentActive   = "ACTIVE"
	StudentInactive = "INACTIVE"
)

// StudentStatuses lists the statuses in display order.
var StudentStatuses = []string{StudentActive, StudentInactive}

// Student belongs to the signed-in admin's institution.
type Student struct {
	ID          string  `json:"_id,omitempty"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone,omitempty"`
	RollNumber  string  `json:"rollNumber,omitempty"`
	Class       string  `json:"class,omitempty"`
	Status      string  `json:"status,omitempty"`
	KYCVerified bool    `json:"kycVerified"`
	Address     Address `json:"address"`
}

// ProfileRequest is a student's pending change to their own profile.
type ProfileRequest struct {
	ID        string            `json:"_id"`
	StudentID string            `json:"userId"`
	Changes   map[string]string `json:"changes"`
	Status    string            `json:"status"`
}
