// internal/domain/models/claim.go
package models

import "time"

// ClaimRequest asks for recognition as the administrator of an institution.
type ClaimRequest struct {
	ID            string    `json:"_id"`
	InstitutionID string    `json:"institutionId"`
	RequesterID   string    `json:"userId"`
	Message       string    `json:"message,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// Decision is the body sent when approving or rejecting a request.
type Decision struct {
	Reason string `json:"reason,omitempty"`
}
