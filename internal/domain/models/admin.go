// internal/domain/models/admin.go
package models

// Admin is an institute-admin account.
type Admin struct {
	ID            string `json:"_id,omitempty"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	Status        string `json:"status,omitempty"`
	InstitutionID string `json:"institutionId"`
}

// NewAdmin is the create payload for an institute-admin.
type NewAdmin struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	Password      string `json:"password"`
	InstitutionID string `json:"institutionId"`
}
