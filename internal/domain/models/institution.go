// internal/domain/models/institution.go
package models

import "time"

// Institution types.
const (
	InstitutionSchool     = "SCHOOL"
	InstitutionCollege    = "COLLEGE"
	InstitutionNGO        = "NGO"
	InstitutionCompany    = "COMPANY"
	InstitutionGovernment = "GOVERNMENT"
)

// InstitutionTypes lists the types in display order.
var InstitutionTypes = []string{
	InstitutionSchool, InstitutionCollege, InstitutionNGO, InstitutionCompany, InstitutionGovernment,
}

// Institution statuses.
const (
	InstitutionActive    = "ACTIVE"
	InstitutionPending   = "PENDING"
	InstitutionSuspended = "SUSPENDED"
)

// InstitutionStatuses lists the statuses in display order.
var InstitutionStatuses = []string{InstitutionActive, InstitutionPending, InstitutionSuspended}

// Address is the postal address of an institution or student.
type Address struct {
	Line1    string `json:"line1,omitempty"`
	City     string `json:"city,omitempty"`
	District string `json:"district,omitempty"`
	State    string `json:"state,omitempty"`
	Pincode  string `json:"pincode,omitempty"`
}

// Institution is an organizational tenant.
type Institution struct {
	ID          string    `json:"_id,omitempty"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Status      string    `json:"status,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Website     string    `json:"website,omitempty"`
	Description string    `json:"description,omitempty"`
	Address     Address   `json:"address"`
	Claimed     bool      `json:"claimed"`
	KYCVerified bool      `json:"kycVerified"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}
