// internal/domain/models/profile.go
package models

// Profile is the signed-in user as returned by the API login endpoint.
// It is serialized into the session and read back for display.
type Profile struct {
	ID              string `json:"_id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	InstitutionID   string `json:"institutionId,omitempty"`
	InstitutionName string `json:"institutionName,omitempty"`
}

// DisplayName prefers the name, then the email, then the id.
func (p Profile) DisplayName() string {
	switch {
	case p.Name != "":
		return p.Name
	case p.Email != "":
		return p.Email
	default:
		return p.ID
	}
}
