package domain

import "time"

// Role classifies what a profile may do. Roles are immutable after sign-up.
type Role string

const (
	RoleTenant Role = "tenant"
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
)

// Actor is the authenticated identity invoking an operation. Every service
// method takes an explicit actor; there is no ambient "current user".
type Actor struct {
	ID   string
	Role Role
}

// Profile is the marketplace-facing identity of a user. Its ID equals the
// identity provider's user ID.
type Profile struct {
	ID        string
	Role      Role
	FullName  string
	Phone     string
	AvatarRef string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProfile creates a profile for a freshly signed-up user.
func NewProfile(id string, role Role, fullName, phone string) Profile {
	now := time.Now().UTC()
	return Profile{
		ID:        id,
		Role:      role,
		FullName:  fullName,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
