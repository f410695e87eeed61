package models

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles. Authorization call sites
// always pass an explicit allow-list of these values; there is no role
// hierarchy and no exclusion-style checks.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAgent  Role = "agent"
	RoleAdmin  Role = "admin"
)

// ParseRole converts a stored role string into a Role.
// Unknown values are rejected rather than passed through, so a new role
// added in the database never silently widens an existing allow-list.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleBuyer, RoleSeller, RoleAgent, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// SignupRoles are the roles a user may self-select at registration.
// Admin is assigned out-of-band only.
func SignupRoles() []Role {
	return []Role{RoleBuyer, RoleSeller, RoleAgent}
}

// Principal is the authenticated account all authorization decisions
// are made against. It is re-resolved on every request, never cached,
// because role and ownership can change between requests.
type Principal struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone,omitempty"`
	Role       Role      `json:"role"`
	IsActive   bool      `json:"is_active"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
