package model

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleCoordinator Role = "COORDINATOR"
	RoleTeacher     Role = "TEACHER"
	RoleCounselor   Role = "COUNSELOR"
)

// Principal is the authenticated caller extracted from the access token.
type Principal struct {
	UserID   uuid.UUID
	SchoolID uuid.UUID
	Role     Role
}

func (p Principal) IsAdmin() bool       { return p.Role == RoleAdmin }
func (p Principal) IsCoordinator() bool { return p.Role == RoleCoordinator }
func (p Principal) IsTeacher() bool     { return p.Role == RoleTeacher }
func (p Principal) IsCounselor() bool   { return p.Role == RoleCounselor }

// CanManageOrders reports whether the principal may place or edit order
// guides.
func (p Principal) CanManageOrders() bool {
	return p.IsAdmin() || p.IsCoordinator()
}
