package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role values stored on users.
const (
	RoleAdmin    = "admin"
	RoleAgent    = "agent"
	RoleCustomer = "customer"
)

type User struct {
	ID         uuid.UUID
	Name       string
	Department string
	Avatar     *string
	Role       string
	CreatedAt  time.Time
}

// AvatarOrEmpty returns the avatar URL, or "" when none is set.
func (u *User) AvatarOrEmpty() string {
	if u.Avatar == nil {
		return ""
	}
	return *u.Avatar
}
