package services

import (
	"github.com/expensehub/backend/models"
)

// Caller is the identity resolved from a verified session credential.
// Every access-layer operation takes it explicitly; the id and role
// are trusted once the auth middleware has resolved them.
type Caller struct {
	ID   uint
	Role string
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}
