package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// Card permissions
	PermissionCardRead     = "card:read"
	PermissionCardTransfer = "card:transfer"
	PermissionRequestWrite = "request:write"

	// User permissions
	PermissionUserRead = "user:read"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Permissions  []string  `json:"permissions"`
	TokenVersion int       `json:"token_version"`
	TokenType    string    `json:"token_type"`
}

// Identity is the resolved requester handed to guarded operations.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

func (c *UserClaims) Identity() Identity {
	return Identity{UserID: c.UserID, Role: c.Role}
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionReadAdmin,
			PermissionWriteAdmin,
			PermissionCardRead,
			PermissionUserRead,
		}
	case RoleUser:
		return []string{
			PermissionCardRead,
			PermissionCardTransfer,
			PermissionRequestWrite,
			PermissionUserRead,
		}
	default:
		return []string{}
	}
}
