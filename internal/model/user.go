package model

import "time"

// Role values stored in users.role.
const (
	RolePlayer    = "player"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// Account status values stored in users.status.
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// User represents a row in the `users` table. Accounts are never hard
// deleted; DeletedAt marks a soft delete. The json tags are omitted because
// handlers define their own response types.
//
// Fields:
//  ID           – primary key (UUID).
//  Email        – unique, stored lower-cased.
//  PasswordHash – bcrypt hash of the password.
//  Role         – one of player, moderator, admin.
//  Status       – active or suspended.
type User struct {
	ID           string     // users.id
	Email        string     // users.email
	PasswordHash string     // users.password_hash
	Role         string     // users.role
	Status       string     // users.status
	CreatedAt    time.Time  // users.created_at
	UpdatedAt    time.Time  // users.updated_at
	DeletedAt    *time.Time // users.deleted_at (nullable)
}
