package model

import "time"

// Staff roles. Managers administer accounts and tables; hosts work the
// reservation board. Both roles may call every staff endpoint today,
// the split exists so the role gate does not need a schema change later.
const (
	RoleManager = "MANAGER"
	RoleHost    = "HOST"
)

// User represents a staff account as stored in the `users` table.
// Handlers define separate response types with JSON tags; this struct
// is used by the repository layer only.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – staff role (MANAGER or HOST).
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken models an entry in the `refresh_tokens` table. Only the
// SHA-256 hash of the token value is stored, never the raw string.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
