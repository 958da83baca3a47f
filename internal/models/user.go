package models

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"` // argon2id, or bcrypt for imported accounts
	FirstName    string `gorm:"type:varchar(100);not null"`
	LastName     string `gorm:"type:varchar(100);not null"`
	Role         Role   `gorm:"type:varchar(20);not null"`
	Enabled      bool   `gorm:"not null"`
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Roles returns the authorities granted to the user.
func (u *User) Roles() []Role {
	return []Role{u.Role}
}

func (u *User) HasRole(role Role) bool {
	return u.Role == role
}
