package models

import (
	"time"
)

type Role string

const (
	RoleVisitor      Role = "visitor"
	RoleProjectOwner Role = "project_owner"
	RoleAdmin        Role = "admin"
)

// ValidRole reports whether r is a role a client may register with.
// Admin accounts are only created through the seed tool.
func ValidRole(r Role) bool {
	return r == RoleVisitor || r == RoleProjectOwner
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FirstName    string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"` // Never expose password hash in JSON
	Role         Role      `gorm:"type:varchar(20);not null;default:'visitor'" json:"role"`
	Bio          string    `gorm:"type:text" json:"bio"`
	Skills       string    `gorm:"type:text" json:"skills"`
	Country      string    `gorm:"type:varchar(100)" json:"country"`
	ProfilePhoto string    `gorm:"type:varchar(255)" json:"profile_photo"`
	LinkedIn     string    `gorm:"column:linkedin;type:varchar(255)" json:"linkedin"`
	Twitter      string    `gorm:"type:varchar(255)" json:"twitter"`
	Website      string    `gorm:"type:varchar(255)" json:"website"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
