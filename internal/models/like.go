package models

import (
	"time"
)

// Like is a pure join entity: one row per (user, project) pair,
// enforced by the composite unique index.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_project" json:"user_id"`
	ProjectID uint      `gorm:"not null;uniqueIndex:idx_user_project" json:"project_id"`
	CreatedAt time.Time `json:"created_at"`

	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}
