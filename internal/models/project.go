package models

import (
	"encoding/json"
	"time"
)

type ProjectStatus string

const (
	StatusInProgress ProjectStatus = "in_progress"
	StatusPublished  ProjectStatus = "published"
)

type ProjectCategory string

const (
	CategoryTechnology       ProjectCategory = "technology"
	CategoryArt              ProjectCategory = "art"
	CategoryEntrepreneurship ProjectCategory = "entrepreneurship"
	CategoryInnovation       ProjectCategory = "innovation"
	CategoryEducation        ProjectCategory = "education"
	CategoryHealth           ProjectCategory = "health"
	CategoryAgriculture      ProjectCategory = "agriculture"
	CategoryOther            ProjectCategory = "other"
)

func ValidCategory(c ProjectCategory) bool {
	switch c {
	case CategoryTechnology, CategoryArt, CategoryEntrepreneurship,
		CategoryInnovation, CategoryEducation, CategoryHealth,
		CategoryAgriculture, CategoryOther:
		return true
	}
	return false
}

func ValidStatus(s ProjectStatus) bool {
	return s == StatusInProgress || s == StatusPublished
}

type Project struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Title         string          `gorm:"type:varchar(255);not null" json:"title"`
	Description   string          `gorm:"type:text;not null" json:"description"`
	Category      ProjectCategory `gorm:"type:varchar(50);not null;index" json:"category"`
	Location      string          `gorm:"type:varchar(255)" json:"location"`
	ExternalLink  string          `gorm:"type:varchar(255)" json:"external_link"`
	MainImage     string          `gorm:"type:varchar(255)" json:"main_image"`
	GalleryImages string          `gorm:"type:text" json:"-"` // JSON-encoded filename list
	Status        ProjectStatus   `gorm:"type:varchar(20);not null;default:'in_progress';index" json:"status"`
	ViewCount     uint            `gorm:"not null;default:0" json:"view_count"`
	OwnerID       uint            `gorm:"not null;index" json:"owner_id"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Owner User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}

// Gallery decodes the stored gallery filename list. An empty column
// yields an empty slice, never nil decoding errors.
func (p *Project) Gallery() []string {
	if p.GalleryImages == "" {
		return []string{}
	}
	var images []string
	if err := json.Unmarshal([]byte(p.GalleryImages), &images); err != nil {
		return []string{}
	}
	return images
}

// SetGallery stores the ordered filename list as JSON.
func (p *Project) SetGallery(images []string) {
	if len(images) == 0 {
		p.GalleryImages = ""
		return
	}
	encoded, _ := json.Marshal(images)
	p.GalleryImages = string(encoded)
}

// MarshalJSON exposes the gallery as a decoded array.
func (p Project) MarshalJSON() ([]byte, error) {
	type alias Project
	return json.Marshal(struct {
		alias
		GalleryImages []string `json:"gallery_images"`
	}{
		alias:         alias(p),
		GalleryImages: p.Gallery(),
	})
}
