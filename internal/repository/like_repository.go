package repository

import (
	"time"

	"github.com/talentsafricains/showcase/internal/models"
	"gorm.io/gorm"
)

// Liker is a user row joined through the likes table.
type Liker struct {
	ID           uint      `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	ProfilePhoto string    `json:"profile_photo"`
	LikedAt      time.Time `json:"liked_at"`
}

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Add inserts a like. The (user_id, project_id) unique index makes a
// concurrent double-insert surface as gorm.ErrDuplicatedKey, which the
// caller treats as "already liked".
func (r *LikeRepository) Add(userID, projectID uint) error {
	like := models.Like{UserID: userID, ProjectID: projectID}
	return r.db.Create(&like).Error
}

// Remove deletes a like. Returns false when none existed.
func (r *LikeRepository) Remove(userID, projectID uint) (bool, error) {
	result := r.db.Where("user_id = ? AND project_id = ?", userID, projectID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *LikeRepository) Exists(userID, projectID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error
	return count > 0, err
}

func (r *LikeRepository) CountByProject(projectID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

// UsersByProject returns everyone who liked a project, newest first.
func (r *LikeRepository) UsersByProject(projectID uint) ([]Liker, error) {
	var likers []Liker
	err := r.db.Table("likes").
		Select(`users.id, users.first_name, users.last_name, users.profile_photo,
			likes.created_at AS liked_at`).
		Joins("JOIN users ON users.id = likes.user_id").
		Where("likes.project_id = ?", projectID).
		Order("likes.created_at DESC").
		Scan(&likers).Error
	return likers, err
}
