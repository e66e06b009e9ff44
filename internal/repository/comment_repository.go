package repository

import (
	"errors"
	"time"

	"github.com/talentsafricains/showcase/internal/models"
	"gorm.io/gorm"
)

// CommentWithAuthor is a comment row enriched with the author's
// display fields.
type CommentWithAuthor struct {
	ID           uint      `json:"id"`
	ProjectID    uint      `json:"project_id"`
	UserID       uint      `json:"user_id"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	ProfilePhoto string    `json:"profile_photo"`
}

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *CommentRepository) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Where("id = ?", id).First(&comment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &comment, nil
}

// GetByProject returns a project's comments newest first.
func (r *CommentRepository) GetByProject(projectID uint, limit, offset int) ([]CommentWithAuthor, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var comments []CommentWithAuthor
	err := r.db.Table("comments").
		Select(`comments.id, comments.project_id, comments.user_id, comments.content,
			comments.created_at, comments.updated_at,
			users.first_name, users.last_name, users.profile_photo`).
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.project_id = ?", projectID).
		Order("comments.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&comments).Error
	return comments, err
}

func (r *CommentRepository) CountByProject(projectID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

// Delete hard-deletes a comment. Returns false when no row matched.
func (r *CommentRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.Comment{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
