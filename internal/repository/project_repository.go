package repository

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/talentsafricains/showcase/internal/models"
	"gorm.io/gorm"
)

// ProjectFilters are independently combinable listing predicates.
type ProjectFilters struct {
	Category string
	Location string
	Search   string
	Sort     string // recent (default), popular, oldest
	Limit    int
	Offset   int
}

// ProjectSummary is a listing row enriched with the owner's display
// fields and live aggregate counts.
type ProjectSummary struct {
	ID            uint                   `json:"id"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Category      models.ProjectCategory `json:"category"`
	Location      string                 `json:"location"`
	ExternalLink  string                 `json:"external_link"`
	MainImage     string                 `json:"main_image"`
	GalleryImages string                 `json:"-"`
	Status        models.ProjectStatus   `json:"status"`
	ViewCount     uint                   `json:"view_count"`
	OwnerID       uint                   `json:"owner_id"`
	CreatedAt     time.Time              `json:"created_at"`
	FirstName     string                 `json:"first_name"`
	LastName      string                 `json:"last_name"`
	AuthorPhoto   string                 `json:"author_photo"`
	LikesCount    int64                  `json:"likes_count"`
	CommentsCount int64                  `json:"comments_count"`
	Gallery       []string               `json:"gallery_images" gorm:"-"`
}

// ProjectDetail is a single project enriched with the owner's contact
// fields for the detail page.
type ProjectDetail struct {
	ProjectSummary
	OwnerEmail string `json:"owner_email"`
	OwnerBio   string `json:"owner_bio"`
	LinkedIn   string `gorm:"column:linkedin" json:"linkedin"`
	Twitter    string `json:"twitter"`
	Website    string `json:"website"`
}

func decodeGallery(encoded string) []string {
	if encoded == "" {
		return []string{}
	}
	var images []string
	if err := json.Unmarshal([]byte(encoded), &images); err != nil {
		return []string{}
	}
	return images
}

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// applyFilters builds the shared predicate for GetAll and Count.
// Only published projects are ever visible through these two.
func (r *ProjectRepository) applyFilters(query *gorm.DB, filters ProjectFilters) *gorm.DB {
	query = query.Where("projects.status = ?", models.StatusPublished)

	if filters.Category != "" {
		query = query.Where("projects.category = ?", filters.Category)
	}
	if filters.Location != "" {
		query = query.Where("projects.location LIKE ?", "%"+filters.Location+"%")
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("projects.title LIKE ? OR projects.description LIKE ?", pattern, pattern)
	}
	return query
}

// GetAll returns published projects matching the filters, enriched
// with owner display fields and aggregate counts.
func (r *ProjectRepository) GetAll(filters ProjectFilters) ([]ProjectSummary, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = 12
	}
	offset := filters.Offset
	if offset < 0 {
		offset = 0
	}

	query := r.db.Table("projects").
		Select(`projects.id, projects.title, projects.description, projects.category,
			projects.location, projects.external_link, projects.main_image, projects.gallery_images,
			projects.status, projects.view_count, projects.owner_id, projects.created_at,
			users.first_name, users.last_name, users.profile_photo AS author_photo,
			COUNT(DISTINCT likes.id) AS likes_count,
			COUNT(DISTINCT comments.id) AS comments_count`).
		Joins("LEFT JOIN users ON users.id = projects.owner_id").
		Joins("LEFT JOIN likes ON likes.project_id = projects.id").
		Joins("LEFT JOIN comments ON comments.project_id = projects.id")

	query = r.applyFilters(query, filters).
		Group("projects.id, users.first_name, users.last_name, users.profile_photo")

	switch filters.Sort {
	case "popular":
		query = query.Order("likes_count DESC, projects.view_count DESC")
	case "oldest":
		query = query.Order("projects.created_at ASC")
	default:
		query = query.Order("projects.created_at DESC")
	}

	var rows []ProjectSummary
	err := query.Limit(limit).Offset(offset).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		rows[i].Gallery = decodeGallery(rows[i].GalleryImages)
	}
	return rows, nil
}

// Count mirrors GetAll's predicate, minus sort and pagination.
func (r *ProjectRepository) Count(filters ProjectFilters) (int64, error) {
	var total int64
	query := r.db.Table("projects")
	err := r.applyFilters(query, filters).Count(&total).Error
	return total, err
}

// FindByID returns one project regardless of status, enriched with the
// owner's contact fields and live counts. Returns nil when absent.
func (r *ProjectRepository) FindByID(id uint) (*ProjectDetail, error) {
	var row ProjectDetail
	err := r.db.Table("projects").
		Select(`projects.id, projects.title, projects.description, projects.category,
			projects.location, projects.external_link, projects.main_image, projects.gallery_images,
			projects.status, projects.view_count, projects.owner_id, projects.created_at,
			users.first_name, users.last_name, users.profile_photo AS author_photo,
			users.email AS owner_email, users.bio AS owner_bio,
			users.linkedin, users.twitter, users.website,
			(SELECT COUNT(*) FROM likes WHERE likes.project_id = projects.id) AS likes_count,
			(SELECT COUNT(*) FROM comments WHERE comments.project_id = projects.id) AS comments_count`).
		Joins("LEFT JOIN users ON users.id = projects.owner_id").
		Where("projects.id = ?", id).
		Take(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	row.Gallery = decodeGallery(row.GalleryImages)
	return &row, nil
}

// FindByUserID returns a user's projects regardless of status, for
// profile display.
func (r *ProjectRepository) FindByUserID(userID uint, limit, offset int) ([]ProjectSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var rows []ProjectSummary
	err := r.db.Table("projects").
		Select(`projects.id, projects.title, projects.description, projects.category,
			projects.location, projects.external_link, projects.main_image, projects.gallery_images,
			projects.status, projects.view_count, projects.owner_id, projects.created_at,
			(SELECT COUNT(*) FROM likes WHERE likes.project_id = projects.id) AS likes_count,
			(SELECT COUNT(*) FROM comments WHERE comments.project_id = projects.id) AS comments_count`).
		Where("projects.owner_id = ?", userID).
		Order("projects.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		rows[i].Gallery = decodeGallery(rows[i].GalleryImages)
	}
	return rows, nil
}

// GetOwnerID returns the owning user's id, or false when the project
// does not exist.
func (r *ProjectRepository) GetOwnerID(id uint) (uint, bool, error) {
	var project models.Project
	err := r.db.Select("id", "owner_id").Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return project.OwnerID, true, nil
}

// Exists reports whether a project row with the given id is present.
func (r *ProjectRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Update applies a partial update. Returns false when the patch is
// empty; id and owner can never change through this path.
func (r *ProjectRepository) Update(id uint, patch models.ProjectPatch) (bool, error) {
	fields := patch.Fields()
	if len(fields) == 0 {
		return false, nil
	}

	result := r.db.Model(&models.Project{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IncrementViews bumps the view counter with a single atomic UPDATE.
// Best-effort: exact view counts are not correctness-critical.
func (r *ProjectRepository) IncrementViews(id uint) error {
	return r.db.Model(&models.Project{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// Delete hard-deletes a project. Returns false when no row matched.
func (r *ProjectRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.Project{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
