package repository

import (
	"time"

	"github.com/talentsafricains/showcase/internal/models"
	"gorm.io/gorm"
)

type RoleCount struct {
	Role  models.Role `json:"role"`
	Count int64       `json:"count"`
}

type StatusCount struct {
	Status models.ProjectStatus `json:"status"`
	Count  int64                `json:"count"`
}

// ActiveUser ranks a user by total owned projects + likes given +
// comments made.
type ActiveUser struct {
	ID            uint        `json:"id"`
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name"`
	Email         string      `json:"email"`
	Role          models.Role `json:"role"`
	ProjectsCount int64       `json:"projects_count"`
	LikesCount    int64       `json:"likes_count"`
	CommentsCount int64       `json:"comments_count"`
}

// PopularProject ranks a project by likes + comments.
type PopularProject struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	LikesCount    int64  `json:"likes_count"`
	CommentsCount int64  `json:"comments_count"`
}

// DailyActivity is one calendar day in the merged creation-event
// time series.
type DailyActivity struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// UserOverview is an admin listing row with per-user aggregates.
type UserOverview struct {
	ID            uint        `json:"id"`
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name"`
	Email         string      `json:"email"`
	Role          models.Role `json:"role"`
	Bio           string      `json:"bio"`
	CreatedAt     time.Time   `json:"created_at"`
	ProjectsCount int64       `json:"projects_count"`
	LikesGiven    int64       `json:"likes_given"`
	CommentsCount int64       `json:"comments_count"`
}

// ProjectOverview is an admin listing row with owner and aggregates.
type ProjectOverview struct {
	ID            uint                 `json:"id"`
	Title         string               `json:"title"`
	Category      string               `json:"category"`
	Status        models.ProjectStatus `json:"status"`
	ViewCount     uint                 `json:"view_count"`
	CreatedAt     time.Time            `json:"created_at"`
	FirstName     string               `json:"first_name"`
	LastName      string               `json:"last_name"`
	OwnerEmail    string               `json:"owner_email"`
	LikesCount    int64                `json:"likes_count"`
	CommentsCount int64                `json:"comments_count"`
}

// StatsRepository serves the read-only admin reporting queries. All
// numbers are computed on demand; nothing is cached or materialized.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) TotalUsers() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *StatsRepository) UsersByRole() ([]RoleCount, error) {
	var rows []RoleCount
	err := r.db.Model(&models.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error
	return rows, err
}

func (r *StatsRepository) TotalProjects() (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Count(&count).Error
	return count, err
}

func (r *StatsRepository) ProjectsByStatus() ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.Model(&models.Project{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *StatsRepository) TotalLikes() (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Count(&count).Error
	return count, err
}

func (r *StatsRepository) TotalComments() (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Count(&count).Error
	return count, err
}

// MostActiveUsers returns the top 10 users by combined activity,
// computed in a single join-aggregate query.
func (r *StatsRepository) MostActiveUsers() ([]ActiveUser, error) {
	var rows []ActiveUser
	err := r.db.Raw(`
		SELECT
			u.id,
			u.first_name,
			u.last_name,
			u.email,
			u.role,
			COUNT(DISTINCT p.id) AS projects_count,
			COUNT(DISTINCT l.id) AS likes_count,
			COUNT(DISTINCT c.id) AS comments_count
		FROM users u
		LEFT JOIN projects p ON u.id = p.owner_id
		LEFT JOIN likes l ON u.id = l.user_id
		LEFT JOIN comments c ON u.id = c.user_id
		GROUP BY u.id, u.first_name, u.last_name, u.email, u.role
		ORDER BY (COUNT(DISTINCT p.id) + COUNT(DISTINCT l.id) + COUNT(DISTINCT c.id)) DESC
		LIMIT 10`).Scan(&rows).Error
	return rows, err
}

// MostPopularProjects returns the top 10 projects by likes + comments.
func (r *StatsRepository) MostPopularProjects() ([]PopularProject, error) {
	var rows []PopularProject
	err := r.db.Raw(`
		SELECT
			p.id,
			p.title,
			u.first_name,
			u.last_name,
			COUNT(DISTINCT l.id) AS likes_count,
			COUNT(DISTINCT c.id) AS comments_count
		FROM projects p
		LEFT JOIN users u ON p.owner_id = u.id
		LEFT JOIN likes l ON p.id = l.project_id
		LEFT JOIN comments c ON p.id = c.project_id
		GROUP BY p.id, p.title, u.first_name, u.last_name
		ORDER BY (COUNT(DISTINCT l.id) + COUNT(DISTINCT c.id)) DESC
		LIMIT 10`).Scan(&rows).Error
	return rows, err
}

// RecentActivity merges creation timestamps from all four tables into
// one per-day histogram since the cutoff.
func (r *StatsRepository) RecentActivity(since time.Time) ([]DailyActivity, error) {
	var rows []DailyActivity
	err := r.db.Raw(`
		SELECT DATE(created_at) AS date, COUNT(*) AS count
		FROM (
			SELECT created_at FROM users WHERE created_at >= ?
			UNION ALL
			SELECT created_at FROM projects WHERE created_at >= ?
			UNION ALL
			SELECT created_at FROM likes WHERE created_at >= ?
			UNION ALL
			SELECT created_at FROM comments WHERE created_at >= ?
		) activity
		GROUP BY DATE(created_at)
		ORDER BY date DESC`,
		since, since, since, since).Scan(&rows).Error
	return rows, err
}

// AllUsers returns every user with per-row activity aggregates for the
// admin dashboard.
func (r *StatsRepository) AllUsers() ([]UserOverview, error) {
	var rows []UserOverview
	err := r.db.Raw(`
		SELECT
			u.id,
			u.first_name,
			u.last_name,
			u.email,
			u.role,
			u.bio,
			u.created_at,
			COUNT(DISTINCT p.id) AS projects_count,
			COUNT(DISTINCT l.id) AS likes_given,
			COUNT(DISTINCT c.id) AS comments_count
		FROM users u
		LEFT JOIN projects p ON u.id = p.owner_id
		LEFT JOIN likes l ON u.id = l.user_id
		LEFT JOIN comments c ON u.id = c.user_id
		GROUP BY u.id, u.first_name, u.last_name, u.email, u.role, u.bio, u.created_at
		ORDER BY u.created_at DESC`).Scan(&rows).Error
	return rows, err
}

// AllProjects returns every project, any status, with owner fields and
// aggregates for the admin dashboard.
func (r *StatsRepository) AllProjects() ([]ProjectOverview, error) {
	var rows []ProjectOverview
	err := r.db.Raw(`
		SELECT
			p.id,
			p.title,
			p.category,
			p.status,
			p.view_count,
			p.created_at,
			u.first_name,
			u.last_name,
			u.email AS owner_email,
			COUNT(DISTINCT l.id) AS likes_count,
			COUNT(DISTINCT c.id) AS comments_count
		FROM projects p
		LEFT JOIN users u ON p.owner_id = u.id
		LEFT JOIN likes l ON p.id = l.project_id
		LEFT JOIN comments c ON p.id = c.project_id
		GROUP BY p.id, p.title, p.category, p.status, p.view_count, p.created_at,
			u.first_name, u.last_name, u.email
		ORDER BY p.created_at DESC`).Scan(&rows).Error
	return rows, err
}
