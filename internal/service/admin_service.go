package service

import (
	"time"

	"github.com/talentsafricains/showcase/internal/repository"
	"github.com/talentsafricains/showcase/pkg/logger"
	"go.uber.org/zap"
)

type AdminService struct {
	statsRepo   *repository.StatsRepository
	userRepo    *repository.UserRepository
	projectRepo *repository.ProjectRepository
}

func NewAdminService(
	statsRepo *repository.StatsRepository,
	userRepo *repository.UserRepository,
	projectRepo *repository.ProjectRepository,
) *AdminService {
	return &AdminService{
		statsRepo:   statsRepo,
		userRepo:    userRepo,
		projectRepo: projectRepo,
	}
}

// Statistics is the on-demand dashboard payload. Nothing here is
// cached; every call recomputes from live rows.
type Statistics struct {
	Users struct {
		Total  int64                  `json:"total"`
		ByRole []repository.RoleCount `json:"by_role"`
	} `json:"users"`
	Projects struct {
		Total    int64                    `json:"total"`
		ByStatus []repository.StatusCount `json:"by_status"`
	} `json:"projects"`
	Interactions struct {
		Likes    int64 `json:"likes"`
		Comments int64 `json:"comments"`
	} `json:"interactions"`
	ActiveUsers     []repository.ActiveUser     `json:"active_users"`
	PopularProjects []repository.PopularProject `json:"popular_projects"`
	RecentActivity  []repository.DailyActivity  `json:"recent_activity"`
}

func (s *AdminService) GetStatistics() (*Statistics, error) {
	stats := &Statistics{}
	var err error

	if stats.Users.Total, err = s.statsRepo.TotalUsers(); err != nil {
		return nil, err
	}
	if stats.Users.ByRole, err = s.statsRepo.UsersByRole(); err != nil {
		return nil, err
	}
	if stats.Projects.Total, err = s.statsRepo.TotalProjects(); err != nil {
		return nil, err
	}
	if stats.Projects.ByStatus, err = s.statsRepo.ProjectsByStatus(); err != nil {
		return nil, err
	}
	if stats.Interactions.Likes, err = s.statsRepo.TotalLikes(); err != nil {
		return nil, err
	}
	if stats.Interactions.Comments, err = s.statsRepo.TotalComments(); err != nil {
		return nil, err
	}
	if stats.ActiveUsers, err = s.statsRepo.MostActiveUsers(); err != nil {
		return nil, err
	}
	if stats.PopularProjects, err = s.statsRepo.MostPopularProjects(); err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -30)
	if stats.RecentActivity, err = s.statsRepo.RecentActivity(since); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *AdminService) GetAllUsers() ([]repository.UserOverview, error) {
	users, err := s.statsRepo.AllUsers()
	if err != nil {
		logger.Log.Error("Failed to fetch users overview", zap.Error(err))
		return nil, err
	}
	return users, nil
}

func (s *AdminService) GetAllProjects() ([]repository.ProjectOverview, error) {
	projects, err := s.statsRepo.AllProjects()
	if err != nil {
		logger.Log.Error("Failed to fetch projects overview", zap.Error(err))
		return nil, err
	}
	return projects, nil
}

// DeleteUser removes an account. Admins cannot delete themselves
// through this path.
func (s *AdminService) DeleteUser(targetID, adminID uint) error {
	if targetID == adminID {
		return ErrSelfDeletion
	}

	deleted, err := s.userRepo.Delete(targetID)
	if err != nil {
		logger.Log.Error("Failed to delete user",
			zap.Uint("user_id", targetID),
			zap.Error(err),
		)
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}

	logger.Log.Info("User deleted by admin",
		zap.Uint("user_id", targetID),
		zap.Uint("admin_id", adminID),
	)
	return nil
}

func (s *AdminService) DeleteProject(id, adminID uint) error {
	deleted, err := s.projectRepo.Delete(id)
	if err != nil {
		logger.Log.Error("Failed to delete project",
			zap.Uint("project_id", id),
			zap.Error(err),
		)
		return err
	}
	if !deleted {
		return ErrProjectNotFound
	}

	logger.Log.Info("Project deleted by admin",
		zap.Uint("project_id", id),
		zap.Uint("admin_id", adminID),
	)
	return nil
}
