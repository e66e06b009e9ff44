package service

import (
	"github.com/talentsafricains/showcase/internal/models"
	"github.com/talentsafricains/showcase/internal/repository"
	"github.com/talentsafricains/showcase/pkg/logger"
	"go.uber.org/zap"
)

type ProjectService struct {
	projectRepo *repository.ProjectRepository
	likeRepo    *repository.LikeRepository
	commentRepo *repository.CommentRepository
}

func NewProjectService(
	projectRepo *repository.ProjectRepository,
	likeRepo *repository.LikeRepository,
	commentRepo *repository.CommentRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
	}
}

type CreateProjectInput struct {
	Title        string
	Description  string
	Category     models.ProjectCategory
	Location     string
	ExternalLink string
	MainImage    string
	Gallery      []string
}

func (s *ProjectService) Create(ownerID uint, input CreateProjectInput) (*repository.ProjectDetail, error) {
	if err := validateProjectInput(input); err != nil {
		logger.Log.Warn("Project validation failed",
			zap.Uint("owner_id", ownerID),
			zap.Error(err),
		)
		return nil, err
	}

	project := &models.Project{
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		Location:     input.Location,
		ExternalLink: input.ExternalLink,
		MainImage:    input.MainImage,
		Status:       models.StatusInProgress,
		OwnerID:      ownerID,
	}
	project.SetGallery(input.Gallery)

	if err := s.projectRepo.Create(project); err != nil {
		logger.Log.Error("Failed to create project",
			zap.Uint("owner_id", ownerID),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Project created",
		zap.Uint("project_id", project.ID),
		zap.Uint("owner_id", ownerID),
	)

	return s.projectRepo.FindByID(project.ID)
}

// List returns published projects matching the filters plus the total
// for count-driven pagination.
func (s *ProjectService) List(filters repository.ProjectFilters) ([]repository.ProjectSummary, int64, error) {
	projects, err := s.projectRepo.GetAll(filters)
	if err != nil {
		logger.Log.Error("Failed to list projects", zap.Error(err))
		return nil, 0, err
	}

	total, err := s.projectRepo.Count(filters)
	if err != nil {
		logger.Log.Error("Failed to count projects", zap.Error(err))
		return nil, 0, err
	}

	return projects, total, nil
}

// ProjectPage is the detail view: the project, the viewer's like
// state, and the comment thread.
type ProjectPage struct {
	Project  *repository.ProjectDetail
	HasLiked bool
	Comments []repository.CommentWithAuthor
}

// GetByID fetches the detail view and bumps the view counter as a
// best-effort side effect. viewerID 0 means anonymous.
func (s *ProjectService) GetByID(id, viewerID uint) (*ProjectPage, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		logger.Log.Error("Failed to fetch project",
			zap.Uint("project_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	if err := s.projectRepo.IncrementViews(id); err != nil {
		// Not correctness-critical, keep serving the page.
		logger.Log.Warn("Failed to increment views",
			zap.Uint("project_id", id),
			zap.Error(err),
		)
	}

	page := &ProjectPage{Project: project}

	if viewerID != 0 {
		hasLiked, err := s.likeRepo.Exists(viewerID, id)
		if err != nil {
			return nil, err
		}
		page.HasLiked = hasLiked
	}

	comments, err := s.commentRepo.GetByProject(id, 0, 0)
	if err != nil {
		return nil, err
	}
	page.Comments = comments

	return page, nil
}

// GetByUserID returns a user's projects, any status.
func (s *ProjectService) GetByUserID(userID uint, limit, offset int) ([]repository.ProjectSummary, error) {
	projects, err := s.projectRepo.FindByUserID(userID, limit, offset)
	if err != nil {
		logger.Log.Error("Failed to fetch user projects",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	return projects, nil
}

// Update applies an ownership-checked partial update and returns the
// refreshed detail row.
func (s *ProjectService) Update(id, callerID uint, patch models.ProjectPatch) (*repository.ProjectDetail, error) {
	ownerID, found, err := s.projectRepo.GetOwnerID(id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrProjectNotFound
	}
	if ownerID != callerID {
		logger.Log.Warn("Project update denied",
			zap.Uint("project_id", id),
			zap.Uint("caller_id", callerID),
		)
		return nil, ErrNotOwner
	}

	if patch.Status != nil && !models.ValidStatus(*patch.Status) {
		return nil, &ValidationError{Fields: []FieldError{
			{Field: "status", Message: "invalid status"},
		}}
	}
	if patch.Category != nil && !models.ValidCategory(*patch.Category) {
		return nil, &ValidationError{Fields: []FieldError{
			{Field: "category", Message: "invalid category"},
		}}
	}

	updated, err := s.projectRepo.Update(id, patch)
	if err != nil {
		logger.Log.Error("Failed to update project",
			zap.Uint("project_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	if !updated {
		return nil, ErrNothingToUpdate
	}

	logger.Log.Info("Project updated",
		zap.Uint("project_id", id),
		zap.Uint("caller_id", callerID),
	)

	return s.projectRepo.FindByID(id)
}

// Delete hard-deletes an owned project; likes and comments go with it
// via the cascade constraints.
func (s *ProjectService) Delete(id, callerID uint) error {
	ownerID, found, err := s.projectRepo.GetOwnerID(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrProjectNotFound
	}
	if ownerID != callerID {
		logger.Log.Warn("Project delete denied",
			zap.Uint("project_id", id),
			zap.Uint("caller_id", callerID),
		)
		return ErrNotOwner
	}

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

	logger.Log.Info("Project deleted",
		zap.Uint("project_id", id),
		zap.Uint("caller_id", callerID),
	)
	return nil
}

func validateProjectInput(input CreateProjectInput) error {
	var fields []FieldError

	if input.Title == "" {
		fields = append(fields, FieldError{Field: "title", Message: "title is required"})
	}
	if input.Description == "" {
		fields = append(fields, FieldError{Field: "description", Message: "description is required"})
	}
	if input.Category == "" {
		fields = append(fields, FieldError{Field: "category", Message: "category is required"})
	} else if !models.ValidCategory(input.Category) {
		fields = append(fields, FieldError{Field: "category", Message: "invalid category"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
