package service

import (
	"errors"
	"strings"

	"github.com/talentsafricains/showcase/internal/models"
	"github.com/talentsafricains/showcase/internal/repository"
	"github.com/talentsafricains/showcase/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InteractionService struct {
	likeRepo    *repository.LikeRepository
	commentRepo *repository.CommentRepository
	projectRepo *repository.ProjectRepository
}

func NewInteractionService(
	likeRepo *repository.LikeRepository,
	commentRepo *repository.CommentRepository,
	projectRepo *repository.ProjectRepository,
) *InteractionService {
	return &InteractionService{
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		projectRepo: projectRepo,
	}
}

// ToggleLike adds or removes a like depending on current state. A
// duplicate-key conflict from a concurrent toggle is treated as
// "already liked", not an error: the unique index on (user, project)
// is the source of truth.
func (s *InteractionService) ToggleLike(userID, projectID uint) (bool, int64, error) {
	exists, err := s.projectRepo.Exists(projectID)
	if err != nil {
		return false, 0, err
	}
	if !exists {
		return false, 0, ErrProjectNotFound
	}

	hasLiked, err := s.likeRepo.Exists(userID, projectID)
	if err != nil {
		return false, 0, err
	}

	liked := !hasLiked
	if hasLiked {
		if _, err := s.likeRepo.Remove(userID, projectID); err != nil {
			logger.Log.Error("Failed to remove like",
				zap.Uint("user_id", userID),
				zap.Uint("project_id", projectID),
				zap.Error(err),
			)
			return false, 0, err
		}
	} else {
		if err := s.likeRepo.Add(userID, projectID); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost a race with a concurrent like; end state is liked.
				liked = true
			} else {
				logger.Log.Error("Failed to add like",
					zap.Uint("user_id", userID),
					zap.Uint("project_id", projectID),
					zap.Error(err),
				)
				return false, 0, err
			}
		}
	}

	count, err := s.likeRepo.CountByProject(projectID)
	if err != nil {
		return false, 0, err
	}

	logger.Log.Debug("Like toggled",
		zap.Uint("user_id", userID),
		zap.Uint("project_id", projectID),
		zap.Bool("liked", liked),
	)

	return liked, count, nil
}

// GetLikes returns everyone who liked a project plus the count.
func (s *InteractionService) GetLikes(projectID uint) ([]repository.Liker, int64, error) {
	likers, err := s.likeRepo.UsersByProject(projectID)
	if err != nil {
		logger.Log.Error("Failed to fetch likers",
			zap.Uint("project_id", projectID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	count, err := s.likeRepo.CountByProject(projectID)
	if err != nil {
		return nil, 0, err
	}

	return likers, count, nil
}

// AddComment validates, persists, and returns the new comment id plus
// the refreshed thread (newest first).
func (s *InteractionService) AddComment(projectID, userID uint, content string) (uint, []repository.CommentWithAuthor, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return 0, nil, ErrEmptyContent
	}

	exists, err := s.projectRepo.Exists(projectID)
	if err != nil {
		return 0, nil, err
	}
	if !exists {
		return 0, nil, ErrProjectNotFound
	}

	comment := &models.Comment{
		ProjectID: projectID,
		UserID:    userID,
		Content:   content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		logger.Log.Error("Failed to create comment",
			zap.Uint("user_id", userID),
			zap.Uint("project_id", projectID),
			zap.Error(err),
		)
		return 0, nil, err
	}

	comments, err := s.commentRepo.GetByProject(projectID, 0, 0)
	if err != nil {
		return 0, nil, err
	}

	logger.Log.Info("Comment added",
		zap.Uint("comment_id", comment.ID),
		zap.Uint("project_id", projectID),
		zap.Uint("user_id", userID),
	)

	return comment.ID, comments, nil
}

// GetComments returns a paginated thread plus the total count.
func (s *InteractionService) GetComments(projectID uint, limit, offset int) ([]repository.CommentWithAuthor, int64, error) {
	comments, err := s.commentRepo.GetByProject(projectID, limit, offset)
	if err != nil {
		logger.Log.Error("Failed to fetch comments",
			zap.Uint("project_id", projectID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	count, err := s.commentRepo.CountByProject(projectID)
	if err != nil {
		return nil, 0, err
	}

	return comments, count, nil
}

// DeleteComment removes a comment. Only the author may delete it,
// except admins, who may remove any comment.
func (s *InteractionService) DeleteComment(commentID, callerID uint, isAdmin bool) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.UserID != callerID && !isAdmin {
		logger.Log.Warn("Comment delete denied",
			zap.Uint("comment_id", commentID),
			zap.Uint("caller_id", callerID),
		)
		return ErrNotOwner
	}

	deleted, err := s.commentRepo.Delete(commentID)
	if err != nil {
		logger.Log.Error("Failed to delete comment",
			zap.Uint("comment_id", commentID),
			zap.Error(err),
		)
		return err
	}
	if !deleted {
		return ErrCommentNotFound
	}

	logger.Log.Info("Comment deleted",
		zap.Uint("comment_id", commentID),
		zap.Uint("caller_id", callerID),
	)
	return nil
}
