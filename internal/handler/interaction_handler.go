package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talentsafricains/showcase/internal/middleware"
	"github.com/talentsafricains/showcase/internal/models"
	"github.com/talentsafricains/showcase/internal/service"
)

type InteractionHandler struct {
	interactionService *service.InteractionService
}

func NewInteractionHandler(interactionService *service.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService}
}

type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ToggleLike adds or removes the caller's like on a project.
// POST /api/interactions/like/:projectId
func (h *InteractionHandler) ToggleLike(c *gin.Context) {
	projectID, ok := paramUint(c, "projectId")
	if !ok {
		return
	}

	liked, count, err := h.interactionService.ToggleLike(middleware.CurrentUserID(c), projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "Like removed"
	if liked {
		message = "Project liked"
	}

	respondMessage(c, http.StatusOK, message, gin.H{
		"liked":       liked,
		"likes_count": count,
	})
}

// GetLikes lists everyone who liked a project plus the count.
// GET /api/interactions/likes/:projectId
func (h *InteractionHandler) GetLikes(c *gin.Context) {
	projectID, ok := paramUint(c, "projectId")
	if !ok {
		return
	}

	likers, count, err := h.interactionService.GetLikes(projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"users": likers,
		"count": count,
	})
}

// AddComment appends a comment and returns the refreshed thread.
// POST /api/interactions/comment/:projectId
func (h *InteractionHandler) AddComment(c *gin.Context) {
	projectID, ok := paramUint(c, "projectId")
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Comment content is required")
		return
	}

	commentID, comments, err := h.interactionService.AddComment(
		projectID,
		middleware.CurrentUserID(c),
		req.Content,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, "Comment added", gin.H{
		"comment_id": commentID,
		"comments":   comments,
	})
}

// GetComments returns a paginated thread plus its total count.
// GET /api/interactions/comments/:projectId
func (h *InteractionHandler) GetComments(c *gin.Context) {
	projectID, ok := paramUint(c, "projectId")
	if !ok {
		return
	}

	comments, count, err := h.interactionService.GetComments(
		projectID,
		queryInt(c, "limit", 50),
		queryInt(c, "offset", 0),
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"comments": comments,
		"count":    count,
	})
}

// DeleteComment removes a comment: author-only, with an admin
// override.
// DELETE /api/interactions/comment/:commentId
func (h *InteractionHandler) DeleteComment(c *gin.Context) {
	commentID, ok := paramUint(c, "commentId")
	if !ok {
		return
	}

	isAdmin := middleware.CurrentUserRole(c) == models.RoleAdmin
	err := h.interactionService.DeleteComment(commentID, middleware.CurrentUserID(c), isAdmin)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Comment deleted", nil)
}
