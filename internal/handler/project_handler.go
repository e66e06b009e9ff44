package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talentsafricains/showcase/internal/middleware"
	"github.com/talentsafricains/showcase/internal/models"
	"github.com/talentsafricains/showcase/internal/repository"
	"github.com/talentsafricains/showcase/internal/service"
	"github.com/talentsafricains/showcase/internal/upload"
	"github.com/talentsafricains/showcase/pkg/logger"
	"go.uber.org/zap"
)

const maxGalleryImages = 5

type ProjectHandler struct {
	projectService *service.ProjectService
	uploads        *upload.Saver
}

func NewProjectHandler(projectService *service.ProjectService, uploads *upload.Saver) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		uploads:        uploads,
	}
}

// Create inserts a project from a multipart form with an optional
// main image and up to five gallery images.
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	input := service.CreateProjectInput{
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		Category:     models.ProjectCategory(c.PostForm("category")),
		Location:     c.PostForm("location"),
		ExternalLink: c.PostForm("external_link"),
	}

	if file, err := c.FormFile("main_image"); err == nil {
		filename, err := h.uploads.Save(c, file)
		if err != nil {
			respondUploadError(c, err)
			return
		}
		input.MainImage = filename
	}

	if form, err := c.MultipartForm(); err == nil {
		if files := form.File["gallery_images"]; len(files) > 0 {
			names, err := h.uploads.SaveAll(c, files, maxGalleryImages)
			if err != nil {
				respondUploadError(c, err)
				return
			}
			input.Gallery = names
		}
	}

	ownerID := middleware.CurrentUserID(c)
	project, err := h.projectService.Create(ownerID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Log.Info("Project created via API",
		zap.Uint("project_id", project.ID),
		zap.Uint("owner_id", ownerID),
	)

	respondMessage(c, http.StatusCreated, "Project created", gin.H{"project": project})
}

// GetAll lists published projects with filters, sort and pagination.
// GET /api/projects
func (h *ProjectHandler) GetAll(c *gin.Context) {
	filters := repository.ProjectFilters{
		Category: c.Query("category"),
		Location: c.Query("location"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		Limit:    queryInt(c, "limit", 12),
		Offset:   queryInt(c, "offset", 0),
	}

	projects, total, err := h.projectService.List(filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"projects": projects,
		"pagination": gin.H{
			"total":    total,
			"limit":    filters.Limit,
			"offset":   filters.Offset,
			"has_more": int64(filters.Offset+filters.Limit) < total,
		},
	})
}

// GetByID returns the detail view and bumps the view counter. When a
// valid token accompanies the request the response carries the
// viewer's like state.
// GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	page, err := h.projectService.GetByID(id, middleware.CurrentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"project":   page.Project,
		"has_liked": page.HasLiked,
		"comments":  page.Comments,
	})
}

// GetMine returns the caller's own projects, any status.
// GET /api/projects/my
func (h *ProjectHandler) GetMine(c *gin.Context) {
	projects, err := h.projectService.GetByUserID(
		middleware.CurrentUserID(c),
		queryInt(c, "limit", 20),
		queryInt(c, "offset", 0),
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"projects": projects})
}

// GetByUser returns a user's projects for profile display.
// GET /api/projects/user/:userId
func (h *ProjectHandler) GetByUser(c *gin.Context) {
	userID, ok := paramUint(c, "userId")
	if !ok {
		return
	}

	projects, err := h.projectService.GetByUserID(
		userID,
		queryInt(c, "limit", 20),
		queryInt(c, "offset", 0),
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"projects": projects})
}

// Update applies an ownership-checked partial update from a multipart
// form, optionally replacing images.
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var patch models.ProjectPatch

	if v, ok := c.GetPostForm("title"); ok && v != "" {
		patch.Title = &v
	}
	if v, ok := c.GetPostForm("description"); ok && v != "" {
		patch.Description = &v
	}
	if v, ok := c.GetPostForm("category"); ok && v != "" {
		category := models.ProjectCategory(v)
		patch.Category = &category
	}
	if v, ok := c.GetPostForm("status"); ok && v != "" {
		status := models.ProjectStatus(v)
		patch.Status = &status
	}

	// Optional fields: explicit empty clears.
	if v, ok := c.GetPostForm("location"); ok {
		patch.Location = &v
	}
	if v, ok := c.GetPostForm("external_link"); ok {
		patch.ExternalLink = &v
	}

	if file, err := c.FormFile("main_image"); err == nil {
		filename, err := h.uploads.Save(c, file)
		if err != nil {
			respondUploadError(c, err)
			return
		}
		patch.MainImage = &filename
	}

	if form, err := c.MultipartForm(); err == nil {
		if files := form.File["gallery_images"]; len(files) > 0 {
			names, err := h.uploads.SaveAll(c, files, maxGalleryImages)
			if err != nil {
				respondUploadError(c, err)
				return
			}
			var gallery models.Project
			gallery.SetGallery(names)
			patch.GalleryImages = &gallery.GalleryImages
		}
	}

	project, err := h.projectService.Update(id, middleware.CurrentUserID(c), patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Project updated", gin.H{"project": project})
}

// Delete hard-deletes an owned project.
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.Delete(id, middleware.CurrentUserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Project deleted", nil)
}
