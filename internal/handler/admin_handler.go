package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talentsafricains/showcase/internal/middleware"
	"github.com/talentsafricains/showcase/internal/service"
	"github.com/talentsafricains/showcase/pkg/logger"
	"go.uber.org/zap"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GetStatistics returns the on-demand dashboard numbers.
// GET /api/admin/statistics
func (h *AdminHandler) GetStatistics(c *gin.Context) {
	stats, err := h.adminService.GetStatistics()
	if err != nil {
		logger.Log.Error("Failed to compute statistics", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to compute statistics")
		return
	}

	respondData(c, http.StatusOK, gin.H{"statistics": stats})
}

// GetAllUsers lists every user with activity aggregates.
// GET /api/admin/users
func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	users, err := h.adminService.GetAllUsers()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	respondData(c, http.StatusOK, gin.H{"users": users})
}

// GetAllProjects lists every project, any status, with aggregates.
// GET /api/admin/projects
func (h *AdminHandler) GetAllProjects(c *gin.Context) {
	projects, err := h.adminService.GetAllProjects()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch projects")
		return
	}

	respondData(c, http.StatusOK, gin.H{"projects": projects})
}

// DeleteUser removes an account. The self-deletion guard lives in the
// service.
// DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	adminID := middleware.CurrentUserID(c)
	if err := h.adminService.DeleteUser(id, adminID); err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Log.Info("Admin deleted user",
		zap.Uint("user_id", id),
		zap.Uint("admin_id", adminID),
	)

	respondMessage(c, http.StatusOK, "User deleted", nil)
}

// DeleteProject removes any project.
// DELETE /api/admin/projects/:id
func (h *AdminHandler) DeleteProject(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	adminID := middleware.CurrentUserID(c)
	if err := h.adminService.DeleteProject(id, adminID); err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Project deleted", nil)
}
