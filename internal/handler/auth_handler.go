package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talentsafricains/showcase/internal/middleware"
	"github.com/talentsafricains/showcase/internal/models"
	"github.com/talentsafricains/showcase/internal/service"
	"github.com/talentsafricains/showcase/internal/upload"
	"github.com/talentsafricains/showcase/pkg/logger"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	uploads     *upload.Saver
}

func NewAuthHandler(authService *service.AuthService, uploads *upload.Saver) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		uploads:     uploads,
	}
}

type RegisterRequest struct {
	FirstName string      `json:"first_name" binding:"required"`
	LastName  string      `json:"last_name" binding:"required"`
	Email     string      `json:"email" binding:"required"`
	Password  string      `json:"password" binding:"required"`
	Role      models.Role `json:"role"`
	Bio       string      `json:"bio"`
	Skills    string      `json:"skills"`
	Country   string      `json:"country"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account and returns a token plus the public
// user projection.
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Registration request parsing failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.authService.Register(service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		Bio:       req.Bio,
		Skills:    req.Skills,
		Country:   req.Country,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, "Registration successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// Login authenticates and returns a token.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Login request parsing failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// GetProfile returns the caller's own profile.
// GET /api/auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.authService.GetProfile(middleware.CurrentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"user": user})
}

// UpdateProfile applies a partial profile update from a multipart
// form, with an optional photo. A field absent from the form stays
// untouched; a field submitted empty is cleared (for the optional
// free-text and link fields).
// PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var patch models.UserPatch

	// Required-nonempty fields: an empty submission means "no change".
	if v, ok := c.GetPostForm("first_name"); ok && v != "" {
		patch.FirstName = &v
	}
	if v, ok := c.GetPostForm("last_name"); ok && v != "" {
		patch.LastName = &v
	}
	if v, ok := c.GetPostForm("country"); ok && v != "" {
		patch.Country = &v
	}

	// Optional fields: an explicit empty submission clears the value.
	if v, ok := c.GetPostForm("bio"); ok {
		patch.Bio = &v
	}
	if v, ok := c.GetPostForm("skills"); ok {
		patch.Skills = &v
	}
	if v, ok := c.GetPostForm("linkedin"); ok {
		patch.LinkedIn = &v
	}
	if v, ok := c.GetPostForm("twitter"); ok {
		patch.Twitter = &v
	}
	if v, ok := c.GetPostForm("website"); ok {
		patch.Website = &v
	}

	if file, err := c.FormFile("profile_photo"); err == nil {
		filename, err := h.uploads.Save(c, file)
		if err != nil {
			respondUploadError(c, err)
			return
		}
		patch.ProfilePhoto = &filename
	}

	user, err := h.authService.UpdateProfile(middleware.CurrentUserID(c), patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Profile updated", gin.H{"user": user})
}

// GetPublicProfile returns any user's profile without authentication.
// GET /api/auth/user/:id
func (h *AuthHandler) GetPublicProfile(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	user, err := h.authService.GetProfile(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"user": user})
}
