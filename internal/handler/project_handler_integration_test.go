package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/talentsafricains/showcase/internal/handler"
	"github.com/talentsafricains/showcase/internal/middleware"
	"github.com/talentsafricains/showcase/internal/models"
	"github.com/talentsafricains/showcase/internal/repository"
	"github.com/talentsafricains/showcase/internal/service"
	"github.com/talentsafricains/showcase/internal/testutil"
	"github.com/talentsafricains/showcase/internal/upload"
	"github.com/talentsafricains/showcase/pkg/logger"
)

// ProjectFlowIntegrationTestSuite exercises the project lifecycle end
// to end through the HTTP surface: registration, creation, browsing,
// likes and comments, and the permission boundaries between users.
type ProjectFlowIntegrationTestSuite struct {
	suite.Suite
	testDB *testutil.TestDatabase
	router *gin.Engine
}

func (s *ProjectFlowIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())

	userRepo := repository.NewUserRepository(s.testDB.DB)
	projectRepo := repository.NewProjectRepository(s.testDB.DB)
	likeRepo := repository.NewLikeRepository(s.testDB.DB)
	commentRepo := repository.NewCommentRepository(s.testDB.DB)

	authService := service.NewAuthService(userRepo, testJWTSecret, 1*time.Hour)
	projectService := service.NewProjectService(projectRepo, likeRepo, commentRepo)
	interactionService := service.NewInteractionService(likeRepo, commentRepo, projectRepo)

	uploads, err := upload.NewSaver(s.T().TempDir(), 5<<20)
	s.Require().NoError(err)

	authHandler := handler.NewAuthHandler(authService, uploads)
	projectHandler := handler.NewProjectHandler(projectService, uploads)
	interactionHandler := handler.NewInteractionHandler(interactionService)

	// Mirrors the production route table for the surfaces under test.
	s.router = gin.New()
	api := s.router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	projects := api.Group("/projects")
	projects.GET("", projectHandler.GetAll)
	projects.GET("/my", middleware.AuthMiddleware(testJWTSecret), projectHandler.GetMine)
	projects.GET("/:id", middleware.OptionalAuthMiddleware(testJWTSecret), projectHandler.GetByID)
	projects.POST("", middleware.AuthMiddleware(testJWTSecret), middleware.RequireRole(models.RoleProjectOwner), projectHandler.Create)
	projects.PUT("/:id", middleware.AuthMiddleware(testJWTSecret), projectHandler.Update)
	projects.DELETE("/:id", middleware.AuthMiddleware(testJWTSecret), projectHandler.Delete)

	interactions := api.Group("/interactions", middleware.AuthMiddleware(testJWTSecret))
	interactions.POST("/like/:projectId", interactionHandler.ToggleLike)
	interactions.POST("/comment/:projectId", interactionHandler.AddComment)
	interactions.DELETE("/comment/:commentId", interactionHandler.DeleteComment)
}

func (s *ProjectFlowIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *ProjectFlowIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

// register creates an account through the API and returns its token.
func (s *ProjectFlowIntegrationTestSuite) register(firstName, email, password string, role models.Role) string {
	body, _ := json.Marshal(map[string]string{
		"first_name": firstName,
		"last_name":  "Test",
		"email":      email,
		"password":   password,
		"role":       string(role),
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response["data"].(map[string]interface{})["token"].(string)
}

// do sends a request with an optional bearer token and decodes the
// envelope.
func (s *ProjectFlowIntegrationTestSuite) do(method, path, token string, body *bytes.Buffer, contentType string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, path, body)
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	return w, response
}

// multipartForm builds a multipart body from plain fields.
func multipartForm(fields map[string]string) (*bytes.Buffer, string) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for key, value := range fields {
		writer.WriteField(key, value)
	}
	writer.Close()
	return buf, writer.FormDataContentType()
}

func (s *ProjectFlowIntegrationTestSuite) createProject(token, title string) uint {
	body, contentType := multipartForm(map[string]string{
		"title":       title,
		"description": "A portable solar energy kit for rural households",
		"category":    string(models.CategoryTechnology),
		"location":    "Dakar",
	})
	w, response := s.do(http.MethodPost, "/api/projects", token, body, contentType)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	project := response["data"].(map[string]interface{})["project"].(map[string]interface{})
	return uint(project["id"].(float64))
}

// TestFullLifecycle walks the whole flow: an owner publishes a
// project, a visitor likes and comments, and comment deletion is
// author-only.
func (s *ProjectFlowIntegrationTestSuite) TestFullLifecycle() {
	ownerToken := s.register("Awa", "awa@example.com", "SecurePass123", models.RoleProjectOwner)
	visitorToken := s.register("Binta", "binta@example.com", "SecurePass123", models.RoleVisitor)

	// Wrong password is rejected before anything else happens.
	loginBody, _ := json.Marshal(map[string]string{
		"email":    "awa@example.com",
		"password": "WrongPass123",
	})
	w, _ := s.do(http.MethodPost, "/api/auth/login", "", bytes.NewBuffer(loginBody), "application/json")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	projectID := s.createProject(ownerToken, "Solar Kit")
	projectPath := fmt.Sprintf("/api/projects/%d", projectID)

	// New projects start unpublished, so the public listing is empty.
	w, response := s.do(http.MethodGet, "/api/projects", "", nil, "")
	s.Require().Equal(http.StatusOK, w.Code)
	assert.Empty(s.T(), response["data"].(map[string]interface{})["projects"])

	// The owner publishes it.
	body, contentType := multipartForm(map[string]string{"status": string(models.StatusPublished)})
	w, _ = s.do(http.MethodPut, projectPath, ownerToken, body, contentType)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w, response = s.do(http.MethodGet, "/api/projects", "", nil, "")
	s.Require().Equal(http.StatusOK, w.Code)
	assert.Len(s.T(), response["data"].(map[string]interface{})["projects"], 1)

	// The visitor likes, then unlikes, then likes again.
	likePath := fmt.Sprintf("/api/interactions/like/%d", projectID)
	w, response = s.do(http.MethodPost, likePath, visitorToken, nil, "")
	s.Require().Equal(http.StatusOK, w.Code)
	data := response["data"].(map[string]interface{})
	assert.Equal(s.T(), true, data["liked"])
	assert.EqualValues(s.T(), 1, data["likes_count"])

	w, response = s.do(http.MethodPost, likePath, visitorToken, nil, "")
	s.Require().Equal(http.StatusOK, w.Code)
	data = response["data"].(map[string]interface{})
	assert.Equal(s.T(), false, data["liked"])
	assert.EqualValues(s.T(), 0, data["likes_count"])

	w, _ = s.do(http.MethodPost, likePath, visitorToken, nil, "")
	s.Require().Equal(http.StatusOK, w.Code)

	// The visitor comments.
	commentBody, _ := json.Marshal(map[string]string{"content": "Great idea"})
	w, response = s.do(http.MethodPost, fmt.Sprintf("/api/interactions/comment/%d", projectID), visitorToken, bytes.NewBuffer(commentBody), "application/json")
	s.Require().Equal(http.StatusCreated, w.Code)
	commentID := response["data"].(map[string]interface{})["comment_id"].(float64)
	assert.NotZero(s.T(), commentID)

	// The project owner cannot delete someone else's comment.
	commentPath := fmt.Sprintf("/api/interactions/comment/%d", int(commentID))
	w, _ = s.do(http.MethodDelete, commentPath, ownerToken, nil, "")
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	// The author can.
	w, _ = s.do(http.MethodDelete, commentPath, visitorToken, nil, "")
	assert.Equal(s.T(), http.StatusOK, w.Code)

	// The detail view reflects the surviving interactions.
	w, response = s.do(http.MethodGet, projectPath, visitorToken, nil, "")
	s.Require().Equal(http.StatusOK, w.Code)
	data = response["data"].(map[string]interface{})
	assert.Equal(s.T(), true, data["has_liked"])
	assert.Empty(s.T(), data["comments"])
}

// TestVisitorCannotCreateProject tests the role gate on creation
func (s *ProjectFlowIntegrationTestSuite) TestVisitorCannotCreateProject() {
	visitorToken := s.register("Binta", "binta@example.com", "SecurePass123", models.RoleVisitor)

	body, contentType := multipartForm(map[string]string{
		"title":       "Solar Kit",
		"description": "A portable solar energy kit",
		"category":    string(models.CategoryTechnology),
	})
	w, response := s.do(http.MethodPost, "/api/projects", visitorToken, body, contentType)

	assert.Equal(s.T(), http.StatusForbidden, w.Code)
	assert.Equal(s.T(), false, response["success"])
}

// TestUpdateByNonOwner tests that a stranger's update is refused
func (s *ProjectFlowIntegrationTestSuite) TestUpdateByNonOwner() {
	ownerToken := s.register("Awa", "awa@example.com", "SecurePass123", models.RoleProjectOwner)
	otherToken := s.register("Moussa", "moussa@example.com", "SecurePass123", models.RoleProjectOwner)

	projectID := s.createProject(ownerToken, "Solar Kit")

	body, contentType := multipartForm(map[string]string{"title": "Hijacked"})
	w, _ := s.do(http.MethodPut, fmt.Sprintf("/api/projects/%d", projectID), otherToken, body, contentType)

	assert.Equal(s.T(), http.StatusForbidden, w.Code)
}

// TestDeleteOwnProject tests owner deletion and the resulting 404
func (s *ProjectFlowIntegrationTestSuite) TestDeleteOwnProject() {
	ownerToken := s.register("Awa", "awa@example.com", "SecurePass123", models.RoleProjectOwner)
	projectPath := fmt.Sprintf("/api/projects/%d", s.createProject(ownerToken, "Solar Kit"))

	w, _ := s.do(http.MethodDelete, projectPath, ownerToken, nil, "")
	assert.Equal(s.T(), http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, projectPath, "", nil, "")
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

// TestAnonymousDetailView tests that the detail view works without a
// token and reports no like state
func (s *ProjectFlowIntegrationTestSuite) TestAnonymousDetailView() {
	ownerToken := s.register("Awa", "awa@example.com", "SecurePass123", models.RoleProjectOwner)
	projectID := s.createProject(ownerToken, "Solar Kit")

	w, response := s.do(http.MethodGet, fmt.Sprintf("/api/projects/%d", projectID), "", nil, "")

	s.Require().Equal(http.StatusOK, w.Code)
	data := response["data"].(map[string]interface{})
	assert.Equal(s.T(), false, data["has_liked"])
}

func TestProjectFlowIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectFlowIntegrationTestSuite))
}
