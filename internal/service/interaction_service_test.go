package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentsafricains/showcase/internal/models"
	"github.com/talentsafricains/showcase/internal/repository"
	"github.com/talentsafricains/showcase/internal/service"
	"github.com/talentsafricains/showcase/internal/testutil"
)

type interactionFixture struct {
	testDB  *testutil.TestDatabase
	svc     *service.InteractionService
	owner   *models.User
	visitor *models.User
	project *models.Project
}

func setupInteractions(t *testing.T) *interactionFixture {
	testDB := testutil.SetupTestDatabase(t)
	testutil.CleanDatabase(t, testDB.DB)

	likeRepo := repository.NewLikeRepository(testDB.DB)
	commentRepo := repository.NewCommentRepository(testDB.DB)
	projectRepo := repository.NewProjectRepository(testDB.DB)

	owner, err := testutil.DefaultProjectOwner()
	require.NoError(t, err)
	require.NoError(t, testDB.DB.Create(owner).Error)

	visitor, err := testutil.DefaultVisitor()
	require.NoError(t, err)
	require.NoError(t, testDB.DB.Create(visitor).Error)

	project := testutil.CreateTestProject(owner.ID, "Solar Kit")
	require.NoError(t, testDB.DB.Create(project).Error)

	return &interactionFixture{
		testDB:  testDB,
		svc:     service.NewInteractionService(likeRepo, commentRepo, projectRepo),
		owner:   owner,
		visitor: visitor,
		project: project,
	}
}

func TestToggleLike_Alternation(t *testing.T) {
	f := setupInteractions(t)
	defer f.testDB.Teardown(t)

	liked, count, err := f.svc.ToggleLike(f.visitor.ID, f.project.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.EqualValues(t, 1, count)

	// Toggling twice returns to the original state.
	liked, count, err = f.svc.ToggleLike(f.visitor.ID, f.project.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.EqualValues(t, 0, count)

	var likes int64
	f.testDB.DB.Model(&models.Like{}).Where("project_id = ?", f.project.ID).Count(&likes)
	assert.EqualValues(t, 0, likes)
}

func TestToggleLike_ProjectNotFound(t *testing.T) {
	f := setupInteractions(t)
	defer f.testDB.Teardown(t)

	_, _, err := f.svc.ToggleLike(f.visitor.ID, 999)

	assert.ErrorIs(t, err, service.ErrProjectNotFound)
}

func TestToggleLike_CountMatchesRows(t *testing.T) {
	f := setupInteractions(t)
	defer f.testDB.Teardown(t)

	_, _, err := f.svc.ToggleLike(f.visitor.ID, f.project.ID)
	require.NoError(t, err)
	_, count, err := f.svc.ToggleLike(f.owner.ID, f.project.ID)
	require.NoError(t, err)

	// The returned count is always the live row count, never cached.
	var rows int64
	f.testDB.DB.Model(&models.Like{}).Where("project_id = ?", f.project.ID).Count(&rows)
	assert.Equal(t, rows, count)
}

func TestGetLikes(t *testing.T) {
	f := setupInteractions(t)
	defer f.testDB.Teardown(t)

	_, _, err := f.svc.ToggleLike(f.visitor.ID, f.project.ID)
	require.NoError(t, err)

	likers, count, err := f.svc.GetLikes(f.project.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 1, count)
	require.Len(t, likers, 1)
	assert.Equal(t, f.visitor.ID, likers[0].ID)
	assert.Equal(t, f.visitor.FirstName, likers[0].FirstName)
}

func TestAddComment_SuccessAndThread(t *testing.T) {
	f := setupInteractions(t)
	defer f.testDB.Teardown(t)

	commentID, comments, err := f.svc.AddComment(f.project.ID, f.visitor.ID, "  Great idea  ")

	require.NoError(t, err)
	assert.NotZero(t, commentID)
	require.Len(t, comments, 1)
	assert.Equal(t, "Great idea", comments[0].Content, "Content is stored trimmed")
	assert.Equal(t, f.visitor.FirstName, comments[0].FirstName)
}

func TestAddComment_Validation(t *testing.T) {
	f := setupInteractions(t)
	defer f.testDB.Teardown(t)

	_, _, err := f.svc.AddComment(f.project.ID, f.visitor.ID, "   ")
	assert.ErrorIs(t, err, service.ErrEmptyContent)

	_, _, err = f.svc.AddComment(999, f.visitor.ID, "hello")
	assert.ErrorIs(t, err, service.ErrProjectNotFound)
}

func TestGetComments_NewestFirstAndPaginated(t *testing.T) {
	f := setupInteractions(t)
	defer f.testDB.Teardown(t)

	for _, content := range []string{"first", "second", "third"} {
		comment := &models.Comment{ProjectID: f.project.ID, UserID: f.visitor.ID, Content: content}
		require.NoError(t, f.testDB.DB.Create(comment).Error)
	}

	comments, count, err := f.svc.GetComments(f.project.ID, 2, 0)
	require.NoError(t, err)

	assert.EqualValues(t, 3, count)
	assert.Len(t, comments, 2)
}

func TestDeleteComment_AuthorOnly(t *testing.T) {
	f := setupInteractions(t)
	defer f.testDB.Teardown(t)

	commentID, _, err := f.svc.AddComment(f.project.ID, f.visitor.ID, "Great idea")
	require.NoError(t, err)

	// Another user, even the project owner, cannot delete it.
	err = f.svc.DeleteComment(commentID, f.owner.ID, false)
	assert.ErrorIs(t, err, service.ErrNotOwner)

	// The comment is still readable after the denied attempt.
	comments, _, err := f.svc.GetComments(f.project.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	// The author can delete it.
	require.NoError(t, f.svc.DeleteComment(commentID, f.visitor.ID, false))
	comments, _, err = f.svc.GetComments(f.project.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestDeleteComment_AdminOverride(t *testing.T) {
	f := setupInteractions(t)
	defer f.testDB.Teardown(t)

	admin, err := testutil.DefaultAdmin()
	require.NoError(t, err)
	require.NoError(t, f.testDB.DB.Create(admin).Error)

	commentID, _, err := f.svc.AddComment(f.project.ID, f.visitor.ID, "spam")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteComment(commentID, admin.ID, true))
}

func TestDeleteComment_NotFound(t *testing.T) {
	f := setupInteractions(t)
	defer f.testDB.Teardown(t)

	err := f.svc.DeleteComment(999, f.visitor.ID, false)

	assert.ErrorIs(t, err, service.ErrCommentNotFound)
}
