package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentsafricains/showcase/internal/models"
	"github.com/talentsafricains/showcase/internal/repository"
	"github.com/talentsafricains/showcase/internal/service"
	"github.com/talentsafricains/showcase/internal/testutil"
	"github.com/talentsafricains/showcase/pkg/logger"
)

const testTokenExpiry = 1 * time.Hour

func TestMain(m *testing.M) {
	if err := logger.Init(false); err != nil {
		panic(err)
	}
	m.Run()
}

func newAuthService(t *testing.T) (*service.AuthService, *testutil.TestDatabase) {
	testDB := testutil.SetupTestDatabase(t)
	testutil.CleanDatabase(t, testDB.DB)
	userRepo := repository.NewUserRepository(testDB.DB)
	return service.NewAuthService(userRepo, "test-secret", testTokenExpiry), testDB
}

func validRegistration() service.RegisterInput {
	return service.RegisterInput{
		FirstName: "Awa",
		LastName:  "Ndiaye",
		Email:     "awa@example.com",
		Password:  "Abcdef12",
		Role:      models.RoleProjectOwner,
	}
}

func TestRegister_Success(t *testing.T) {
	svc, testDB := newAuthService(t)
	defer testDB.Teardown(t)

	user, token, err := svc.Register(validRegistration())

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleProjectOwner, user.Role)
	assert.NotEqual(t, "Abcdef12", user.PasswordHash, "Password must be stored hashed")
}

func TestRegister_DefaultRole(t *testing.T) {
	svc, testDB := newAuthService(t)
	defer testDB.Teardown(t)

	input := validRegistration()
	input.Role = ""

	user, _, err := svc.Register(input)

	require.NoError(t, err)
	assert.Equal(t, models.RoleVisitor, user.Role, "Role should default to visitor")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, testDB := newAuthService(t)
	defer testDB.Teardown(t)

	_, _, err := svc.Register(validRegistration())
	require.NoError(t, err)

	// Second registration with the same email must never create a row.
	_, _, err = svc.Register(validRegistration())
	assert.ErrorIs(t, err, service.ErrEmailAlreadyExists)

	var count int64
	testDB.DB.Model(&models.User{}).Where("email = ?", "awa@example.com").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRegister_Validation(t *testing.T) {
	svc, testDB := newAuthService(t)
	defer testDB.Teardown(t)

	tests := []struct {
		name   string
		mutate func(*service.RegisterInput)
		field  string
	}{
		{"missing first name", func(in *service.RegisterInput) { in.FirstName = "" }, "first_name"},
		{"missing last name", func(in *service.RegisterInput) { in.LastName = "" }, "last_name"},
		{"bad email", func(in *service.RegisterInput) { in.Email = "not-an-email" }, "email"},
		{"short password", func(in *service.RegisterInput) { in.Password = "Ab1" }, "password"},
		{"no uppercase", func(in *service.RegisterInput) { in.Password = "abcdef12" }, "password"},
		{"no digit", func(in *service.RegisterInput) { in.Password = "Abcdefgh" }, "password"},
		{"admin role rejected", func(in *service.RegisterInput) { in.Role = models.RoleAdmin }, "role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRegistration()
			tt.mutate(&input)

			_, _, err := svc.Register(input)

			var validationErr *service.ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.NotEmpty(t, validationErr.Fields)
			assert.Equal(t, tt.field, validationErr.Fields[0].Field)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	svc, testDB := newAuthService(t)
	defer testDB.Teardown(t)

	_, _, err := svc.Register(validRegistration())
	require.NoError(t, err)

	user, token, err := svc.Login("awa@example.com", "Abcdef12")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "awa@example.com", user.Email)
}

func TestLogin_IndistinguishableFailures(t *testing.T) {
	svc, testDB := newAuthService(t)
	defer testDB.Teardown(t)

	_, _, err := svc.Register(validRegistration())
	require.NoError(t, err)

	// Unknown email and wrong password must yield the same error so a
	// caller cannot probe which emails exist.
	_, _, errUnknown := svc.Login("nobody@example.com", "Abcdef12")
	_, _, errWrongPw := svc.Login("awa@example.com", "WrongPw99")

	assert.ErrorIs(t, errUnknown, service.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, service.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestGetProfile_NotFound(t *testing.T) {
	svc, testDB := newAuthService(t)
	defer testDB.Teardown(t)

	_, err := svc.GetProfile(9999)

	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestUpdateProfile_PartialAndClear(t *testing.T) {
	svc, testDB := newAuthService(t)
	defer testDB.Teardown(t)

	input := validRegistration()
	input.Bio = "Original bio"
	input.Country = "Senegal"
	registered, _, err := svc.Register(input)
	require.NoError(t, err)

	// Absent fields stay untouched; an explicit empty string clears.
	newFirst := "Aminata"
	emptyBio := ""
	user, err := svc.UpdateProfile(registered.ID, models.UserPatch{
		FirstName: &newFirst,
		Bio:       &emptyBio,
	})

	require.NoError(t, err)
	assert.Equal(t, "Aminata", user.FirstName)
	assert.Equal(t, "", user.Bio, "Explicit empty bio should clear the field")
	assert.Equal(t, "Senegal", user.Country, "Absent field should be untouched")
	assert.Equal(t, "Ndiaye", user.LastName)
}

func TestUpdateProfile_EmptyPatch(t *testing.T) {
	svc, testDB := newAuthService(t)
	defer testDB.Teardown(t)

	registered, _, err := svc.Register(validRegistration())
	require.NoError(t, err)

	_, err = svc.UpdateProfile(registered.ID, models.UserPatch{})

	assert.ErrorIs(t, err, service.ErrNothingToUpdate)
}
