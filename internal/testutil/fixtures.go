package testutil

import (
	"github.com/talentsafricains/showcase/internal/models"
	"github.com/talentsafricains/showcase/internal/utils"
)

// CreateTestUser returns a user with a real Argon2id password hash.
func CreateTestUser(firstName, lastName, email, password string, role models.Role) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
	}, nil
}

// CreateTestProject returns a published project owned by ownerID.
func CreateTestProject(ownerID uint, title string) *models.Project {
	return &models.Project{
		Title:       title,
		Description: "A test project",
		Category:    models.CategoryTechnology,
		Status:      models.StatusPublished,
		OwnerID:     ownerID,
	}
}

// DefaultVisitor returns a default unprivileged user.
func DefaultVisitor() (*models.User, error) {
	return CreateTestUser("Binta", "Diallo", "binta@example.com", "Visitor123", models.RoleVisitor)
}

// DefaultProjectOwner returns a default project-owner user.
func DefaultProjectOwner() (*models.User, error) {
	return CreateTestUser("Awa", "Ndiaye", "awa@example.com", "Owner1234", models.RoleProjectOwner)
}

// DefaultAdmin returns a default admin user.
func DefaultAdmin() (*models.User, error) {
	return CreateTestUser("Admin", "Root", "admin@example.com", "Admin1234", models.RoleAdmin)
}
