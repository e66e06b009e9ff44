package main

import (
	"log"
	"os"

	"github.com/talentsafricains/showcase/internal/config"
	"github.com/talentsafricains/showcase/internal/database"
	"github.com/talentsafricains/showcase/internal/models"
	"github.com/talentsafricains/showcase/internal/utils"
)

// Creates the initial admin account from env vars. Safe to run
// repeatedly: an existing admin with the same email is left alone.
func main() {
	cfg := config.Load()
	db := database.Connect(cfg)
	database.Migrate(db)

	firstName := os.Getenv("ADMIN_FIRST_NAME")
	lastName := os.Getenv("ADMIN_LAST_NAME")
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")

	if firstName == "" || lastName == "" || email == "" || password == "" {
		log.Fatal("Missing environment variables: ADMIN_FIRST_NAME, ADMIN_LAST_NAME, ADMIN_EMAIL, ADMIN_PASSWORD")
	}

	var admin models.User
	if err := db.Where("email = ?", email).First(&admin).Error; err == nil {
		log.Println("Admin user already exists:", admin.Email)
		return
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin = models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	log.Println("Admin user created:", admin.Email)
}
