package main

import (
	"log"
	"os"

	"github.com/Baaaki/resume-backend/internal/config"
	"github.com/Baaaki/resume-backend/internal/database"
	"github.com/Baaaki/resume-backend/internal/models"
	"github.com/Baaaki/resume-backend/internal/repository"
	"github.com/Baaaki/resume-backend/internal/utils"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect database: ", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	firstName := getEnv("ADMIN_FIRST_NAME", "Admin")
	lastName := getEnv("ADMIN_LAST_NAME", "User")

	if adminEmail == "" || adminPassword == "" {
		log.Fatal("Missing environment variables: ADMIN_EMAIL, ADMIN_PASSWORD")
	}

	users := repository.NewUserRepository(db)

	// Check if a user with this email already exists
	existing, err := users.GetUserByEmail(adminEmail)
	if err != nil {
		log.Fatal("Failed to look up admin: ", err)
	}
	if existing != nil {
		log.Println("✅ Admin user already exists:", existing.Email)
		log.Println("   Role:", existing.Role)
		return
	}

	passwordHash, err := utils.HashPassword(adminPassword)
	if err != nil {
		log.Fatal("Failed to hash password: ", err)
	}

	admin := &models.User{
		Email:        adminEmail,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         models.RoleAdmin,
		Enabled:      true,
	}
	if err := users.CreateUser(admin); err != nil {
		log.Fatal("Failed to create admin: ", err)
	}

	log.Println("✅ Admin user created successfully!")
	log.Println("   Email:", admin.Email)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
