package testutil

import (
	"testing"
	"time"

	"github.com/Baaaki/resume-backend/internal/models"
	"github.com/Baaaki/resume-backend/internal/utils"
	"gorm.io/gorm"
)

// Date builds a UTC calendar date.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CreateTestUser builds an enabled user with an Argon2id hashed password.
func CreateTestUser(email, password string, role models.Role) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		Email:        email,
		PasswordHash: hashedPassword,
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
		Enabled:      true,
	}, nil
}

// DefaultTestUser returns a default test user (regular user)
func DefaultTestUser() (*models.User, error) {
	return CreateTestUser("test@example.com", "Test123456", models.RoleUser)
}

// DefaultAdminUser returns a default admin user
func DefaultAdminUser() (*models.User, error) {
	return CreateTestUser("admin@example.com", "Admin123456", models.RoleAdmin)
}

// InsertUser persists a user and fails the test on error.
func InsertUser(t *testing.T, db *gorm.DB, email, password string, role models.Role) *models.User {
	t.Helper()
	user, err := CreateTestUser(email, password, role)
	if err != nil {
		t.Fatalf("Failed to build user: %v", err)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to insert user: %v", err)
	}
	return user
}

// InsertProfile persists an active profile with the given email.
func InsertProfile(t *testing.T, db *gorm.DB, firstName, lastName, email string) *models.Profile {
	t.Helper()
	profile := &models.Profile{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Title:     "Engineer",
		Active:    true,
	}
	if err := db.Omit("Experiences", "Educations", "Skills", "Certifications").Create(profile).Error; err != nil {
		t.Fatalf("Failed to insert profile: %v", err)
	}
	return profile
}

// InsertSkill persists a skill with an explicit display order.
func InsertSkill(t *testing.T, db *gorm.DB, profileID uint, name string, order int) *models.Skill {
	t.Helper()
	skill := &models.Skill{
		ProfileID:    profileID,
		Name:         name,
		Category:     models.CategoryProgrammingLanguage,
		DisplayOrder: order,
	}
	if err := db.Create(skill).Error; err != nil {
		t.Fatalf("Failed to insert skill: %v", err)
	}
	return skill
}

// InsertCertification persists a certification obtained on the given date.
func InsertCertification(t *testing.T, db *gorm.DB, profileID uint, name, org string, obtained time.Time, expires *time.Time) *models.Certification {
	t.Helper()
	cert := &models.Certification{
		ProfileID:           profileID,
		Name:                name,
		IssuingOrganization: org,
		DateObtained:        models.NewDate(obtained),
		ExpirationDate:      models.NewDatePtr(expires),
	}
	if err := db.Create(cert).Error; err != nil {
		t.Fatalf("Failed to insert certification: %v", err)
	}
	return cert
}
