package repository

import (
	"time"

	"github.com/Baaaki/resume-backend/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// GetUserByEmail returns nil, nil when no user has that email.
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	return firstOrNil[models.User](r.db.Where("email = ?", email))
}

func (r *UserRepository) GetUserByID(id uint) (*models.User, error) {
	return firstOrNil[models.User](r.db.Where("id = ?", id))
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) TouchLastLogin(id uint, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("last_login", at).Error
}

// UpdatePasswordHash replaces a stored hash, used to migrate legacy hashes on login.
func (r *UserRepository) UpdatePasswordHash(id uint, hash string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("password_hash", hash).Error
}
