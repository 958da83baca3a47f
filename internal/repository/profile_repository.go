package repository

import (
	"github.com/Baaaki/resume-backend/internal/models"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(profile *models.Profile) error {
	return r.db.Omit("Experiences", "Educations", "Skills", "Certifications").Create(profile).Error
}

func (r *ProfileRepository) GetByID(id uint) (*models.Profile, error) {
	return firstOrNil[models.Profile](r.db.Where("id = ?", id))
}

func (r *ProfileRepository) GetByEmail(email string) (*models.Profile, error) {
	return firstOrNil[models.Profile](r.db.Where("email = ?", email))
}

// GetWithRelations loads the profile and its four collections. Each collection
// is fetched by its own query so rows never multiply across collections.
func (r *ProfileRepository) GetWithRelations(id uint) (*models.Profile, error) {
	return firstOrNil[models.Profile](r.db.
		Preload("Experiences", func(db *gorm.DB) *gorm.DB { return orderBy(db, experienceOrder) }).
		Preload("Experiences.Achievements", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Experiences.Technologies", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Educations", func(db *gorm.DB) *gorm.DB { return orderBy(db, educationOrder) }).
		Preload("Skills", func(db *gorm.DB) *gorm.DB { return orderBy(db, skillOrder) }).
		Preload("Certifications", func(db *gorm.DB) *gorm.DB { return orderBy(db, certificationOrder) }).
		Where("id = ?", id))
}

func (r *ProfileRepository) ListActive() ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.Where("active = ?", true).Order("id").Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Profile{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *ProfileRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Profile{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// EmailTakenByOther reports whether a profile other than id uses email.
func (r *ProfileRepository) EmailTakenByOther(email string, id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Profile{}).Where("email = ? AND id <> ?", email, id).Count(&count).Error
	return count > 0, err
}

// Update saves all profile columns, failing with ErrVersionConflict on a stale version.
func (r *ProfileRepository) Update(profile *models.Profile) error {
	return updateVersioned(r.db, profile)
}

// Delete removes the profile together with every child row.
// Callers should run it inside a transaction.
func (r *ProfileRepository) Delete(id uint) (bool, error) {
	experienceIDs := r.db.Model(&models.Experience{}).Select("id").Where("profile_id = ?", id)

	steps := []func() error{
		func() error {
			return r.db.Where("experience_id IN (?)", experienceIDs).Delete(&models.ExperienceAchievement{}).Error
		},
		func() error {
			return r.db.Where("experience_id IN (?)", experienceIDs).Delete(&models.ExperienceTechnology{}).Error
		},
		func() error { return r.db.Where("profile_id = ?", id).Delete(&models.Experience{}).Error },
		func() error { return r.db.Where("profile_id = ?", id).Delete(&models.Education{}).Error },
		func() error { return r.db.Where("profile_id = ?", id).Delete(&models.Skill{}).Error },
		func() error { return r.db.Where("profile_id = ?", id).Delete(&models.Certification{}).Error },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return false, err
		}
	}

	result := r.db.Delete(&models.Profile{}, id)
	return result.RowsAffected > 0, result.Error
}

func orderBy(db *gorm.DB, order []string) *gorm.DB {
	for _, o := range order {
		db = db.Order(o)
	}
	return db
}
