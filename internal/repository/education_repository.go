package repository

import (
	"github.com/Baaaki/resume-backend/internal/models"
	"gorm.io/gorm"
)

// ongoing studies first, then most recent graduation
var educationOrder = []string{"(graduation_date IS NULL) DESC", "graduation_date DESC", "display_order", "id"}

type EducationRepository struct {
	db *gorm.DB
	owned[models.Education]
}

func NewEducationRepository(db *gorm.DB) *EducationRepository {
	return &EducationRepository{db: db, owned: owned[models.Education]{db: db, order: educationOrder}}
}

func (r *EducationRepository) Create(edu *models.Education) error {
	return r.db.Create(edu).Error
}

func (r *EducationRepository) Get(profileID, id uint) (*models.Education, error) {
	return r.get(profileID, id)
}

func (r *EducationRepository) ListByProfile(profileID uint) ([]models.Education, error) {
	return r.list(profileID)
}

func (r *EducationRepository) Update(edu *models.Education) error {
	return updateVersioned(r.db, edu)
}

func (r *EducationRepository) Delete(profileID, id uint) (bool, error) {
	return r.delete(profileID, id)
}

func (r *EducationRepository) NextDisplayOrder(profileID uint) (int, error) {
	return r.nextDisplayOrder(profileID)
}

func (r *EducationRepository) CountOwned(profileID uint, ids []uint) (int64, error) {
	return r.countOwned(profileID, ids)
}

func (r *EducationRepository) ApplyOrder(profileID uint, ids []uint) error {
	return r.applyOrder(profileID, ids)
}
