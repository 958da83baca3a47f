package repository

import (
	"github.com/Baaaki/resume-backend/internal/models"
	"gorm.io/gorm"
)

var skillOrder = []string{"display_order", "id"}

type SkillRepository struct {
	db *gorm.DB
	owned[models.Skill]
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{db: db, owned: owned[models.Skill]{db: db, order: skillOrder}}
}

func (r *SkillRepository) Create(skill *models.Skill) error {
	return r.db.Create(skill).Error
}

func (r *SkillRepository) Get(profileID, id uint) (*models.Skill, error) {
	return r.get(profileID, id)
}

func (r *SkillRepository) ListByProfile(profileID uint) ([]models.Skill, error) {
	return r.list(profileID)
}

func (r *SkillRepository) ListByCategory(profileID uint, category models.SkillCategory) ([]models.Skill, error) {
	return r.list(profileID, func(db *gorm.DB) *gorm.DB {
		return db.Where("category = ?", category)
	})
}

func (r *SkillRepository) ListPrimary(profileID uint) ([]models.Skill, error) {
	return r.list(profileID, func(db *gorm.DB) *gorm.DB {
		return db.Where("is_primary = ?", true)
	})
}

func (r *SkillRepository) Update(skill *models.Skill) error {
	return updateVersioned(r.db, skill)
}

func (r *SkillRepository) Delete(profileID, id uint) (bool, error) {
	return r.delete(profileID, id)
}

func (r *SkillRepository) NextDisplayOrder(profileID uint) (int, error) {
	return r.nextDisplayOrder(profileID)
}

func (r *SkillRepository) CountOwned(profileID uint, ids []uint) (int64, error) {
	return r.countOwned(profileID, ids)
}

func (r *SkillRepository) ApplyOrder(profileID uint, ids []uint) error {
	return r.applyOrder(profileID, ids)
}
