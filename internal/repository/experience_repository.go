package repository

import (
	"github.com/Baaaki/resume-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var experienceOrder = []string{"start_date DESC", "display_order", "id"}

type ExperienceRepository struct {
	db *gorm.DB
	owned[models.Experience]
}

func NewExperienceRepository(db *gorm.DB) *ExperienceRepository {
	return &ExperienceRepository{db: db, owned: owned[models.Experience]{db: db, order: experienceOrder}}
}

func (r *ExperienceRepository) Create(exp *models.Experience) error {
	if err := r.db.Omit(clause.Associations).Create(exp).Error; err != nil {
		return err
	}
	return r.insertElements(exp)
}

func (r *ExperienceRepository) Get(profileID, id uint) (*models.Experience, error) {
	return firstOrNil[models.Experience](r.withElements().Where("id = ? AND profile_id = ?", id, profileID))
}

func (r *ExperienceRepository) ListByProfile(profileID uint) ([]models.Experience, error) {
	var out []models.Experience
	err := orderBy(r.withElements().Where("profile_id = ?", profileID), experienceOrder).Find(&out).Error
	return out, err
}

func (r *ExperienceRepository) ListCurrent(profileID uint) ([]models.Experience, error) {
	var out []models.Experience
	err := orderBy(r.withElements().Where("profile_id = ? AND is_current = ?", profileID, true), experienceOrder).Find(&out).Error
	return out, err
}

// Update saves the experience and rewrites its achievements and technologies.
func (r *ExperienceRepository) Update(exp *models.Experience) error {
	if err := updateVersioned(r.db, exp); err != nil {
		return err
	}
	if err := r.db.Where("experience_id = ?", exp.ID).Delete(&models.ExperienceAchievement{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("experience_id = ?", exp.ID).Delete(&models.ExperienceTechnology{}).Error; err != nil {
		return err
	}
	return r.insertElements(exp)
}

func (r *ExperienceRepository) Delete(profileID, id uint) (bool, error) {
	if err := r.db.Where("experience_id = ?", id).Delete(&models.ExperienceAchievement{}).Error; err != nil {
		return false, err
	}
	if err := r.db.Where("experience_id = ?", id).Delete(&models.ExperienceTechnology{}).Error; err != nil {
		return false, err
	}
	return r.delete(profileID, id)
}

func (r *ExperienceRepository) NextDisplayOrder(profileID uint) (int, error) {
	return r.nextDisplayOrder(profileID)
}

func (r *ExperienceRepository) CountOwned(profileID uint, ids []uint) (int64, error) {
	return r.countOwned(profileID, ids)
}

func (r *ExperienceRepository) ApplyOrder(profileID uint, ids []uint) error {
	return r.applyOrder(profileID, ids)
}

func (r *ExperienceRepository) withElements() *gorm.DB {
	return r.db.
		Preload("Achievements", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Technologies", func(db *gorm.DB) *gorm.DB { return db.Order("position") })
}

func (r *ExperienceRepository) insertElements(exp *models.Experience) error {
	for i := range exp.Achievements {
		exp.Achievements[i].ExperienceID = exp.ID
		exp.Achievements[i].Position = i
	}
	for i := range exp.Technologies {
		exp.Technologies[i].ExperienceID = exp.ID
		exp.Technologies[i].Position = i
	}
	if len(exp.Achievements) > 0 {
		if err := r.db.Create(&exp.Achievements).Error; err != nil {
			return err
		}
	}
	if len(exp.Technologies) > 0 {
		if err := r.db.Create(&exp.Technologies).Error; err != nil {
			return err
		}
	}
	return nil
}
