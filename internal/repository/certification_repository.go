package repository

import (
	"github.com/Baaaki/resume-backend/internal/models"
	"gorm.io/gorm"
)

var certificationOrder = []string{"display_order", "date_obtained DESC", "id"}

type CertificationRepository struct {
	db *gorm.DB
	owned[models.Certification]
}

func NewCertificationRepository(db *gorm.DB) *CertificationRepository {
	return &CertificationRepository{db: db, owned: owned[models.Certification]{db: db, order: certificationOrder}}
}

func (r *CertificationRepository) Create(cert *models.Certification) error {
	return r.db.Create(cert).Error
}

func (r *CertificationRepository) Get(profileID, id uint) (*models.Certification, error) {
	return r.get(profileID, id)
}

func (r *CertificationRepository) ListByProfile(profileID uint) ([]models.Certification, error) {
	return r.list(profileID)
}

func (r *CertificationRepository) ListByOrganization(profileID uint, organization string) ([]models.Certification, error) {
	return r.list(profileID, func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(issuing_organization) = LOWER(?)", organization)
	})
}

// ExistsByNameAndOrganization reports whether the profile already holds this
// certification. excludeID skips the row being updated; pass 0 on create.
func (r *CertificationRepository) ExistsByNameAndOrganization(profileID uint, name, organization string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Certification{}).
		Where("profile_id = ? AND name = ? AND issuing_organization = ? AND id <> ?", profileID, name, organization, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *CertificationRepository) Update(cert *models.Certification) error {
	return updateVersioned(r.db, cert)
}

func (r *CertificationRepository) Delete(profileID, id uint) (bool, error) {
	return r.delete(profileID, id)
}

func (r *CertificationRepository) DeleteAll(profileID uint) (int64, error) {
	return r.deleteAll(profileID)
}

func (r *CertificationRepository) NextDisplayOrder(profileID uint) (int, error) {
	return r.nextDisplayOrder(profileID)
}

func (r *CertificationRepository) CountOwned(profileID uint, ids []uint) (int64, error) {
	return r.countOwned(profileID, ids)
}

func (r *CertificationRepository) ApplyOrder(profileID uint, ids []uint) error {
	return r.applyOrder(profileID, ids)
}
