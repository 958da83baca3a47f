package service

import (
	"context"
	"time"

	"github.com/Baaaki/resume-backend/internal/models"
	"github.com/Baaaki/resume-backend/internal/repository"
	"github.com/Baaaki/resume-backend/pkg/logger"
	"go.uber.org/zap"
)

type CertificationService struct {
	store *repository.Store
	cache ProfileCache
	today func() time.Time
}

func NewCertificationService(store *repository.Store, cache ProfileCache) *CertificationService {
	if cache == nil {
		cache = noopCache{}
	}
	return &CertificationService{store: store, cache: cache, today: models.Today}
}

func (s *CertificationService) List(ctx context.Context, profileID uint) ([]models.Certification, error) {
	var out []models.Certification
	err := s.store.ReadOnly(ctx, func(tx *repository.Store) error {
		if err := requireProfileExists(tx, profileID); err != nil {
			return err
		}
		var err error
		out, err = tx.Certifications.ListByProfile(profileID)
		return err
	})
	return out, err
}

// ListExpired returns certifications whose expiration date lies before today.
func (s *CertificationService) ListExpired(ctx context.Context, profileID uint) ([]models.Certification, error) {
	today := s.today()
	return s.filter(ctx, profileID, func(c *models.Certification) bool { return c.IsExpired(today) })
}

// ListExpiringSoon returns valid certifications that expire within three months.
func (s *CertificationService) ListExpiringSoon(ctx context.Context, profileID uint) ([]models.Certification, error) {
	today := s.today()
	return s.filter(ctx, profileID, func(c *models.Certification) bool { return c.IsExpiringSoon(today) })
}

func (s *CertificationService) ListByOrganization(ctx context.Context, profileID uint, organization string) ([]models.Certification, error) {
	var out []models.Certification
	err := s.store.ReadOnly(ctx, func(tx *repository.Store) error {
		if err := requireProfileExists(tx, profileID); err != nil {
			return err
		}
		var err error
		out, err = tx.Certifications.ListByOrganization(profileID, organization)
		return err
	})
	return out, err
}

func (s *CertificationService) filter(ctx context.Context, profileID uint, keep func(*models.Certification) bool) ([]models.Certification, error) {
	all, err := s.List(ctx, profileID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Certification, 0, len(all))
	for i := range all {
		if keep(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (s *CertificationService) Get(ctx context.Context, profileID, id uint) (*models.Certification, error) {
	var cert *models.Certification
	err := s.store.ReadOnly(ctx, func(tx *repository.Store) error {
		var err error
		cert, err = requireCertification(tx, profileID, id)
		return err
	})
	return cert, err
}

func (s *CertificationService) Create(ctx context.Context, profileID uint, cert *models.Certification) (*models.Certification, error) {
	logger.Log.Debug("Creating certification", zap.Uint("profile_id", profileID), zap.String("name", cert.Name))

	cert.ProfileID = profileID
	if cert.DoesNotExpire {
		cert.ExpirationDate = nil
	}
	if errs := cert.Validate(s.today()); !errs.Empty() {
		return nil, invalid(errs)
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireProfileExists(tx, profileID); err != nil {
			return err
		}
		if err := ensureUniqueCertification(tx, cert, 0); err != nil {
			return err
		}
		if cert.DisplayOrder <= 0 {
			next, err := tx.Certifications.NextDisplayOrder(profileID)
			if err != nil {
				return err
			}
			cert.DisplayOrder = next
		}
		return tx.Certifications.Create(cert)
	})
	if err != nil {
		logFailure("Failed to create certification", err, zap.Uint("profile_id", profileID))
		return nil, err
	}

	s.cache.Invalidate(ctx, profileID)
	logger.Log.Info("Certification created", zap.Uint("profile_id", profileID), zap.Uint("certification_id", cert.ID))
	return cert, nil
}

func (s *CertificationService) Update(ctx context.Context, profileID, id uint, expectedVersion *int64, apply func(*models.Certification)) (*models.Certification, error) {
	var cert *models.Certification
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		cert, err = requireCertification(tx, profileID, id)
		if err != nil {
			return err
		}
		if expectedVersion != nil && *expectedVersion != cert.Version {
			return conflict("Certification", id)
		}

		prevName, prevOrg := cert.Name, cert.IssuingOrganization
		apply(cert)
		cert.ID, cert.ProfileID = id, profileID
		if cert.DoesNotExpire {
			cert.ExpirationDate = nil
		}
		if errs := cert.Validate(s.today()); !errs.Empty() {
			return invalid(errs)
		}
		if cert.Name != prevName || cert.IssuingOrganization != prevOrg {
			if err := ensureUniqueCertification(tx, cert, id); err != nil {
				return err
			}
		}

		return saveVersioned("Certification", id, tx.Certifications.Update(cert))
	})
	if err != nil {
		logFailure("Failed to update certification", err, zap.Uint("profile_id", profileID), zap.Uint("certification_id", id))
		return nil, err
	}

	s.cache.Invalidate(ctx, profileID)
	logger.Log.Info("Certification updated", zap.Uint("profile_id", profileID), zap.Uint("certification_id", id))
	return cert, nil
}

func (s *CertificationService) Delete(ctx context.Context, profileID, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireProfileExists(tx, profileID); err != nil {
			return err
		}
		deleted, err := tx.Certifications.Delete(profileID, id)
		if err != nil {
			return err
		}
		if !deleted {
			return notFound("Certification not found with id: %d", id)
		}
		return nil
	})
	if err != nil {
		logFailure("Failed to delete certification", err, zap.Uint("profile_id", profileID), zap.Uint("certification_id", id))
		return err
	}

	s.cache.Invalidate(ctx, profileID)
	logger.Log.Info("Certification deleted", zap.Uint("profile_id", profileID), zap.Uint("certification_id", id))
	return nil
}

// DeleteAll removes every certification of the profile and reports how many were removed.
func (s *CertificationService) DeleteAll(ctx context.Context, profileID uint) (int64, error) {
	var removed int64
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireProfileExists(tx, profileID); err != nil {
			return err
		}
		var err error
		removed, err = tx.Certifications.DeleteAll(profileID)
		return err
	})
	if err != nil {
		logFailure("Failed to delete certifications", err, zap.Uint("profile_id", profileID))
		return 0, err
	}

	s.cache.Invalidate(ctx, profileID)
	logger.Log.Info("Certifications deleted", zap.Uint("profile_id", profileID), zap.Int64("count", removed))
	return removed, nil
}

func (s *CertificationService) Reorder(ctx context.Context, profileID uint, ids []uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireProfileExists(tx, profileID); err != nil {
			return err
		}
		return reorder(tx.Certifications, profileID, ids, "certification")
	})
	if err != nil {
		logFailure("Failed to reorder certifications", err, zap.Uint("profile_id", profileID))
		return err
	}

	s.cache.Invalidate(ctx, profileID)
	logger.Log.Info("Certifications reordered", zap.Uint("profile_id", profileID), zap.Int("count", len(ids)))
	return nil
}

func ensureUniqueCertification(tx *repository.Store, cert *models.Certification, excludeID uint) error {
	exists, err := tx.Certifications.ExistsByNameAndOrganization(cert.ProfileID, cert.Name, cert.IssuingOrganization, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return duplicate("Certification %s from %s already exists for this profile", cert.Name, cert.IssuingOrganization)
	}
	return nil
}

func requireCertification(tx *repository.Store, profileID, id uint) (*models.Certification, error) {
	if err := requireProfileExists(tx, profileID); err != nil {
		return nil, err
	}
	cert, err := tx.Certifications.Get(profileID, id)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, notFound("Certification not found with id: %d", id)
	}
	return cert, nil
}
