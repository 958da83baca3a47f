package service

import (
	"context"
	"time"

	"github.com/Baaaki/resume-backend/internal/models"
	"github.com/Baaaki/resume-backend/internal/repository"
	"github.com/Baaaki/resume-backend/pkg/logger"
	"go.uber.org/zap"
)

type EducationService struct {
	store *repository.Store
	cache ProfileCache
	today func() time.Time
}

func NewEducationService(store *repository.Store, cache ProfileCache) *EducationService {
	if cache == nil {
		cache = noopCache{}
	}
	return &EducationService{store: store, cache: cache, today: models.Today}
}

func (s *EducationService) List(ctx context.Context, profileID uint) ([]models.Education, error) {
	var out []models.Education
	err := s.store.ReadOnly(ctx, func(tx *repository.Store) error {
		if err := requireProfileExists(tx, profileID); err != nil {
			return err
		}
		var err error
		out, err = tx.Educations.ListByProfile(profileID)
		return err
	})
	return out, err
}

func (s *EducationService) Get(ctx context.Context, profileID, id uint) (*models.Education, error) {
	var edu *models.Education
	err := s.store.ReadOnly(ctx, func(tx *repository.Store) error {
		var err error
		edu, err = requireEducation(tx, profileID, id)
		return err
	})
	return edu, err
}

func (s *EducationService) Create(ctx context.Context, profileID uint, edu *models.Education) (*models.Education, error) {
	logger.Log.Debug("Creating education", zap.Uint("profile_id", profileID))

	edu.ProfileID = profileID
	if errs := edu.Validate(s.today()); !errs.Empty() {
		return nil, invalid(errs)
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireProfileExists(tx, profileID); err != nil {
			return err
		}
		if edu.DisplayOrder <= 0 {
			next, err := tx.Educations.NextDisplayOrder(profileID)
			if err != nil {
				return err
			}
			edu.DisplayOrder = next
		}
		return tx.Educations.Create(edu)
	})
	if err != nil {
		logFailure("Failed to create education", err, zap.Uint("profile_id", profileID))
		return nil, err
	}

	s.cache.Invalidate(ctx, profileID)
	logger.Log.Info("Education created", zap.Uint("profile_id", profileID), zap.Uint("education_id", edu.ID))
	return edu, nil
}

func (s *EducationService) Update(ctx context.Context, profileID, id uint, expectedVersion *int64, apply func(*models.Education)) (*models.Education, error) {
	var edu *models.Education
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		edu, err = requireEducation(tx, profileID, id)
		if err != nil {
			return err
		}
		if expectedVersion != nil && *expectedVersion != edu.Version {
			return conflict("Education", id)
		}

		apply(edu)
		edu.ID, edu.ProfileID = id, profileID
		if errs := edu.Validate(s.today()); !errs.Empty() {
			return invalid(errs)
		}

		return saveVersioned("Education", id, tx.Educations.Update(edu))
	})
	if err != nil {
		logFailure("Failed to update education", err, zap.Uint("profile_id", profileID), zap.Uint("education_id", id))
		return nil, err
	}

	s.cache.Invalidate(ctx, profileID)
	logger.Log.Info("Education updated", zap.Uint("profile_id", profileID), zap.Uint("education_id", id))
	return edu, nil
}

func (s *EducationService) Delete(ctx context.Context, profileID, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireProfileExists(tx, profileID); err != nil {
			return err
		}
		deleted, err := tx.Educations.Delete(profileID, id)
		if err != nil {
			return err
		}
		if !deleted {
			return notFound("Education not found with id: %d", id)
		}
		return nil
	})
	if err != nil {
		logFailure("Failed to delete education", err, zap.Uint("profile_id", profileID), zap.Uint("education_id", id))
		return err
	}

	s.cache.Invalidate(ctx, profileID)
	logger.Log.Info("Education deleted", zap.Uint("profile_id", profileID), zap.Uint("education_id", id))
	return nil
}

func (s *EducationService) Reorder(ctx context.Context, profileID uint, ids []uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireProfileExists(tx, profileID); err != nil {
			return err
		}
		return reorder(tx.Educations, profileID, ids, "education")
	})
	if err != nil {
		logFailure("Failed to reorder educations", err, zap.Uint("profile_id", profileID))
		return err
	}

	s.cache.Invalidate(ctx, profileID)
	logger.Log.Info("Educations reordered", zap.Uint("profile_id", profileID), zap.Int("count", len(ids)))
	return nil
}

func requireEducation(tx *repository.Store, profileID, id uint) (*models.Education, error) {
	if err := requireProfileExists(tx, profileID); err != nil {
		return nil, err
	}
	edu, err := tx.Educations.Get(profileID, id)
	if err != nil {
		return nil, err
	}
	if edu == nil {
		return nil, notFound("Education not found with id: %d", id)
	}
	return edu, nil
}
