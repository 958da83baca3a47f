package service

import (
	"context"
	"time"

	"github.com/Baaaki/resume-backend/internal/models"
	"github.com/Baaaki/resume-backend/internal/repository"
	"github.com/Baaaki/resume-backend/pkg/logger"
	"go.uber.org/zap"
)

type ExperienceService struct {
	store *repository.Store
	cache ProfileCache
	today func() time.Time
}

func NewExperienceService(store *repository.Store, cache ProfileCache) *ExperienceService {
	if cache == nil {
		cache = noopCache{}
	}
	return &ExperienceService{store: store, cache: cache, today: models.Today}
}

func (s *ExperienceService) List(ctx context.Context, profileID uint) ([]models.Experience, error) {
	var out []models.Experience
	err := s.store.ReadOnly(ctx, func(tx *repository.Store) error {
		if err := requireProfileExists(tx, profileID); err != nil {
			return err
		}
		var err error
		out, err = tx.Experiences.ListByProfile(profileID)
		return err
	})
	return out, err
}

func (s *ExperienceService) ListCurrent(ctx context.Context, profileID uint) ([]models.Experience, error) {
	var out []models.Experience
	err := s.store.ReadOnly(ctx, func(tx *repository.Store) error {
		if err := requireProfileExists(tx, profileID); err != nil {
			return err
		}
		var err error
		out, err = tx.Experiences.ListCurrent(profileID)
		return err
	})
	return out, err
}

func (s *ExperienceService) Get(ctx context.Context, profileID, id uint) (*models.Experience, error) {
	var exp *models.Experience
	err := s.store.ReadOnly(ctx, func(tx *repository.Store) error {
		var err error
		exp, err = requireExperience(tx, profileID, id)
		return err
	})
	return exp, err
}

func (s *ExperienceService) Create(ctx context.Context, profileID uint, exp *models.Experience) (*models.Experience, error) {
	logger.Log.Debug("Creating experience", zap.Uint("profile_id", profileID))

	exp.ProfileID = profileID
	exp.SetCurrent(exp.Current)
	if errs := exp.Validate(s.today()); !errs.Empty() {
		return nil, invalid(errs)
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireProfileExists(tx, profileID); err != nil {
			return err
		}
		if exp.DisplayOrder <= 0 {
			next, err := tx.Experiences.NextDisplayOrder(profileID)
			if err != nil {
				return err
			}
			exp.DisplayOrder = next
		}
		return tx.Experiences.Create(exp)
	})
	if err != nil {
		logFailure("Failed to create experience", err, zap.Uint("profile_id", profileID))
		return nil, err
	}

	s.cache.Invalidate(ctx, profileID)
	logger.Log.Info("Experience created", zap.Uint("profile_id", profileID), zap.Uint("experience_id", exp.ID))
	return exp, nil
}

func (s *ExperienceService) Update(ctx context.Context, profileID, id uint, expectedVersion *int64, apply func(*models.Experience)) (*models.Experience, error) {
	var exp *models.Experience
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		exp, err = requireExperience(tx, profileID, id)
		if err != nil {
			return err
		}
		if expectedVersion != nil && *expectedVersion != exp.Version {
			return conflict("Experience", id)
		}

		apply(exp)
		exp.ID, exp.ProfileID = id, profileID
		exp.SetCurrent(exp.Current)
		if errs := exp.Validate(s.today()); !errs.Empty() {
			return invalid(errs)
		}

		return saveVersioned("Experience", id, tx.Experiences.Update(exp))
	})
	if err != nil {
		logFailure("Failed to update experience", err, zap.Uint("profile_id", profileID), zap.Uint("experience_id", id))
		return nil, err
	}

	s.cache.Invalidate(ctx, profileID)
	logger.Log.Info("Experience updated", zap.Uint("profile_id", profileID), zap.Uint("experience_id", id))
	return exp, nil
}

func (s *ExperienceService) Delete(ctx context.Context, profileID, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireProfileExists(tx, profileID); err != nil {
			return err
		}
		deleted, err := tx.Experiences.Delete(profileID, id)
		if err != nil {
			return err
		}
		if !deleted {
			return notFound("Experience not found with id: %d", id)
		}
		return nil
	})
	if err != nil {
		logFailure("Failed to delete experience", err, zap.Uint("profile_id", profileID), zap.Uint("experience_id", id))
		return err
	}

	s.cache.Invalidate(ctx, profileID)
	logger.Log.Info("Experience deleted", zap.Uint("profile_id", profileID), zap.Uint("experience_id", id))
	return nil
}

func (s *ExperienceService) Reorder(ctx context.Context, profileID uint, ids []uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireProfileExists(tx, profileID); err != nil {
			return err
		}
		return reorder(tx.Experiences, profileID, ids, "experience")
	})
	if err != nil {
		logFailure("Failed to reorder experiences", err, zap.Uint("profile_id", profileID))
		return err
	}

	s.cache.Invalidate(ctx, profileID)
	logger.Log.Info("Experiences reordered", zap.Uint("profile_id", profileID), zap.Int("count", len(ids)))
	return nil
}

func requireExperience(tx *repository.Store, profileID, id uint) (*models.Experience, error) {
	if err := requireProfileExists(tx, profileID); err != nil {
		return nil, err
	}
	exp, err := tx.Experiences.Get(profileID, id)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, notFound("Experience not found with id: %d", id)
	}
	return exp, nil
}
