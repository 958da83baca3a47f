package service

import (
	"context"
	"time"

	"github.com/Baaaki/resume-backend/internal/models"
	"github.com/Baaaki/resume-backend/internal/repository"
	"github.com/Baaaki/resume-backend/pkg/logger"
	"go.uber.org/zap"
)

type SkillService struct {
	store *repository.Store
	cache ProfileCache
	today func() time.Time
}

func NewSkillService(store *repository.Store, cache ProfileCache) *SkillService {
	if cache == nil {
		cache = noopCache{}
	}
	return &SkillService{store: store, cache: cache, today: models.Today}
}

func (s *SkillService) List(ctx context.Context, profileID uint) ([]models.Skill, error) {
	var out []models.Skill
	err := s.store.ReadOnly(ctx, func(tx *repository.Store) error {
		if err := requireProfileExists(tx, profileID); err != nil {
			return err
		}
		var err error
		out, err = tx.Skills.ListByProfile(profileID)
		return err
	})
	return out, err
}

func (s *SkillService) ListPrimary(ctx context.Context, profileID uint) ([]models.Skill, error) {
	var out []models.Skill
	err := s.store.ReadOnly(ctx, func(tx *repository.Store) error {
		if err := requireProfileExists(tx, profileID); err != nil {
			return err
		}
		var err error
		out, err = tx.Skills.ListPrimary(profileID)
		return err
	})
	return out, err
}

func (s *SkillService) ListByCategory(ctx context.Context, profileID uint, category models.SkillCategory) ([]models.Skill, error) {
	if !category.Valid() {
		return nil, invalidf("category", "Unknown skill category: %s", category)
	}
	var out []models.Skill
	err := s.store.ReadOnly(ctx, func(tx *repository.Store) error {
		if err := requireProfileExists(tx, profileID); err != nil {
			return err
		}
		var err error
		out, err = tx.Skills.ListByCategory(profileID, category)
		return err
	})
	return out, err
}

func (s *SkillService) Get(ctx context.Context, profileID, id uint) (*models.Skill, error) {
	var skill *models.Skill
	err := s.store.ReadOnly(ctx, func(tx *repository.Store) error {
		var err error
		skill, err = requireSkill(tx, profileID, id)
		return err
	})
	return skill, err
}

func (s *SkillService) Create(ctx context.Context, profileID uint, skill *models.Skill) (*models.Skill, error) {
	logger.Log.Debug("Creating skill", zap.Uint("profile_id", profileID))

	skill.ProfileID = profileID
	if errs := skill.Validate(s.today()); !errs.Empty() {
		return nil, invalid(errs)
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireProfileExists(tx, profileID); err != nil {
			return err
		}
		if skill.DisplayOrder <= 0 {
			next, err := tx.Skills.NextDisplayOrder(profileID)
			if err != nil {
				return err
			}
			skill.DisplayOrder = next
		}
		return tx.Skills.Create(skill)
	})
	if err != nil {
		logFailure("Failed to create skill", err, zap.Uint("profile_id", profileID))
		return nil, err
	}

	s.cache.Invalidate(ctx, profileID)
	logger.Log.Info("Skill created", zap.Uint("profile_id", profileID), zap.Uint("skill_id", skill.ID))
	return skill, nil
}

func (s *SkillService) Update(ctx context.Context, profileID, id uint, expectedVersion *int64, apply func(*models.Skill)) (*models.Skill, error) {
	var skill *models.Skill
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		skill, err = requireSkill(tx, profileID, id)
		if err != nil {
			return err
		}
		if expectedVersion != nil && *expectedVersion != skill.Version {
			return conflict("Skill", id)
		}

		apply(skill)
		skill.ID, skill.ProfileID = id, profileID
		if errs := skill.Validate(s.today()); !errs.Empty() {
			return invalid(errs)
		}

		return saveVersioned("Skill", id, tx.Skills.Update(skill))
	})
	if err != nil {
		logFailure("Failed to update skill", err, zap.Uint("profile_id", profileID), zap.Uint("skill_id", id))
		return nil, err
	}

	s.cache.Invalidate(ctx, profileID)
	logger.Log.Info("Skill updated", zap.Uint("profile_id", profileID), zap.Uint("skill_id", id))
	return skill, nil
}

func (s *SkillService) Delete(ctx context.Context, profileID, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireProfileExists(tx, profileID); err != nil {
			return err
		}
		deleted, err := tx.Skills.Delete(profileID, id)
		if err != nil {
			return err
		}
		if !deleted {
			return notFound("Skill not found with id: %d", id)
		}
		return nil
	})
	if err != nil {
		logFailure("Failed to delete skill", err, zap.Uint("profile_id", profileID), zap.Uint("skill_id", id))
		return err
	}

	s.cache.Invalidate(ctx, profileID)
	logger.Log.Info("Skill deleted", zap.Uint("profile_id", profileID), zap.Uint("skill_id", id))
	return nil
}

func (s *SkillService) Reorder(ctx context.Context, profileID uint, ids []uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireProfileExists(tx, profileID); err != nil {
			return err
		}
		return reorder(tx.Skills, profileID, ids, "skill")
	})
	if err != nil {
		logFailure("Failed to reorder skills", err, zap.Uint("profile_id", profileID))
		return err
	}

	s.cache.Invalidate(ctx, profileID)
	logger.Log.Info("Skills reordered", zap.Uint("profile_id", profileID), zap.Int("count", len(ids)))
	return nil
}

func requireSkill(tx *repository.Store, profileID, id uint) (*models.Skill, error) {
	if err := requireProfileExists(tx, profileID); err != nil {
		return nil, err
	}
	skill, err := tx.Skills.Get(profileID, id)
	if err != nil {
		return nil, err
	}
	if skill == nil {
		return nil, notFound("Skill not found with id: %d", id)
	}
	return skill, nil
}
