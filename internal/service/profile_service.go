package service

import (
	"context"
	"errors"

	"github.com/Baaaki/resume-backend/internal/models"
	"github.com/Baaaki/resume-backend/internal/repository"
	"github.com/Baaaki/resume-backend/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProfileCache stores assembled profiles. Implementations must tolerate
// being unavailable: a miss is always safe.
//
// Get reports a generation on a miss. Set must discard the write when an
// Invalidate for the same profile happened after that generation was read.
type ProfileCache interface {
	Get(ctx context.Context, id uint) (profile *models.Profile, generation int64, ok bool)
	Set(ctx context.Context, profile *models.Profile, generation int64)
	Invalidate(ctx context.Context, id uint)
}

type noopCache struct{}

func (noopCache) Get(context.Context, uint) (*models.Profile, int64, bool) { return nil, 0, false }
func (noopCache) Set(context.Context, *models.Profile, int64)              {}
func (noopCache) Invalidate(context.Context, uint)                         {}

type ProfileService struct {
	store *repository.Store
	cache ProfileCache
}

func NewProfileService(store *repository.Store, cache ProfileCache) *ProfileService {
	if cache == nil {
		cache = noopCache{}
	}
	return &ProfileService{store: store, cache: cache}
}

func (s *ProfileService) Create(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	logger.Log.Debug("Creating profile", zap.String("email", profile.Email))

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		exists, err := tx.Profiles.ExistsByEmail(profile.Email)
		if err != nil {
			return err
		}
		if exists {
			return duplicate("Profile with email %s already exists", profile.Email)
		}
		profile.Version = 0
		profile.Active = true
		return tx.Profiles.Create(profile)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = duplicate("Profile with email %s already exists", profile.Email)
	}
	if err != nil {
		logFailure("Failed to create profile", err, zap.String("email", profile.Email))
		return nil, err
	}

	logger.Log.Info("Profile created", zap.Uint("profile_id", profile.ID), zap.String("email", profile.Email))
	return profile, nil
}

func (s *ProfileService) Get(ctx context.Context, id uint) (*models.Profile, error) {
	var profile *models.Profile
	err := s.store.ReadOnly(ctx, func(tx *repository.Store) error {
		var err error
		profile, err = requireProfile(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile *models.Profile
	err := s.store.ReadOnly(ctx, func(tx *repository.Store) error {
		var err error
		profile, err = tx.Profiles.GetByEmail(email)
		return err
	})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, notFound("Profile not found with email: %s", email)
	}
	return profile, nil
}

func (s *ProfileService) ListActive(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	err := s.store.ReadOnly(ctx, func(tx *repository.Store) error {
		var err error
		profiles, err = tx.Profiles.ListActive()
		return err
	})
	return profiles, err
}

// GetFull returns the profile with all four collections, served from cache when possible.
func (s *ProfileService) GetFull(ctx context.Context, id uint) (*models.Profile, error) {
	cached, generation, ok := s.cache.Get(ctx, id)
	if ok {
		logger.Log.Debug("Profile served from cache", zap.Uint("profile_id", id))
		return cached, nil
	}

	var profile *models.Profile
	err := s.store.ReadOnly(ctx, func(tx *repository.Store) error {
		var err error
		profile, err = tx.Profiles.GetWithRelations(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, notFound("Profile not found with id: %d", id)
	}

	s.cache.Set(ctx, profile, generation)
	return profile, nil
}

// Update loads the profile, lets apply overwrite the fields present in the
// request and saves it. expectedVersion, when set, must match the stored version.
func (s *ProfileService) Update(ctx context.Context, id uint, expectedVersion *int64, apply func(*models.Profile)) (*models.Profile, error) {
	logger.Log.Debug("Updating profile", zap.Uint("profile_id", id))

	var profile *models.Profile
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		profile, err = requireProfile(tx, id)
		if err != nil {
			return err
		}
		if expectedVersion != nil && *expectedVersion != profile.Version {
			return conflict("Profile", id)
		}

		previousEmail := profile.Email
		apply(profile)
		profile.ID = id

		if profile.Email != previousEmail {
			taken, err := tx.Profiles.EmailTakenByOther(profile.Email, id)
			if err != nil {
				return err
			}
			if taken {
				return duplicate("Email %s is already in use by another profile", profile.Email)
			}
		}

		return saveVersioned("Profile", id, tx.Profiles.Update(profile))
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = duplicate("Email %s is already in use by another profile", profile.Email)
	}
	if err != nil {
		logFailure("Failed to update profile", err, zap.Uint("profile_id", id))
		return nil, err
	}

	s.cache.Invalidate(ctx, id)
	logger.Log.Info("Profile updated", zap.Uint("profile_id", id), zap.Int64("version", profile.Version))
	return profile, nil
}

// Delete removes the profile and all of its children.
func (s *ProfileService) Delete(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		deleted, err := tx.Profiles.Delete(id)
		if err != nil {
			return err
		}
		if !deleted {
			return notFound("Profile not found with id: %d", id)
		}
		return nil
	})
	if err != nil {
		logFailure("Failed to delete profile", err, zap.Uint("profile_id", id))
		return err
	}

	s.cache.Invalidate(ctx, id)
	logger.Log.Info("Profile deleted", zap.Uint("profile_id", id))
	return nil
}

// Deactivate hides the profile from active listings without deleting anything.
func (s *ProfileService) Deactivate(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		profile, err := requireProfile(tx, id)
		if err != nil {
			return err
		}
		profile.Active = false
		return saveVersioned("Profile", id, tx.Profiles.Update(profile))
	})
	if err != nil {
		logFailure("Failed to deactivate profile", err, zap.Uint("profile_id", id))
		return err
	}

	s.cache.Invalidate(ctx, id)
	logger.Log.Info("Profile deactivated", zap.Uint("profile_id", id))
	return nil
}

func requireProfile(tx *repository.Store, id uint) (*models.Profile, error) {
	profile, err := tx.Profiles.GetByID(id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, notFound("Profile not found with id: %d", id)
	}
	return profile, nil
}

func requireProfileExists(tx *repository.Store, id uint) error {
	exists, err := tx.Profiles.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return notFound("Profile not found with id: %d", id)
	}
	return nil
}

// saveVersioned maps a repository version conflict onto ErrConflict.
func saveVersioned(entity string, id uint, err error) error {
	if errors.Is(err, repository.ErrVersionConflict) {
		return conflict(entity, id)
	}
	return err
}

// logFailure logs business rejections at warn and everything else at error.
func logFailure(msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	var svcErr *Error
	if errors.As(err, &svcErr) {
		logger.Log.Warn(msg, fields...)
		return
	}
	logger.Log.Error(msg, fields...)
}
