package repository

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrVersionConflict is returned when a row changed since it was read.
	ErrVersionConflict = errors.New("entity was modified concurrently")
)

// Store bundles the repositories that share one *gorm.DB (or transaction).
type Store struct {
	db *gorm.DB

	Users          *UserRepository
	Profiles       *ProfileRepository
	Experiences    *ExperienceRepository
	Educations     *EducationRepository
	Skills         *SkillRepository
	Certifications *CertificationRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:             db,
		Users:          NewUserRepository(db),
		Profiles:       NewProfileRepository(db),
		Experiences:    NewExperienceRepository(db),
		Educations:     NewEducationRepository(db),
		Skills:         NewSkillRepository(db),
		Certifications: NewCertificationRepository(db),
	}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn in a read-write transaction. Any error rolls back everything fn did.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// ReadOnly runs fn in a read-only transaction.
func (s *Store) ReadOnly(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	}, &sql.TxOptions{ReadOnly: true})
}

type versioned interface {
	GetVersion() int64
	SetVersion(version int64)
}

// updateVersioned writes every column of model, guarded by the version it was read at.
func updateVersioned(db *gorm.DB, model versioned) error {
	current := model.GetVersion()
	model.SetVersion(current + 1)

	result := db.Model(model).
		Where("version = ?", current).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(model)
	if result.Error != nil {
		model.SetVersion(current)
		return result.Error
	}
	if result.RowsAffected == 0 {
		model.SetVersion(current)
		return ErrVersionConflict
	}
	return nil
}

func firstOrNil[T any](query *gorm.DB) (*T, error) {
	var out T
	if err := query.First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}
