package repository

import (
	"gorm.io/gorm"
)

// owned implements the queries shared by every profile child collection.
// All lookups are scoped to the owning profile so a child id from another
// profile behaves exactly like a missing one.
type owned[T any] struct {
	db    *gorm.DB
	order []string
}

func (o owned[T]) scoped(profileID uint) *gorm.DB {
	return orderBy(o.db.Model(new(T)).Where("profile_id = ?", profileID), o.order)
}

func (o owned[T]) get(profileID, id uint) (*T, error) {
	return firstOrNil[T](o.db.Where("id = ? AND profile_id = ?", id, profileID))
}

func (o owned[T]) list(profileID uint, conds ...func(*gorm.DB) *gorm.DB) ([]T, error) {
	var out []T
	err := o.scoped(profileID).Scopes(conds...).Find(&out).Error
	return out, err
}

// nextDisplayOrder is one past the highest display order in use, starting at 1.
func (o owned[T]) nextDisplayOrder(profileID uint) (int, error) {
	var highest int
	err := o.db.Model(new(T)).
		Where("profile_id = ?", profileID).
		Select("COALESCE(MAX(display_order), 0)").
		Scan(&highest).Error
	return highest + 1, err
}

// countOwned returns how many of ids belong to the profile.
func (o owned[T]) countOwned(profileID uint, ids []uint) (int64, error) {
	var count int64
	err := o.db.Model(new(T)).
		Where("profile_id = ? AND id IN ?", profileID, ids).
		Count(&count).Error
	return count, err
}

// applyOrder sets display_order to the 1-based position of each id.
func (o owned[T]) applyOrder(profileID uint, ids []uint) error {
	for i, id := range ids {
		err := o.db.Model(new(T)).
			Where("id = ? AND profile_id = ?", id, profileID).
			Updates(map[string]any{
				"display_order": i + 1,
				"version":       gorm.Expr("version + 1"),
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (o owned[T]) delete(profileID, id uint) (bool, error) {
	result := o.db.Where("id = ? AND profile_id = ?", id, profileID).Delete(new(T))
	return result.RowsAffected > 0, result.Error
}

func (o owned[T]) deleteAll(profileID uint) (int64, error) {
	result := o.db.Where("profile_id = ?", profileID).Delete(new(T))
	return result.RowsAffected, result.Error
}
