package models

import "time"

// Versioned carries the optimistic lock counter and audit timestamps of every
// profile aggregate row.
type Versioned struct {
	Version   int64 `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (v *Versioned) GetVersion() int64 {
	return v.Version
}

func (v *Versioned) SetVersion(version int64) {
	v.Version = version
}

// FieldErrors maps a json field name to a human readable reason.
type FieldErrors map[string]string

func (f FieldErrors) Add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

func (f FieldErrors) Empty() bool {
	return len(f) == 0
}
