package models

import (
	"time"

	"gorm.io/datatypes"
)

// expiringSoonWindow is how far ahead a certification counts as expiring soon.
const expiringSoonWindow = 3

type Certification struct {
	ID                  uint           `gorm:"primaryKey"`
	ProfileID           uint           `gorm:"not null;index"`
	Name                string         `gorm:"type:varchar(255);not null"`
	IssuingOrganization string         `gorm:"type:varchar(255);not null"`
	CredentialID        string         `gorm:"type:varchar(255)"`
	CredentialURL       string         `gorm:"column:credential_url;type:varchar(500)"`
	DateObtained        datatypes.Date `gorm:"not null"`
	ExpirationDate      *datatypes.Date
	DoesNotExpire       bool   `gorm:"not null"`
	Description         string `gorm:"type:text"`
	DisplayOrder        int    `gorm:"not null"`
	Versioned
}

func (c *Certification) IsExpired(today time.Time) bool {
	if c.DoesNotExpire || c.ExpirationDate == nil {
		return false
	}
	return DateOf(today).After(TimeOf(*c.ExpirationDate))
}

func (c *Certification) IsExpiringSoon(today time.Time) bool {
	if c.DoesNotExpire || c.ExpirationDate == nil || c.IsExpired(today) {
		return false
	}
	return AddMonths(DateOf(today), expiringSoonWindow).After(TimeOf(*c.ExpirationDate))
}

func (c *Certification) Validate(today time.Time) FieldErrors {
	errs := FieldErrors{}
	obtained := TimeOf(c.DateObtained)
	if obtained.After(DateOf(today)) {
		errs.Add("dateObtained", "Date obtained cannot be in the future")
	}
	if !c.DoesNotExpire && c.ExpirationDate != nil && !TimeOf(*c.ExpirationDate).After(obtained) {
		errs.Add("expirationDate", "Expiration date must be after date obtained")
	}
	return errs
}
