package models

import (
	"time"

	"gorm.io/datatypes"
)

type Education struct {
	ID              uint   `gorm:"primaryKey"`
	ProfileID       uint   `gorm:"not null;index"`
	InstitutionName string `gorm:"type:varchar(255);not null"`
	Degree          string `gorm:"type:varchar(255);not null"`
	FieldOfStudy    string `gorm:"type:varchar(255)"`
	StartDate       *datatypes.Date
	GraduationDate  *datatypes.Date // nil while ongoing
	Grade           string          `gorm:"type:varchar(10)"`
	Description     string          `gorm:"type:text"`
	DisplayOrder    int             `gorm:"not null"`
	Versioned
}

func (Education) TableName() string {
	return "education"
}

func (e *Education) Ongoing() bool {
	return e.GraduationDate == nil
}

func (e *Education) Validate(today time.Time) FieldErrors {
	errs := FieldErrors{}
	if e.StartDate != nil && TimeOf(*e.StartDate).After(DateOf(today)) {
		errs.Add("startDate", "Start date cannot be in the future")
	}
	if e.StartDate != nil && e.GraduationDate != nil && TimeOf(*e.GraduationDate).Before(TimeOf(*e.StartDate)) {
		errs.Add("graduationDate", "Graduation date must be on or after start date")
	}
	return errs
}
