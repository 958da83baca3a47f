package models

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Experience struct {
	ID           uint            `gorm:"primaryKey"`
	ProfileID    uint            `gorm:"not null;index"`
	CompanyName  string          `gorm:"type:varchar(255);not null"`
	JobTitle     string          `gorm:"type:varchar(255);not null"`
	Location     string          `gorm:"type:varchar(255)"`
	StartDate    datatypes.Date  `gorm:"not null"`
	EndDate      *datatypes.Date
	Current      bool            `gorm:"column:is_current;not null"`
	Description  string          `gorm:"type:text"`
	DisplayOrder int             `gorm:"not null"`
	Versioned

	Achievements []ExperienceAchievement `gorm:"foreignKey:ExperienceID;constraint:OnDelete:CASCADE"`
	Technologies []ExperienceTechnology  `gorm:"foreignKey:ExperienceID;constraint:OnDelete:CASCADE"`
}

type ExperienceAchievement struct {
	ExperienceID uint   `gorm:"primaryKey;autoIncrement:false"`
	Position     int    `gorm:"primaryKey;autoIncrement:false"`
	Achievement  string `gorm:"type:text;not null"`
}

func (ExperienceAchievement) TableName() string {
	return "experience_achievements"
}

type ExperienceTechnology struct {
	ExperienceID uint   `gorm:"primaryKey;autoIncrement:false"`
	Position     int    `gorm:"primaryKey;autoIncrement:false"`
	Technology   string `gorm:"type:varchar(100);not null"`
}

func (ExperienceTechnology) TableName() string {
	return "experience_technologies"
}

// SetCurrent marks the position as ongoing. An ongoing position never has an end date.
func (e *Experience) SetCurrent(current bool) {
	e.Current = current
	if current {
		e.EndDate = nil
	}
}

// BeforeSave keeps the ongoing/end date invariant no matter how the row was populated.
func (e *Experience) BeforeSave(tx *gorm.DB) error {
	e.SetCurrent(e.Current)
	return nil
}

func (e *Experience) AchievementList() []string {
	out := make([]string, 0, len(e.Achievements))
	for _, a := range e.Achievements {
		out = append(out, a.Achievement)
	}
	return out
}

func (e *Experience) SetAchievements(values []string) {
	e.Achievements = make([]ExperienceAchievement, 0, len(values))
	for i, v := range values {
		e.Achievements = append(e.Achievements, ExperienceAchievement{ExperienceID: e.ID, Position: i, Achievement: v})
	}
}

func (e *Experience) TechnologyList() []string {
	out := make([]string, 0, len(e.Technologies))
	for _, t := range e.Technologies {
		out = append(out, t.Technology)
	}
	return out
}

func (e *Experience) SetTechnologies(values []string) {
	e.Technologies = make([]ExperienceTechnology, 0, len(values))
	for i, v := range values {
		e.Technologies = append(e.Technologies, ExperienceTechnology{ExperienceID: e.ID, Position: i, Technology: v})
	}
}

func (e *Experience) TechnologiesAsString() string {
	return strings.Join(e.TechnologyList(), ", ")
}

// Validate checks the date invariants against the given calendar date.
func (e *Experience) Validate(today time.Time) FieldErrors {
	errs := FieldErrors{}
	start := TimeOf(e.StartDate)
	if start.After(DateOf(today)) {
		errs.Add("startDate", "Start date cannot be in the future")
	}
	if e.EndDate != nil && !TimeOf(*e.EndDate).After(start) {
		errs.Add("endDate", "End date must be after start date")
	}
	return errs
}

// Duration renders the time spent in the position, e.g. "2 years, 3 months".
// The end date counts as a worked day and any partial month rounds up.
func (e *Experience) Duration(today time.Time) string {
	var end time.Time
	switch {
	case e.Current:
		end = DateOf(today)
	case e.EndDate != nil:
		end = TimeOf(*e.EndDate)
	default:
		return ""
	}

	months, days := period(TimeOf(e.StartDate), end.AddDate(0, 0, 1))
	years := months / 12
	months %= 12
	if days > 0 {
		months++
		if months >= 12 {
			years++
			months -= 12
		}
	}

	var b strings.Builder
	if years > 0 {
		b.WriteString(plural(years, "year"))
		if months > 0 {
			b.WriteString(", ")
		}
	}
	if months > 0 {
		b.WriteString(plural(months, "month"))
	}
	return b.String()
}

// FormattedDateRange renders "Jan 2020 - Mar 2022" or "Jan 2020 - Present".
func (e *Experience) FormattedDateRange() string {
	const layout = "Jan 2006"
	start := TimeOf(e.StartDate).Format(layout)
	end := ""
	if e.Current {
		end = "Present"
	} else if e.EndDate != nil {
		end = TimeOf(*e.EndDate).Format(layout)
	}
	return start + " - " + end
}

func plural(n int, unit string) string {
	s := strconv.Itoa(n) + " " + unit
	if n != 1 {
		s += "s"
	}
	return s
}
