package models

import "time"

type SkillCategory string

const (
	CategoryProgrammingLanguage SkillCategory = "PROGRAMMING_LANGUAGE"
	CategoryFramework           SkillCategory = "FRAMEWORK"
	CategoryDatabase            SkillCategory = "DATABASE"
	CategoryTool                SkillCategory = "TOOL"
	CategoryMethodology         SkillCategory = "METHODOLOGY"
	CategorySoftSkill           SkillCategory = "SOFT_SKILL"
	CategoryOther               SkillCategory = "OTHER"
)

type ProficiencyLevel string

const (
	ProficiencyBeginner     ProficiencyLevel = "BEGINNER"
	ProficiencyIntermediate ProficiencyLevel = "INTERMEDIATE"
	ProficiencyAdvanced     ProficiencyLevel = "ADVANCED"
	ProficiencyExpert       ProficiencyLevel = "EXPERT"
)

const maxYearsOfExperience = 50

type Skill struct {
	ID                uint              `gorm:"primaryKey"`
	ProfileID         uint              `gorm:"not null;index"`
	Name              string            `gorm:"type:varchar(100);not null"`
	Category          SkillCategory     `gorm:"type:varchar(50);not null"`
	ProficiencyLevel  *ProficiencyLevel `gorm:"type:varchar(20)"`
	YearsOfExperience *int
	DisplayOrder      int  `gorm:"not null"`
	Primary           bool `gorm:"column:is_primary;not null"`
	Versioned
}

func (s *Skill) Validate(_ time.Time) FieldErrors {
	errs := FieldErrors{}
	if y := s.YearsOfExperience; y != nil && (*y < 0 || *y > maxYearsOfExperience) {
		errs.Add("yearsOfExperience", "Years of experience must be between 0 and 50")
	}
	return errs
}

func (c SkillCategory) Valid() bool {
	_, ok := categoryDisplayNames[c]
	return ok
}

var categoryDisplayNames = map[SkillCategory]string{
	CategoryProgrammingLanguage: "Programming Language",
	CategoryFramework:           "Framework",
	CategoryDatabase:            "Database",
	CategoryTool:                "Tool",
	CategoryMethodology:         "Methodology",
	CategorySoftSkill:           "Soft Skill",
	CategoryOther:               "Other",
}

func (c SkillCategory) DisplayName() string {
	return categoryDisplayNames[c]
}

var proficiencyDisplayNames = map[ProficiencyLevel]string{
	ProficiencyBeginner:     "Beginner",
	ProficiencyIntermediate: "Intermediate",
	ProficiencyAdvanced:     "Advanced",
	ProficiencyExpert:       "Expert",
}

func (p ProficiencyLevel) DisplayName() string {
	return proficiencyDisplayNames[p]
}
