package dto

import (
	"time"

	"github.com/Baaaki/resume-backend/internal/models"
)

type CreateSkillRequest struct {
	Name              string                   `json:"name" binding:"required,notblank,max=100"`
	Category          models.SkillCategory     `json:"category" binding:"required,oneof=PROGRAMMING_LANGUAGE FRAMEWORK DATABASE TOOL METHODOLOGY SOFT_SKILL OTHER"`
	ProficiencyLevel  *models.ProficiencyLevel `json:"proficiencyLevel" binding:"omitnil,oneof=BEGINNER INTERMEDIATE ADVANCED EXPERT"`
	YearsOfExperience *int                     `json:"yearsOfExperience" binding:"omitnil,min=0,max=50"`
	DisplayOrder      *int                     `json:"displayOrder" binding:"omitnil,min=0"`
	Primary           bool                     `json:"primary"`
}

func (r *CreateSkillRequest) ToModel() *models.Skill {
	return &models.Skill{
		Name:              r.Name,
		Category:          r.Category,
		ProficiencyLevel:  r.ProficiencyLevel,
		YearsOfExperience: r.YearsOfExperience,
		DisplayOrder:      intOrZero(r.DisplayOrder),
		Primary:           r.Primary,
	}
}

type UpdateSkillRequest struct {
	Name              *string                  `json:"name" binding:"omitnil,notblank,max=100"`
	Category          *models.SkillCategory    `json:"category" binding:"omitnil,oneof=PROGRAMMING_LANGUAGE FRAMEWORK DATABASE TOOL METHODOLOGY SOFT_SKILL OTHER"`
	ProficiencyLevel  *models.ProficiencyLevel `json:"proficiencyLevel" binding:"omitnil,oneof=BEGINNER INTERMEDIATE ADVANCED EXPERT"`
	YearsOfExperience *int                     `json:"yearsOfExperience" binding:"omitnil,min=0,max=50"`
	DisplayOrder      *int                     `json:"displayOrder" binding:"omitnil,min=0"`
	Primary           *bool                    `json:"primary"`
	Version           *int64                   `json:"version"`
}

func (r *UpdateSkillRequest) ApplyTo(s *models.Skill) {
	setIfPresent(&s.Name, r.Name)
	setIfPresent(&s.Category, r.Category)
	setIfPresent(&s.DisplayOrder, r.DisplayOrder)
	setIfPresent(&s.Primary, r.Primary)
	if r.ProficiencyLevel != nil {
		s.ProficiencyLevel = r.ProficiencyLevel
	}
	if r.YearsOfExperience != nil {
		s.YearsOfExperience = r.YearsOfExperience
	}
}

type SkillResponse struct {
	ID                     uint                     `json:"id"`
	Name                   string                   `json:"name"`
	Category               models.SkillCategory     `json:"category"`
	CategoryDisplayName    string                   `json:"categoryDisplayName"`
	ProficiencyLevel       *models.ProficiencyLevel `json:"proficiencyLevel"`
	ProficiencyDisplayName *string                  `json:"proficiencyDisplayName"`
	YearsOfExperience      *int                     `json:"yearsOfExperience"`
	DisplayOrder           int                      `json:"displayOrder"`
	Primary                bool                     `json:"primary"`
	CreatedAt              time.Time                `json:"createdAt"`
	UpdatedAt              time.Time                `json:"updatedAt"`
	Version                int64                    `json:"version"`
}

func NewSkillResponse(s *models.Skill) SkillResponse {
	resp := SkillResponse{
		ID:                  s.ID,
		Name:                s.Name,
		Category:            s.Category,
		CategoryDisplayName: s.Category.DisplayName(),
		ProficiencyLevel:    s.ProficiencyLevel,
		YearsOfExperience:   s.YearsOfExperience,
		DisplayOrder:        s.DisplayOrder,
		Primary:             s.Primary,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
		Version:             s.Version,
	}
	if s.ProficiencyLevel != nil {
		name := s.ProficiencyLevel.DisplayName()
		resp.ProficiencyDisplayName = &name
	}
	return resp
}

func NewSkillResponses(skills []models.Skill) []SkillResponse {
	out := make([]SkillResponse, len(skills))
	for i := range skills {
		out[i] = NewSkillResponse(&skills[i])
	}
	return out
}
