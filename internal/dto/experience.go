package dto

import (
	"time"

	"github.com/Baaaki/resume-backend/internal/models"
)

type CreateExperienceRequest struct {
	CompanyName  string     `json:"companyName" binding:"required,notblank,max=255"`
	JobTitle     string     `json:"jobTitle" binding:"required,notblank,max=255"`
	Location     string     `json:"location" binding:"max=255"`
	StartDate    *LocalDate `json:"startDate" binding:"required"`
	EndDate      *LocalDate `json:"endDate"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
	Achievements []string   `json:"achievements" binding:"dive,notblank"`
	Technologies []string   `json:"technologies" binding:"dive,notblank,max=100"`
	DisplayOrder *int       `json:"displayOrder" binding:"omitnil,min=0"`
}

func (r *CreateExperienceRequest) ToModel() *models.Experience {
	exp := &models.Experience{
		CompanyName:  r.CompanyName,
		JobTitle:     r.JobTitle,
		Location:     r.Location,
		StartDate:    toDate(r.StartDate),
		EndDate:      toDatePtr(r.EndDate),
		Description:  r.Description,
		DisplayOrder: intOrZero(r.DisplayOrder),
	}
	exp.SetCurrent(r.Current)
	exp.SetAchievements(r.Achievements)
	exp.SetTechnologies(r.Technologies)
	return exp
}

// UpdateExperienceRequest only overwrites the fields that are present. A list
// sent as [] clears it, an absent list is left alone.
type UpdateExperienceRequest struct {
	CompanyName  *string    `json:"companyName" binding:"omitnil,notblank,max=255"`
	JobTitle     *string    `json:"jobTitle" binding:"omitnil,notblank,max=255"`
	Location     *string    `json:"location" binding:"omitnil,max=255"`
	StartDate    *LocalDate `json:"startDate"`
	EndDate      *LocalDate `json:"endDate"`
	Current      *bool      `json:"current"`
	Description  *string    `json:"description"`
	Achievements []string   `json:"achievements" binding:"omitnil,dive,notblank"`
	Technologies []string   `json:"technologies" binding:"omitnil,dive,notblank,max=100"`
	DisplayOrder *int       `json:"displayOrder" binding:"omitnil,min=0"`
	Version      *int64     `json:"version"`
}

func (r *UpdateExperienceRequest) ApplyTo(e *models.Experience) {
	setIfPresent(&e.CompanyName, r.CompanyName)
	setIfPresent(&e.JobTitle, r.JobTitle)
	setIfPresent(&e.Location, r.Location)
	setIfPresent(&e.Description, r.Description)
	setIfPresent(&e.DisplayOrder, r.DisplayOrder)
	if r.StartDate != nil {
		e.StartDate = toDate(r.StartDate)
	}
	if r.EndDate != nil {
		e.EndDate = toDatePtr(r.EndDate)
	}
	if r.Current != nil {
		e.SetCurrent(*r.Current)
	}
	if r.Achievements != nil {
		e.SetAchievements(r.Achievements)
	}
	if r.Technologies != nil {
		e.SetTechnologies(r.Technologies)
	}
}

type ExperienceResponse struct {
	ID                 uint       `json:"id"`
	CompanyName        string     `json:"companyName"`
	JobTitle           string     `json:"jobTitle"`
	Location           string     `json:"location,omitempty"`
	StartDate          LocalDate  `json:"startDate"`
	EndDate            *LocalDate `json:"endDate"`
	Current            bool       `json:"current"`
	Description        string     `json:"description,omitempty"`
	Achievements       []string   `json:"achievements"`
	Technologies       []string   `json:"technologies"`
	DisplayOrder       int        `json:"displayOrder"`
	Duration           string     `json:"duration"`
	FormattedDateRange string     `json:"formattedDateRange"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
	Version            int64      `json:"version"`
}

func NewExperienceResponse(e *models.Experience, today time.Time) ExperienceResponse {
	return ExperienceResponse{
		ID:                 e.ID,
		CompanyName:        e.CompanyName,
		JobTitle:           e.JobTitle,
		Location:           e.Location,
		StartDate:          fromDate(e.StartDate),
		EndDate:            fromDatePtr(e.EndDate),
		Current:            e.Current,
		Description:        e.Description,
		Achievements:       nonNil(e.AchievementList()),
		Technologies:       nonNil(e.TechnologyList()),
		DisplayOrder:       e.DisplayOrder,
		Duration:           e.Duration(today),
		FormattedDateRange: e.FormattedDateRange(),
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
		Version:            e.Version,
	}
}

func NewExperienceResponses(exps []models.Experience, today time.Time) []ExperienceResponse {
	out := make([]ExperienceResponse, len(exps))
	for i := range exps {
		out[i] = NewExperienceResponse(&exps[i], today)
	}
	return out
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
