package dto

import (
	"time"

	"github.com/Baaaki/resume-backend/internal/models"
)

type CreateEducationRequest struct {
	InstitutionName string     `json:"institutionName" binding:"required,notblank,max=255"`
	Degree          string     `json:"degree" binding:"required,notblank,max=255"`
	FieldOfStudy    string     `json:"fieldOfStudy" binding:"max=255"`
	StartDate       *LocalDate `json:"startDate"`
	GraduationDate  *LocalDate `json:"graduationDate"`
	Grade           string     `json:"grade" binding:"max=10"`
	Description     string     `json:"description"`
	DisplayOrder    *int       `json:"displayOrder" binding:"omitnil,min=0"`
}

func (r *CreateEducationRequest) ToModel() *models.Education {
	return &models.Education{
		InstitutionName: r.InstitutionName,
		Degree:          r.Degree,
		FieldOfStudy:    r.FieldOfStudy,
		StartDate:       toDatePtr(r.StartDate),
		GraduationDate:  toDatePtr(r.GraduationDate),
		Grade:           r.Grade,
		Description:     r.Description,
		DisplayOrder:    intOrZero(r.DisplayOrder),
	}
}

type UpdateEducationRequest struct {
	InstitutionName *string    `json:"institutionName" binding:"omitnil,notblank,max=255"`
	Degree          *string    `json:"degree" binding:"omitnil,notblank,max=255"`
	FieldOfStudy    *string    `json:"fieldOfStudy" binding:"omitnil,max=255"`
	StartDate       *LocalDate `json:"startDate"`
	GraduationDate  *LocalDate `json:"graduationDate"`
	Grade           *string    `json:"grade" binding:"omitnil,max=10"`
	Description     *string    `json:"description"`
	DisplayOrder    *int       `json:"displayOrder" binding:"omitnil,min=0"`
	Version         *int64     `json:"version"`
}

func (r *UpdateEducationRequest) ApplyTo(e *models.Education) {
	setIfPresent(&e.InstitutionName, r.InstitutionName)
	setIfPresent(&e.Degree, r.Degree)
	setIfPresent(&e.FieldOfStudy, r.FieldOfStudy)
	setIfPresent(&e.Grade, r.Grade)
	setIfPresent(&e.Description, r.Description)
	setIfPresent(&e.DisplayOrder, r.DisplayOrder)
	if r.StartDate != nil {
		e.StartDate = toDatePtr(r.StartDate)
	}
	if r.GraduationDate != nil {
		e.GraduationDate = toDatePtr(r.GraduationDate)
	}
}

type EducationResponse struct {
	ID              uint       `json:"id"`
	InstitutionName string     `json:"institutionName"`
	Degree          string     `json:"degree"`
	FieldOfStudy    string     `json:"fieldOfStudy,omitempty"`
	StartDate       *LocalDate `json:"startDate"`
	GraduationDate  *LocalDate `json:"graduationDate"`
	Grade           string     `json:"grade,omitempty"`
	Description     string     `json:"description,omitempty"`
	DisplayOrder    int        `json:"displayOrder"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	Version         int64      `json:"version"`
}

func NewEducationResponse(e *models.Education) EducationResponse {
	return EducationResponse{
		ID:              e.ID,
		InstitutionName: e.InstitutionName,
		Degree:          e.Degree,
		FieldOfStudy:    e.FieldOfStudy,
		StartDate:       fromDatePtr(e.StartDate),
		GraduationDate:  fromDatePtr(e.GraduationDate),
		Grade:           e.Grade,
		Description:     e.Description,
		DisplayOrder:    e.DisplayOrder,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
		Version:         e.Version,
	}
}

func NewEducationResponses(edus []models.Education) []EducationResponse {
	out := make([]EducationResponse, len(edus))
	for i := range edus {
		out[i] = NewEducationResponse(&edus[i])
	}
	return out
}
