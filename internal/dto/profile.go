package dto

import (
	"time"

	"github.com/Baaaki/resume-backend/internal/models"
)

type CreateProfileRequest struct {
	FirstName   string `json:"firstName" binding:"required,notblank,max=100"`
	LastName    string `json:"lastName" binding:"required,notblank,max=100"`
	Email       string `json:"email" binding:"required,email,max=255"`
	Phone       string `json:"phone" binding:"max=20"`
	Location    string `json:"location" binding:"max=255"`
	LinkedInURL string `json:"linkedInUrl" binding:"omitempty,url,max=255"`
	GithubURL   string `json:"githubUrl" binding:"omitempty,url,max=255"`
	WebsiteURL  string `json:"websiteUrl" binding:"omitempty,url,max=255"`
	Title       string `json:"title" binding:"required,notblank,max=255"`
	Summary     string `json:"summary" binding:"max=5000"`
}

func (r *CreateProfileRequest) ToModel() *models.Profile {
	return &models.Profile{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		Location:    r.Location,
		LinkedInURL: r.LinkedInURL,
		GithubURL:   r.GithubURL,
		WebsiteURL:  r.WebsiteURL,
		Title:       r.Title,
		Summary:     r.Summary,
		Active:      true,
	}
}

// UpdateProfileRequest only overwrites the fields that are present.
type UpdateProfileRequest struct {
	FirstName   *string `json:"firstName" binding:"omitnil,notblank,max=100"`
	LastName    *string `json:"lastName" binding:"omitnil,notblank,max=100"`
	Email       *string `json:"email" binding:"omitnil,email,max=255"`
	Phone       *string `json:"phone" binding:"omitnil,max=20"`
	Location    *string `json:"location" binding:"omitnil,max=255"`
	LinkedInURL *string `json:"linkedInUrl" binding:"omitnil,optionalurl,max=255"`
	GithubURL   *string `json:"githubUrl" binding:"omitnil,optionalurl,max=255"`
	WebsiteURL  *string `json:"websiteUrl" binding:"omitnil,optionalurl,max=255"`
	Title       *string `json:"title" binding:"omitnil,notblank,max=255"`
	Summary     *string `json:"summary" binding:"omitnil,max=5000"`
	Active      *bool   `json:"active"`
	Version     *int64  `json:"version"`
}

func (r *UpdateProfileRequest) ApplyTo(p *models.Profile) {
	setIfPresent(&p.FirstName, r.FirstName)
	setIfPresent(&p.LastName, r.LastName)
	setIfPresent(&p.Email, r.Email)
	setIfPresent(&p.Phone, r.Phone)
	setIfPresent(&p.Location, r.Location)
	setIfPresent(&p.LinkedInURL, r.LinkedInURL)
	setIfPresent(&p.GithubURL, r.GithubURL)
	setIfPresent(&p.WebsiteURL, r.WebsiteURL)
	setIfPresent(&p.Title, r.Title)
	setIfPresent(&p.Summary, r.Summary)
	setIfPresent(&p.Active, r.Active)
}

type ProfileResponse struct {
	ID          uint      `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Location    string    `json:"location,omitempty"`
	LinkedInURL string    `json:"linkedInUrl,omitempty"`
	GithubURL   string    `json:"githubUrl,omitempty"`
	WebsiteURL  string    `json:"websiteUrl,omitempty"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Version     int64     `json:"version"`
}

// FullProfileResponse is a profile together with its four collections.
type FullProfileResponse struct {
	ProfileResponse
	Experiences    []ExperienceResponse    `json:"experiences"`
	Educations     []EducationResponse     `json:"educations"`
	Skills         []SkillResponse         `json:"skills"`
	Certifications []CertificationResponse `json:"certifications"`
}

func NewProfileResponse(p *models.Profile) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		FullName:    p.FullName(),
		Email:       p.Email,
		Phone:       p.Phone,
		Location:    p.Location,
		LinkedInURL: p.LinkedInURL,
		GithubURL:   p.GithubURL,
		WebsiteURL:  p.WebsiteURL,
		Title:       p.Title,
		Summary:     p.Summary,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

func NewProfileResponses(profiles []models.Profile) []ProfileResponse {
	out := make([]ProfileResponse, len(profiles))
	for i := range profiles {
		out[i] = NewProfileResponse(&profiles[i])
	}
	return out
}

// NewFullProfileResponse computes derived child fields against today.
func NewFullProfileResponse(p *models.Profile, today time.Time) FullProfileResponse {
	return FullProfileResponse{
		ProfileResponse: NewProfileResponse(p),
		Experiences:     NewExperienceResponses(p.Experiences, today),
		Educations:      NewEducationResponses(p.Educations),
		Skills:          NewSkillResponses(p.Skills),
		Certifications:  NewCertificationResponses(p.Certifications, today),
	}
}

func setIfPresent[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
