package dto

import (
	"time"

	"github.com/Baaaki/resume-backend/internal/models"
)

type CreateCertificationRequest struct {
	Name                string     `json:"name" binding:"required,notblank,max=255"`
	IssuingOrganization string     `json:"issuingOrganization" binding:"required,notblank,max=255"`
	CredentialID        string     `json:"credentialId" binding:"max=100"`
	CredentialURL       string     `json:"credentialUrl" binding:"omitempty,url,max=500"`
	DateObtained        *LocalDate `json:"dateObtained" binding:"required"`
	ExpirationDate      *LocalDate `json:"expirationDate"`
	DoesNotExpire       bool       `json:"doesNotExpire"`
	Description         string     `json:"description"`
	DisplayOrder        *int       `json:"displayOrder" binding:"omitnil,min=0"`
}

func (r *CreateCertificationRequest) ToModel() *models.Certification {
	return &models.Certification{
		Name:                r.Name,
		IssuingOrganization: r.IssuingOrganization,
		CredentialID:        r.CredentialID,
		CredentialURL:       r.CredentialURL,
		DateObtained:        toDate(r.DateObtained),
		ExpirationDate:      toDatePtr(r.ExpirationDate),
		DoesNotExpire:       r.DoesNotExpire,
		Description:         r.Description,
		DisplayOrder:        intOrZero(r.DisplayOrder),
	}
}

type UpdateCertificationRequest struct {
	Name                *string    `json:"name" binding:"omitnil,notblank,max=255"`
	IssuingOrganization *string    `json:"issuingOrganization" binding:"omitnil,notblank,max=255"`
	CredentialID        *string    `json:"credentialId" binding:"omitnil,max=100"`
	CredentialURL       *string    `json:"credentialUrl" binding:"omitnil,optionalurl,max=500"`
	DateObtained        *LocalDate `json:"dateObtained"`
	ExpirationDate      *LocalDate `json:"expirationDate"`
	DoesNotExpire       *bool      `json:"doesNotExpire"`
	Description         *string    `json:"description"`
	DisplayOrder        *int       `json:"displayOrder" binding:"omitnil,min=0"`
	Version             *int64     `json:"version"`
}

func (r *UpdateCertificationRequest) ApplyTo(c *models.Certification) {
	setIfPresent(&c.Name, r.Name)
	setIfPresent(&c.IssuingOrganization, r.IssuingOrganization)
	setIfPresent(&c.CredentialID, r.CredentialID)
	setIfPresent(&c.CredentialURL, r.CredentialURL)
	setIfPresent(&c.DoesNotExpire, r.DoesNotExpire)
	setIfPresent(&c.Description, r.Description)
	setIfPresent(&c.DisplayOrder, r.DisplayOrder)
	if r.DateObtained != nil {
		c.DateObtained = toDate(r.DateObtained)
	}
	if r.ExpirationDate != nil {
		c.ExpirationDate = toDatePtr(r.ExpirationDate)
	}
}

type CertificationResponse struct {
	ID                  uint       `json:"id"`
	Name                string     `json:"name"`
	IssuingOrganization string     `json:"issuingOrganization"`
	CredentialID        string     `json:"credentialId,omitempty"`
	CredentialURL       string     `json:"credentialUrl,omitempty"`
	DateObtained        LocalDate  `json:"dateObtained"`
	ExpirationDate      *LocalDate `json:"expirationDate"`
	DoesNotExpire       bool       `json:"doesNotExpire"`
	Description         string     `json:"description,omitempty"`
	DisplayOrder        int        `json:"displayOrder"`
	Expired             bool       `json:"expired"`
	ExpiringSoon        bool       `json:"expiringSoon"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
	Version             int64      `json:"version"`
}

func NewCertificationResponse(c *models.Certification, today time.Time) CertificationResponse {
	return CertificationResponse{
		ID:                  c.ID,
		Name:                c.Name,
		IssuingOrganization: c.IssuingOrganization,
		CredentialID:        c.CredentialID,
		CredentialURL:       c.CredentialURL,
		DateObtained:        fromDate(c.DateObtained),
		ExpirationDate:      fromDatePtr(c.ExpirationDate),
		DoesNotExpire:       c.DoesNotExpire,
		Description:         c.Description,
		DisplayOrder:        c.DisplayOrder,
		Expired:             c.IsExpired(today),
		ExpiringSoon:        c.IsExpiringSoon(today),
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
		Version:             c.Version,
	}
}

func NewCertificationResponses(certs []models.Certification, today time.Time) []CertificationResponse {
	out := make([]CertificationResponse, len(certs))
	for i := range certs {
		out[i] = NewCertificationResponse(&certs[i], today)
	}
	return out
}
