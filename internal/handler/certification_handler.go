package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Baaaki/resume-backend/internal/dto"
	"github.com/Baaaki/resume-backend/internal/models"
	"github.com/Baaaki/resume-backend/internal/service"
	"github.com/Baaaki/resume-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CertificationHandler struct {
	certifications *service.CertificationService
	today          func() time.Time
}

func NewCertificationHandler(certifications *service.CertificationService, today func() time.Time) *CertificationHandler {
	return &CertificationHandler{certifications: certifications, today: today}
}

// writeList runs fetch for the profile in the path and writes the result.
func (h *CertificationHandler) writeList(c *gin.Context, fetch func(ctx context.Context, profileID uint) ([]models.Certification, error)) {
	profileID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	certs, err := fetch(c.Request.Context(), profileID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCertificationResponses(certs, h.today()))
}

func (h *CertificationHandler) List(c *gin.Context) {
	h.writeList(c, h.certifications.List)
}

func (h *CertificationHandler) ListExpired(c *gin.Context) {
	h.writeList(c, h.certifications.ListExpired)
}

func (h *CertificationHandler) ListExpiringSoon(c *gin.Context) {
	h.writeList(c, h.certifications.ListExpiringSoon)
}

func (h *CertificationHandler) ListByOrganization(c *gin.Context) {
	organization := c.Param("organization")
	h.writeList(c, func(ctx context.Context, profileID uint) ([]models.Certification, error) {
		return h.certifications.ListByOrganization(ctx, profileID, organization)
	})
}

func (h *CertificationHandler) Get(c *gin.Context) {
	profileID, id, ok := childParams(c, "certificationId")
	if !ok {
		return
	}

	cert, err := h.certifications.Get(c.Request.Context(), profileID, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCertificationResponse(cert, h.today()))
}

func (h *CertificationHandler) Create(c *gin.Context) {
	profileID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateCertificationRequest
	if !bindJSON(c, &req) {
		return
	}

	cert, err := h.certifications.Create(c.Request.Context(), profileID, req.ToModel())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewCertificationResponse(cert, h.today()))
}

func (h *CertificationHandler) Update(c *gin.Context) {
	profileID, id, ok := childParams(c, "certificationId")
	if !ok {
		return
	}

	var req dto.UpdateCertificationRequest
	if !bindJSON(c, &req) {
		return
	}

	cert, err := h.certifications.Update(c.Request.Context(), profileID, id, req.Version, req.ApplyTo)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCertificationResponse(cert, h.today()))
}

func (h *CertificationHandler) Delete(c *gin.Context) {
	profileID, id, ok := childParams(c, "certificationId")
	if !ok {
		return
	}

	if err := h.certifications.Delete(c.Request.Context(), profileID, id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteAll removes every certification of the profile.
func (h *CertificationHandler) DeleteAll(c *gin.Context) {
	profileID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	removed, err := h.certifications.DeleteAll(c.Request.Context(), profileID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	logger.Log.Info("Certifications cleared",
		zap.Uint("profile_id", profileID),
		zap.Int64("removed", removed),
	)
	c.Status(http.StatusNoContent)
}

func (h *CertificationHandler) Reorder(c *gin.Context) {
	reorder(c, h.certifications.Reorder)
}
