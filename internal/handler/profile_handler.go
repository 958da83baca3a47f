package handler

import (
	"net/http"
	"time"

	"github.com/Baaaki/resume-backend/internal/dto"
	"github.com/Baaaki/resume-backend/internal/export"
	"github.com/Baaaki/resume-backend/internal/models"
	"github.com/Baaaki/resume-backend/internal/service"
	"github.com/Baaaki/resume-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	profiles *service.ProfileService
	today    func() time.Time
}

func NewProfileHandler(profiles *service.ProfileService, today func() time.Time) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, today: today}
}

func (h *ProfileHandler) Create(c *gin.Context) {
	var req dto.CreateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profiles.Create(c.Request.Context(), req.ToModel())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewProfileResponse(profile))
}

func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	profile, err := h.profiles.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProfileResponse(profile))
}

func (h *ProfileHandler) GetByEmail(c *gin.Context) {
	profile, err := h.profiles.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProfileResponse(profile))
}

func (h *ProfileHandler) ListActive(c *gin.Context) {
	profiles, err := h.profiles.ListActive(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProfileResponses(profiles))
}

// GetFull returns the profile with every collection and derived field.
func (h *ProfileHandler) GetFull(c *gin.Context) {
	profile, ok := h.loadFull(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.NewFullProfileResponse(profile, h.today()))
}

// Export streams the full profile as an XLSX download.
func (h *ProfileHandler) Export(c *gin.Context) {
	profile, ok := h.loadFull(c)
	if !ok {
		return
	}

	data, err := export.ProfileWorkbook(profile, h.today())
	if err != nil {
		_ = c.Error(err)
		return
	}

	logger.Log.Info("Profile exported",
		zap.Uint("profile_id", profile.ID),
		zap.Int("bytes", len(data)),
	)

	c.Header("Content-Disposition", `attachment; filename="`+export.FileName(profile)+`"`)
	c.Data(http.StatusOK, export.ContentType, data)
}

func (h *ProfileHandler) loadFull(c *gin.Context) (*models.Profile, bool) {
	id, ok := uintParam(c, "id")
	if !ok {
		return nil, false
	}

	profile, err := h.profiles.GetFull(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return nil, false
	}
	return profile, true
}

func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), id, req.Version, req.ApplyTo)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProfileResponse(profile))
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.profiles.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Deactivate hides the profile from the active listing without deleting it.
func (h *ProfileHandler) Deactivate(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.profiles.Deactivate(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
