package handler

import (
	"net/http"
	"time"

	"github.com/Baaaki/resume-backend/internal/dto"
	"github.com/Baaaki/resume-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type ExperienceHandler struct {
	experiences *service.ExperienceService
	today       func() time.Time
}

func NewExperienceHandler(experiences *service.ExperienceService, today func() time.Time) *ExperienceHandler {
	return &ExperienceHandler{experiences: experiences, today: today}
}

func (h *ExperienceHandler) List(c *gin.Context) {
	profileID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	exps, err := h.experiences.List(c.Request.Context(), profileID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewExperienceResponses(exps, h.today()))
}

func (h *ExperienceHandler) ListCurrent(c *gin.Context) {
	profileID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	exps, err := h.experiences.ListCurrent(c.Request.Context(), profileID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewExperienceResponses(exps, h.today()))
}

func (h *ExperienceHandler) Get(c *gin.Context) {
	profileID, id, ok := childParams(c, "experienceId")
	if !ok {
		return
	}

	exp, err := h.experiences.Get(c.Request.Context(), profileID, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewExperienceResponse(exp, h.today()))
}

func (h *ExperienceHandler) Create(c *gin.Context) {
	profileID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateExperienceRequest
	if !bindJSON(c, &req) {
		return
	}

	exp, err := h.experiences.Create(c.Request.Context(), profileID, req.ToModel())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewExperienceResponse(exp, h.today()))
}

func (h *ExperienceHandler) Update(c *gin.Context) {
	profileID, id, ok := childParams(c, "experienceId")
	if !ok {
		return
	}

	var req dto.UpdateExperienceRequest
	if !bindJSON(c, &req) {
		return
	}

	exp, err := h.experiences.Update(c.Request.Context(), profileID, id, req.Version, req.ApplyTo)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewExperienceResponse(exp, h.today()))
}

func (h *ExperienceHandler) Delete(c *gin.Context) {
	profileID, id, ok := childParams(c, "experienceId")
	if !ok {
		return
	}

	if err := h.experiences.Delete(c.Request.Context(), profileID, id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ExperienceHandler) Reorder(c *gin.Context) {
	reorder(c, h.experiences.Reorder)
}
