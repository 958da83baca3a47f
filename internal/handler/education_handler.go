package handler

import (
	"net/http"

	"github.com/Baaaki/resume-backend/internal/dto"
	"github.com/Baaaki/resume-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type EducationHandler struct {
	educations *service.EducationService
}

func NewEducationHandler(educations *service.EducationService) *EducationHandler {
	return &EducationHandler{educations: educations}
}

func (h *EducationHandler) List(c *gin.Context) {
	profileID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	edus, err := h.educations.List(c.Request.Context(), profileID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewEducationResponses(edus))
}

func (h *EducationHandler) Get(c *gin.Context) {
	profileID, id, ok := childParams(c, "educationId")
	if !ok {
		return
	}

	edu, err := h.educations.Get(c.Request.Context(), profileID, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewEducationResponse(edu))
}

func (h *EducationHandler) Create(c *gin.Context) {
	profileID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateEducationRequest
	if !bindJSON(c, &req) {
		return
	}

	edu, err := h.educations.Create(c.Request.Context(), profileID, req.ToModel())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewEducationResponse(edu))
}

func (h *EducationHandler) Update(c *gin.Context) {
	profileID, id, ok := childParams(c, "educationId")
	if !ok {
		return
	}

	var req dto.UpdateEducationRequest
	if !bindJSON(c, &req) {
		return
	}

	edu, err := h.educations.Update(c.Request.Context(), profileID, id, req.Version, req.ApplyTo)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewEducationResponse(edu))
}

func (h *EducationHandler) Delete(c *gin.Context) {
	profileID, id, ok := childParams(c, "educationId")
	if !ok {
		return
	}

	if err := h.educations.Delete(c.Request.Context(), profileID, id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *EducationHandler) Reorder(c *gin.Context) {
	reorder(c, h.educations.Reorder)
}
