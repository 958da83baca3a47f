package handler

import (
	"net/http"

	"github.com/Baaaki/resume-backend/internal/dto"
	"github.com/Baaaki/resume-backend/internal/models"
	"github.com/Baaaki/resume-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type SkillHandler struct {
	skills *service.SkillService
}

func NewSkillHandler(skills *service.SkillService) *SkillHandler {
	return &SkillHandler{skills: skills}
}

// List returns every skill, or only one category when ?category= is set.
func (h *SkillHandler) List(c *gin.Context) {
	profileID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var (
		skills []models.Skill
		err    error
	)
	if category := c.Query("category"); category != "" {
		skills, err = h.skills.ListByCategory(c.Request.Context(), profileID, models.SkillCategory(category))
	} else {
		skills, err = h.skills.List(c.Request.Context(), profileID)
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSkillResponses(skills))
}

func (h *SkillHandler) ListPrimary(c *gin.Context) {
	profileID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	skills, err := h.skills.ListPrimary(c.Request.Context(), profileID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSkillResponses(skills))
}

func (h *SkillHandler) Get(c *gin.Context) {
	profileID, id, ok := childParams(c, "skillId")
	if !ok {
		return
	}

	skill, err := h.skills.Get(c.Request.Context(), profileID, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSkillResponse(skill))
}

func (h *SkillHandler) Create(c *gin.Context) {
	profileID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateSkillRequest
	if !bindJSON(c, &req) {
		return
	}

	skill, err := h.skills.Create(c.Request.Context(), profileID, req.ToModel())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSkillResponse(skill))
}

func (h *SkillHandler) Update(c *gin.Context) {
	profileID, id, ok := childParams(c, "skillId")
	if !ok {
		return
	}

	var req dto.UpdateSkillRequest
	if !bindJSON(c, &req) {
		return
	}

	skill, err := h.skills.Update(c.Request.Context(), profileID, id, req.Version, req.ApplyTo)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSkillResponse(skill))
}

func (h *SkillHandler) Delete(c *gin.Context) {
	profileID, id, ok := childParams(c, "skillId")
	if !ok {
		return
	}

	if err := h.skills.Delete(c.Request.Context(), profileID, id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SkillHandler) Reorder(c *gin.Context) {
	reorder(c, h.skills.Reorder)
}
