package handler

import (
	"context"
	"net/http"

	"github.com/Baaaki/resume-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type reorderFunc func(ctx context.Context, profileID uint, ids []uint) error

// reorder applies a new display order to one of the profile's collections.
func reorder(c *gin.Context, apply reorderFunc) {
	profileID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req dto.ReorderRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := apply(c.Request.Context(), profileID, req.OrderedIDs); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
