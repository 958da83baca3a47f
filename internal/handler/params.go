package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// uintParam parses a positive numeric path parameter.
func uintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		if err == nil {
			err = errors.New("id must be positive")
		}
		_ = c.Error(&requestError{err: err, message: "Invalid value for parameter " + name + ": " + raw})
		return 0, false
	}
	return uint(id), true
}

// childParams parses the owning profile id and the child id.
func childParams(c *gin.Context, childParam string) (profileID, id uint, ok bool) {
	if profileID, ok = uintParam(c, "id"); !ok {
		return 0, 0, false
	}
	if id, ok = uintParam(c, childParam); !ok {
		return 0, 0, false
	}
	return profileID, id, true
}
