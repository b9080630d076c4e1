package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// paramID parses a numeric path parameter. Returns false when the value is
// not a positive integer.
func paramID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil || id == 0 {
		return 0, false
	}

	return uint(id), true
}
