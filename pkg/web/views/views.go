package views

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/agrosilo/silosys/pkg/common/code"
)

// PathID parses the :id path segment; ids are positive integers.
func PathID(ctx *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, code.ParamErr.WithMsg("invalid id")
	}
	return id, nil
}
