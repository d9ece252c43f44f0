package grain

import (
	"github.com/gin-gonic/gin"

	"github.com/agrosilo/silosys/pkg/common"
	coreGrain "github.com/agrosilo/silosys/pkg/core/grain"
	grainImpl "github.com/agrosilo/silosys/pkg/core/grain/grain"
)

type Handle struct{ svc coreGrain.Service }

func NewHandle() *Handle { return &Handle{svc: grainImpl.New()} }

func (h *Handle) ListGrains(ctx *gin.Context) {
	resp, err := h.svc.ListGrains(ctx)
	common.Reply(ctx, err, resp)
}

func (h *Handle) ListPlots(ctx *gin.Context) {
	resp, err := h.svc.ListPlots(ctx)
	common.Reply(ctx, err, resp)
}
