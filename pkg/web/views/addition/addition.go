package addition

import (
	"github.com/gin-gonic/gin"

	"github.com/agrosilo/silosys/pkg/common"
	"github.com/agrosilo/silosys/pkg/common/code"
	coreAddition "github.com/agrosilo/silosys/pkg/core/addition"
	additionImpl "github.com/agrosilo/silosys/pkg/core/addition/addition"
	"github.com/agrosilo/silosys/pkg/web/views"
)

type Handle struct{ svc coreAddition.Service }

func NewHandle() *Handle { return &Handle{svc: additionImpl.New()} }

func (h *Handle) List(ctx *gin.Context) {
	page := &common.PageReq{}
	if err := ctx.ShouldBindQuery(page); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	page.Normalize()
	resp, err := h.svc.List(ctx, page)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Get(ctx *gin.Context) {
	id, err := views.PathID(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	resp, err := h.svc.Get(ctx, id)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Create(ctx *gin.Context) {
	in := &coreAddition.CreateReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.Create(ctx, in)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	common.ReplyCreated(ctx, resp)
}

func (h *Handle) Update(ctx *gin.Context) {
	id, err := views.PathID(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	in := &coreAddition.UpdateReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.Update(ctx, id, in)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Delete(ctx *gin.Context) {
	id, err := views.PathID(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	if err := h.svc.Delete(ctx, id); err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	common.ReplyNoContent(ctx)
}
