package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/agrosilo/silosys/pkg/common"
	"github.com/agrosilo/silosys/pkg/common/code"
	coreAccount "github.com/agrosilo/silosys/pkg/core/account"
	accountImpl "github.com/agrosilo/silosys/pkg/core/account/account"
	authmw "github.com/agrosilo/silosys/pkg/middleware/auth"
)

type Handle struct{ svc coreAccount.Service }

func NewHandle() *Handle { return &Handle{svc: accountImpl.New()} }

func (h *Handle) Register(ctx *gin.Context) {
	in := &coreAccount.RegisterReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.Register(ctx, in)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	common.ReplyCreated(ctx, resp)
}

func (h *Handle) Login(ctx *gin.Context) {
	in := &coreAccount.LoginReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.Login(ctx, in)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Refresh(ctx *gin.Context) {
	in := &coreAccount.RefreshReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.Refresh(ctx, in)
	common.Reply(ctx, err, resp)
}

// Verify confirms the access token that the auth middleware has already
// accepted and echoes the authenticated user.
func (h *Handle) Verify(ctx *gin.Context) {
	user := authmw.GetCurrentUser(ctx)
	if user == nil {
		common.ReplyErr(ctx, code.UnLogin)
		return
	}
	common.ReplyOk(ctx, &coreAccount.VerifyResp{Valid: true, UserID: &user.ID, User: user})
}

func (h *Handle) VerifyRefresh(ctx *gin.Context) {
	in := &coreAccount.RefreshReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.VerifyRefresh(ctx, in)
	common.Reply(ctx, err, resp)
}
