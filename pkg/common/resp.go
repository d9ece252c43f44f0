package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrosilo/silosys/pkg/common/code"
)

type Error struct {
	Msg string `json:"msg"`
}

type Resp struct {
	Code  int    `json:"code"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// Reply writes either the error or the optional payload.
func Reply(ctx *gin.Context, err error, data ...any) {
	if err != nil {
		ReplyErr(ctx, err)
		return
	}
	ReplyOk(ctx, data...)
}

func ReplyOk(ctx *gin.Context, data ...any) {
	replyData(ctx, http.StatusOK, data...)
}

// ReplyCreated is ReplyOk with a 201 status, used by create endpoints.
func ReplyCreated(ctx *gin.Context, data ...any) {
	replyData(ctx, http.StatusCreated, data...)
}

// ReplyNoContent acknowledges a delete.
func ReplyNoContent(ctx *gin.Context) {
	ctx.Status(http.StatusNoContent)
}

func replyData(ctx *gin.Context, status int, data ...any) {
	resp := &Resp{Code: 0}
	if len(data) > 0 {
		resp.Data = data[0]
	}
	ctx.JSON(status, resp)
}

// ReplyErr maps code errors onto the envelope; anything else is a 500.
func ReplyErr(ctx *gin.Context, err error, msgs ...string) {
	cerr := &code.Error{}
	if !errors.As(err, &cerr) {
		cerr = code.QueryRecordErr.WithErr(err)
	}
	msg := cerr.Msg()
	if len(msgs) > 0 {
		msg = msgs[0]
	}
	ctx.JSON(cerr.HTTPStatus(), &Resp{
		Code:  cerr.Code(),
		Error: &Error{Msg: msg},
	})
}
