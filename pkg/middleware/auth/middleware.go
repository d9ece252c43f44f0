package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agrosilo/silosys/pkg/common"
	"github.com/agrosilo/silosys/pkg/common/code"
	"github.com/agrosilo/silosys/pkg/middleware/logger"
	"github.com/agrosilo/silosys/pkg/repo"
	"github.com/agrosilo/silosys/pkg/repo/model"
)

const USERKEY = "AUTH_USER_KEY"

// AuthWeb validates the bearer access token and stashes the owning user in
// the gin context for the services downstream.
func AuthWeb(userRepo repo.UserRepo) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			abort(ctx, code.TokenMissing)
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(ctx, code.TokenMissing)
			return
		}

		userID, err := ParseToken(parts[1], TokenAccess)
		if err != nil {
			abort(ctx, code.TokenInvalid)
			return
		}

		user, err := userRepo.GetUserByID(ctx, userID)
		if err != nil {
			logger.Warnf(ctx, "token user %d not found: %+v", userID, err)
			abort(ctx, code.UserNotFound)
			return
		}

		ctx.Set(USERKEY, user)
		ctx.Next()
	}
}

func abort(ctx *gin.Context, err *code.Error) {
	common.ReplyErr(ctx, err)
	ctx.Abort()
}

type userCtxKey struct{}

// WithUser returns a context carrying the user directly, for callers that
// sit outside the gin request path (tests, maintenance commands).
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

// GetCurrentUser returns the authenticated user, or nil when none is bound.
func GetCurrentUser(ctx context.Context) *model.User {
	if gCtx, ok := ctx.(*gin.Context); ok {
		if value, exists := gCtx.Get(USERKEY); exists {
			if user, ok := value.(*model.User); ok {
				return user
			}
		}
		return nil
	}
	if user, ok := ctx.Value(userCtxKey{}).(*model.User); ok {
		return user
	}
	return nil
}
