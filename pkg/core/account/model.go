package account

import (
	"context"

	"github.com/agrosilo/silosys/pkg/repo/model"
)

type RegisterReq struct {
	Name         string  `json:"name" binding:"required,min=1"`
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required,min=6"`
	ProfilePhoto *string `json:"profile_photo"`
}

type RegisterResp struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	ProfilePhoto *string `json:"profile_photo"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	ExpiresIn    int64   `json:"expires_in"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResp struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type RefreshResp struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type VerifyResp struct {
	Valid  bool        `json:"valid"`
	UserID *int64      `json:"user_id,omitempty"`
	User   *model.User `json:"user,omitempty"`
}

type Service interface {
	Register(ctx context.Context, req *RegisterReq) (*RegisterResp, error)
	Login(ctx context.Context, req *LoginReq) (*LoginResp, error)
	Refresh(ctx context.Context, req *RefreshReq) (*RefreshResp, error)
	// VerifyRefresh probes a refresh token without failing the request.
	VerifyRefresh(ctx context.Context, req *RefreshReq) (*VerifyResp, error)
}
