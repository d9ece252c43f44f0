package account

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/agrosilo/silosys/pkg/common/code"
	core "github.com/agrosilo/silosys/pkg/core/account"
	"github.com/agrosilo/silosys/pkg/middleware/auth"
	"github.com/agrosilo/silosys/pkg/middleware/logger"
	"github.com/agrosilo/silosys/pkg/repo"
	"github.com/agrosilo/silosys/pkg/repo/model"
	userRepo "github.com/agrosilo/silosys/pkg/repo/user"
)

type accountImpl struct {
	users repo.UserRepo
}

func New() core.Service {
	return &accountImpl{users: userRepo.New()}
}

func (a *accountImpl) Register(ctx context.Context, req *core.RegisterReq) (*core.RegisterResp, error) {
	existing, err := a.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, code.EmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, code.CreateDataErr.WithErr(err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		ProfilePhoto: req.ProfilePhoto,
	}
	if err := a.users.CreateUser(ctx, user); err != nil {
		logger.Errorf(ctx, "CreateUser err: %+v", err)
		return nil, err
	}

	accessToken, expiresIn, err := auth.NewAccessToken(user.ID)
	if err != nil {
		return nil, code.CreateDataErr.WithErr(err)
	}
	refreshToken, err := auth.NewRefreshToken(user.ID)
	if err != nil {
		return nil, code.CreateDataErr.WithErr(err)
	}

	return &core.RegisterResp{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		ProfilePhoto: user.ProfilePhoto,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

func (a *accountImpl) Login(ctx context.Context, req *core.LoginReq) (*core.LoginResp, error) {
	user, err := a.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, code.BadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, code.BadCredentials
	}

	accessToken, expiresIn, err := auth.NewAccessToken(user.ID)
	if err != nil {
		return nil, code.CreateDataErr.WithErr(err)
	}
	refreshToken, err := auth.NewRefreshToken(user.ID)
	if err != nil {
		return nil, code.CreateDataErr.WithErr(err)
	}

	return &core.LoginResp{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

func (a *accountImpl) Refresh(ctx context.Context, req *core.RefreshReq) (*core.RefreshResp, error) {
	userID, err := auth.ParseToken(req.RefreshToken, auth.TokenRefresh)
	if err != nil {
		return nil, code.RefreshTokenInvalid
	}
	user, err := a.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	accessToken, expiresIn, err := auth.NewAccessToken(user.ID)
	if err != nil {
		return nil, code.CreateDataErr.WithErr(err)
	}
	return &core.RefreshResp{AccessToken: accessToken, ExpiresIn: expiresIn}, nil
}

func (a *accountImpl) VerifyRefresh(ctx context.Context, req *core.RefreshReq) (*core.VerifyResp, error) {
	userID, err := auth.ParseToken(req.RefreshToken, auth.TokenRefresh)
	if err != nil {
		return &core.VerifyResp{Valid: false}, nil
	}
	if _, err := a.users.GetUserByID(ctx, userID); err != nil {
		return &core.VerifyResp{Valid: false}, nil
	}
	return &core.VerifyResp{Valid: true, UserID: &userID}, nil
}
