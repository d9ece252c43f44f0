package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/agrosilo/silosys/pkg/common/code"
	"github.com/agrosilo/silosys/pkg/middleware/db"
	"github.com/agrosilo/silosys/pkg/repo"
	"github.com/agrosilo/silosys/pkg/repo/model"
)

type userImpl struct {
	*db.Datastore
}

func New() repo.UserRepo {
	return &userImpl{Datastore: db.DB()}
}

func (u *userImpl) CreateUser(ctx context.Context, user *model.User) error {
	if err := u.DBWithContext(ctx).Create(user).Error; err != nil {
		return code.CreateDataErr.WithErr(err)
	}
	return nil
}

func (u *userImpl) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	data := &model.User{}
	err := u.DBWithContext(ctx).Where("id = ?", id).First(data).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.UserNotFound
	}
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return data, nil
}

func (u *userImpl) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	data := &model.User{}
	err := u.DBWithContext(ctx).Where("email = ?", email).First(data).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return data, nil
}
