package repo

import (
	"context"

	"github.com/agrosilo/silosys/pkg/repo/model"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	// GetUserByEmail returns (nil, nil) when no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}
