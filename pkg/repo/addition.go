package repo

import (
	"context"

	"github.com/agrosilo/silosys/pkg/common"
	"github.com/agrosilo/silosys/pkg/repo/model"
)

type AdditionRepo interface {
	CreateAddition(ctx context.Context, data *model.Addition) error
	GetOwnedAddition(ctx context.Context, ownerID, id int64) (*model.Addition, error)
	ListAdditions(ctx context.Context, ownerID int64, page *common.PageReq) ([]*model.Addition, int64, error)
	// UpdateAddition applies only the supplied columns to an active row.
	UpdateAddition(ctx context.Context, id int64, updates map[string]any) error
	SoftDeleteAddition(ctx context.Context, ownerID, id int64) error
}
