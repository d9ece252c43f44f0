package repo

import (
	"context"

	"github.com/agrosilo/silosys/pkg/common"
	"github.com/agrosilo/silosys/pkg/repo/model"
)

type WithdrawalRepo interface {
	CreateWithdrawal(ctx context.Context, data *model.Withdrawal) error
	GetOwnedWithdrawal(ctx context.Context, ownerID, id int64) (*model.Withdrawal, error)
	ListWithdrawals(ctx context.Context, ownerID int64, page *common.PageReq) ([]*model.Withdrawal, int64, error)
	UpdateWithdrawal(ctx context.Context, id int64, updates map[string]any) error
	SoftDeleteWithdrawal(ctx context.Context, ownerID, id int64) error
}
