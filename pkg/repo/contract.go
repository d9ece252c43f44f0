package repo

import (
	"context"

	"github.com/agrosilo/silosys/pkg/common"
	"github.com/agrosilo/silosys/pkg/repo/model"
)

type ContractRepo interface {
	CreateContract(ctx context.Context, data *model.Contract) error
	GetOwnedContract(ctx context.Context, ownerID, id int64) (*model.Contract, error)
	ListContracts(ctx context.Context, ownerID int64, page *common.PageReq) ([]*model.Contract, int64, error)
	UpdateContract(ctx context.Context, id int64, updates map[string]any) error
	SoftDeleteContract(ctx context.Context, ownerID, id int64) error
	// WithdrawnByContract sums the net quantity of active withdrawals per
	// contract in one grouped pass; absent ids simply have no entry.
	WithdrawnByContract(ctx context.Context, contractIDs []int64) (map[int64]int64, error)
}
