package repo

import (
	"context"

	"github.com/agrosilo/silosys/pkg/common"
	"github.com/agrosilo/silosys/pkg/repo/model"
)

type WarehouseRepo interface {
	CreateWarehouse(ctx context.Context, data *model.Warehouse) error
	// GetOwnedWarehouse loads an active warehouse scoped to its owner;
	// missing, foreign or soft-deleted rows fail with WarehouseNotFound.
	GetOwnedWarehouse(ctx context.Context, ownerID, id int64) (*model.Warehouse, error)
	ListWarehouses(ctx context.Context, ownerID int64, page *common.PageReq) ([]*model.Warehouse, int64, error)
	UpdateWarehouse(ctx context.Context, ownerID, id int64, updates map[string]any) error
	SoftDeleteWarehouse(ctx context.Context, ownerID, id int64) error
	// LockWarehouse takes a row lock on the warehouse for the duration of
	// the ambient transaction so validate-then-write is atomic. It does not
	// fail when the row is absent; ownership is checked by the validators.
	LockWarehouse(ctx context.Context, id int64) error
}
