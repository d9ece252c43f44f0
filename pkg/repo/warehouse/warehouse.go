package warehouse

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agrosilo/silosys/pkg/common"
	"github.com/agrosilo/silosys/pkg/common/code"
	"github.com/agrosilo/silosys/pkg/middleware/db"
	"github.com/agrosilo/silosys/pkg/repo"
	"github.com/agrosilo/silosys/pkg/repo/model"
)

type warehouseImpl struct {
	*db.Datastore
}

func New() repo.WarehouseRepo {
	return &warehouseImpl{Datastore: db.DB()}
}

func activeScope(tx *gorm.DB) *gorm.DB {
	return tx.Where("deleted_at IS NULL")
}

func (w *warehouseImpl) CreateWarehouse(ctx context.Context, data *model.Warehouse) error {
	if err := w.DBWithContext(ctx).Create(data).Error; err != nil {
		return code.CreateDataErr.WithErr(err)
	}
	return nil
}

func (w *warehouseImpl) GetOwnedWarehouse(ctx context.Context, ownerID, id int64) (*model.Warehouse, error) {
	data := &model.Warehouse{}
	err := w.DBWithContext(ctx).Scopes(activeScope).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(data).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.WarehouseNotFound
	}
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return data, nil
}

func (w *warehouseImpl) ListWarehouses(ctx context.Context, ownerID int64, page *common.PageReq) ([]*model.Warehouse, int64, error) {
	page.Normalize()
	tx := w.DBWithContext(ctx).Model(&model.Warehouse{}).Scopes(activeScope).
		Where("owner_id = ?", ownerID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}

	list := make([]*model.Warehouse, 0, page.Limit)
	err := tx.Order("id").Offset(page.Skip).Limit(page.Limit).Find(&list).Error
	if err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}
	return list, total, nil
}

func (w *warehouseImpl) UpdateWarehouse(ctx context.Context, ownerID, id int64, updates map[string]any) error {
	res := w.DBWithContext(ctx).Model(&model.Warehouse{}).Scopes(activeScope).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(updates)
	if res.Error != nil {
		return code.UpdateDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.WarehouseNotFound
	}
	return nil
}

func (w *warehouseImpl) SoftDeleteWarehouse(ctx context.Context, ownerID, id int64) error {
	res := w.DBWithContext(ctx).Model(&model.Warehouse{}).Scopes(activeScope).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("deleted_at", time.Now().UTC())
	if res.Error != nil {
		return code.UpdateDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.WarehouseNotFound
	}
	return nil
}

// LockWarehouse acquires a FOR UPDATE lock inside the ambient transaction.
// Absent rows lock nothing; sqlite serializes writers without row locks.
func (w *warehouseImpl) LockWarehouse(ctx context.Context, id int64) error {
	if !w.SupportsRowLock() {
		return nil
	}
	var ids []int64
	err := w.DBWithContext(ctx).Model(&model.Warehouse{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Pluck("id", &ids).Error
	if err != nil {
		return code.QueryRecordErr.WithErr(err)
	}
	return nil
}
