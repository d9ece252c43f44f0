package withdrawal

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/agrosilo/silosys/pkg/common"
	"github.com/agrosilo/silosys/pkg/common/code"
	"github.com/agrosilo/silosys/pkg/middleware/db"
	"github.com/agrosilo/silosys/pkg/repo"
	"github.com/agrosilo/silosys/pkg/repo/model"
)

type withdrawalImpl struct {
	*db.Datastore
}

func New() repo.WithdrawalRepo {
	return &withdrawalImpl{Datastore: db.DB()}
}

func activeScope(tx *gorm.DB) *gorm.DB {
	return tx.Where("deleted_at IS NULL")
}

func (w *withdrawalImpl) CreateWithdrawal(ctx context.Context, data *model.Withdrawal) error {
	if err := w.DBWithContext(ctx).Create(data).Error; err != nil {
		return code.CreateDataErr.WithErr(err)
	}
	return nil
}

func (w *withdrawalImpl) GetOwnedWithdrawal(ctx context.Context, ownerID, id int64) (*model.Withdrawal, error) {
	data := &model.Withdrawal{}
	err := w.DBWithContext(ctx).Scopes(activeScope).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(data).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.WithdrawalNotFound
	}
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return data, nil
}

func (w *withdrawalImpl) ListWithdrawals(ctx context.Context, ownerID int64, page *common.PageReq) ([]*model.Withdrawal, int64, error) {
	page.Normalize()
	tx := w.DBWithContext(ctx).Model(&model.Withdrawal{}).Scopes(activeScope).
		Where("owner_id = ?", ownerID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}

	list := make([]*model.Withdrawal, 0, page.Limit)
	err := tx.Order("id").Offset(page.Skip).Limit(page.Limit).Find(&list).Error
	if err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}
	return list, total, nil
}

func (w *withdrawalImpl) UpdateWithdrawal(ctx context.Context, id int64, updates map[string]any) error {
	res := w.DBWithContext(ctx).Model(&model.Withdrawal{}).Scopes(activeScope).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return code.UpdateDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.WithdrawalNotFound
	}
	return nil
}

func (w *withdrawalImpl) SoftDeleteWithdrawal(ctx context.Context, ownerID, id int64) error {
	res := w.DBWithContext(ctx).Model(&model.Withdrawal{}).Scopes(activeScope).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("deleted_at", time.Now().UTC())
	if res.Error != nil {
		return code.UpdateDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.WithdrawalNotFound
	}
	return nil
}
