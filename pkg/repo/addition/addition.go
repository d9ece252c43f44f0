package addition

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

type additionImpl struct {
	*db.Datastore
}

func New() repo.AdditionRepo {
	return &additionImpl{Datastore: db.DB()}
}

func activeScope(tx *gorm.DB) *gorm.DB {
	return tx.Where("deleted_at IS NULL")
}

func (a *additionImpl) CreateAddition(ctx context.Context, data *model.Addition) error {
	if err := a.DBWithContext(ctx).Create(data).Error; err != nil {
		return code.CreateDataErr.WithErr(err)
	}
	return nil
}

func (a *additionImpl) GetOwnedAddition(ctx context.Context, ownerID, id int64) (*model.Addition, error) {
	data := &model.Addition{}
	err := a.DBWithContext(ctx).Scopes(activeScope).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(data).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.AdditionNotFound
	}
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return data, nil
}

func (a *additionImpl) ListAdditions(ctx context.Context, ownerID int64, page *common.PageReq) ([]*model.Addition, int64, error) {
	page.Normalize()
	tx := a.DBWithContext(ctx).Model(&model.Addition{}).Scopes(activeScope).
		Where("owner_id = ?", ownerID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}

	list := make([]*model.Addition, 0, page.Limit)
	err := tx.Order("id").Offset(page.Skip).Limit(page.Limit).Find(&list).Error
	if err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}
	return list, total, nil
}

func (a *additionImpl) UpdateAddition(ctx context.Context, id int64, updates map[string]any) error {
	res := a.DBWithContext(ctx).Model(&model.Addition{}).Scopes(activeScope).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return code.UpdateDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.AdditionNotFound
	}
	return nil
}

func (a *additionImpl) SoftDeleteAddition(ctx context.Context, ownerID, id int64) error {
	res := a.DBWithContext(ctx).Model(&model.Addition{}).Scopes(activeScope).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("deleted_at", time.Now().UTC())
	if res.Error != nil {
		return code.UpdateDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.AdditionNotFound
	}
	return nil
}
