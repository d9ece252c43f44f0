package contract

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

type contractImpl struct {
	*db.Datastore
}

func New() repo.ContractRepo {
	return &contractImpl{Datastore: db.DB()}
}

func activeScope(tx *gorm.DB) *gorm.DB {
	return tx.Where("deleted_at IS NULL")
}

func (c *contractImpl) CreateContract(ctx context.Context, data *model.Contract) error {
	if err := c.DBWithContext(ctx).Create(data).Error; err != nil {
		return code.CreateDataErr.WithErr(err)
	}
	return nil
}

func (c *contractImpl) GetOwnedContract(ctx context.Context, ownerID, id int64) (*model.Contract, error) {
	data := &model.Contract{}
	err := c.DBWithContext(ctx).Scopes(activeScope).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(data).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ContractNotFound
	}
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return data, nil
}

func (c *contractImpl) ListContracts(ctx context.Context, ownerID int64, page *common.PageReq) ([]*model.Contract, int64, error) {
	page.Normalize()
	tx := c.DBWithContext(ctx).Model(&model.Contract{}).Scopes(activeScope).
		Where("owner_id = ?", ownerID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}

	list := make([]*model.Contract, 0, page.Limit)
	err := tx.Order("id").Offset(page.Skip).Limit(page.Limit).Find(&list).Error
	if err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}
	return list, total, nil
}

func (c *contractImpl) UpdateContract(ctx context.Context, id int64, updates map[string]any) error {
	res := c.DBWithContext(ctx).Model(&model.Contract{}).Scopes(activeScope).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return code.UpdateDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.ContractNotFound
	}
	return nil
}

func (c *contractImpl) SoftDeleteContract(ctx context.Context, ownerID, id int64) error {
	res := c.DBWithContext(ctx).Model(&model.Contract{}).Scopes(activeScope).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("deleted_at", time.Now().UTC())
	if res.Error != nil {
		return code.UpdateDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.ContractNotFound
	}
	return nil
}

type contractTotal struct {
	ContractID int64
	Total      int64
}

func (c *contractImpl) WithdrawnByContract(ctx context.Context, contractIDs []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(contractIDs))
	if len(contractIDs) == 0 {
		return out, nil
	}
	rows := make([]*contractTotal, 0, len(contractIDs))
	err := c.DBWithContext(ctx).Model(&model.Withdrawal{}).
		Select("contract_id, COALESCE(SUM(CASE WHEN COALESCE(gross_weight,0) - COALESCE(tare_weight,0) > 0 THEN COALESCE(gross_weight,0) - COALESCE(tare_weight,0) ELSE 0 END), 0) AS total").
		Where("contract_id IN ? AND deleted_at IS NULL", contractIDs).
		Group("contract_id").
		Scan(&rows).Error
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	for _, row := range rows {
		if row.Total < 0 {
			row.Total = 0
		}
		out[row.ContractID] = row.Total
	}
	return out, nil
}
