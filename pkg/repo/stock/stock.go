package stock

import (
	"context"

	"gorm.io/gorm"

	"github.com/agrosilo/silosys/pkg/common/code"
	"github.com/agrosilo/silosys/pkg/middleware/db"
	"github.com/agrosilo/silosys/pkg/repo"
	"github.com/agrosilo/silosys/pkg/repo/model"
)

// Net quantity in SQL, clamped per row so an overweight tare never turns a
// movement into negative stock. CASE keeps the expression portable between
// postgres and the sqlite used in tests.
const (
	additionNetExpr   = "CASE WHEN gross_weight - tare_weight > 0 THEN gross_weight - tare_weight ELSE 0 END"
	withdrawalNetExpr = "CASE WHEN COALESCE(gross_weight,0) - COALESCE(tare_weight,0) > 0 THEN COALESCE(gross_weight,0) - COALESCE(tare_weight,0) ELSE 0 END"
)

type stockImpl struct {
	*db.Datastore
}

func New() repo.StockRepo {
	return &stockImpl{Datastore: db.DB()}
}

func activeScope(tx *gorm.DB) *gorm.DB {
	return tx.Where("deleted_at IS NULL")
}

func (s *stockImpl) SumAdditionNet(ctx context.Context, warehouseID int64, excludeID *int64) (int64, error) {
	tx := s.DBWithContext(ctx).Model(&model.Addition{}).Scopes(activeScope).
		Select("COALESCE(SUM(" + additionNetExpr + "), 0)").
		Where("warehouse_id = ?", warehouseID)
	if excludeID != nil {
		tx = tx.Where("id <> ?", *excludeID)
	}
	var total int64
	if err := tx.Scan(&total).Error; err != nil {
		return 0, code.QueryRecordErr.WithErr(err)
	}
	return total, nil
}

func (s *stockImpl) SumWithdrawalNet(ctx context.Context, warehouseID int64, excludeID *int64) (int64, error) {
	tx := s.DBWithContext(ctx).Model(&model.Withdrawal{}).Scopes(activeScope).
		Select("COALESCE(SUM(" + withdrawalNetExpr + "), 0)").
		Where("warehouse_id = ?", warehouseID)
	if excludeID != nil {
		tx = tx.Where("id <> ?", *excludeID)
	}
	var total int64
	if err := tx.Scan(&total).Error; err != nil {
		return 0, code.QueryRecordErr.WithErr(err)
	}
	return total, nil
}

func (s *stockImpl) DistinctGrainIDs(ctx context.Context, warehouseID int64) ([]int64, error) {
	var additionGrains []int64
	err := s.DBWithContext(ctx).Model(&model.Addition{}).Scopes(activeScope).
		Distinct("grain_id").
		Where("warehouse_id = ?", warehouseID).
		Pluck("grain_id", &additionGrains).Error
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}

	var withdrawalGrains []int64
	err = s.DBWithContext(ctx).Model(&model.Withdrawal{}).Scopes(activeScope).
		Distinct("grain_id").
		Where("warehouse_id = ?", warehouseID).
		Pluck("grain_id", &withdrawalGrains).Error
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}

	seen := make(map[int64]struct{}, len(additionGrains)+len(withdrawalGrains))
	out := make([]int64, 0, len(additionGrains)+len(withdrawalGrains))
	for _, id := range append(additionGrains, withdrawalGrains...) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out, nil
}

func (s *stockImpl) HasOtherGrainAddition(ctx context.Context, warehouseID, grainID int64, excludeID *int64) (bool, error) {
	tx := s.DBWithContext(ctx).Model(&model.Addition{}).Scopes(activeScope).
		Where("warehouse_id = ? AND grain_id <> ?", warehouseID, grainID)
	if excludeID != nil {
		tx = tx.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return false, code.QueryRecordErr.WithErr(err)
	}
	return count > 0, nil
}

func (s *stockImpl) HasOtherGrainWithdrawal(ctx context.Context, warehouseID, grainID int64, excludeID *int64) (bool, error) {
	tx := s.DBWithContext(ctx).Model(&model.Withdrawal{}).Scopes(activeScope).
		Where("warehouse_id = ? AND grain_id <> ?", warehouseID, grainID)
	if excludeID != nil {
		tx = tx.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return false, code.QueryRecordErr.WithErr(err)
	}
	return count > 0, nil
}
