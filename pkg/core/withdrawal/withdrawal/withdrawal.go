package withdrawal

import (
	"context"
	"errors"

	"github.com/agrosilo/silosys/pkg/common"
	"github.com/agrosilo/silosys/pkg/common/code"
	stockCore "github.com/agrosilo/silosys/pkg/core/stock"
	core "github.com/agrosilo/silosys/pkg/core/withdrawal"
	"github.com/agrosilo/silosys/pkg/middleware/auth"
	"github.com/agrosilo/silosys/pkg/middleware/db"
	"github.com/agrosilo/silosys/pkg/middleware/logger"
	"github.com/agrosilo/silosys/pkg/repo"
	contractRepo "github.com/agrosilo/silosys/pkg/repo/contract"
	grainRepo "github.com/agrosilo/silosys/pkg/repo/grain"
	"github.com/agrosilo/silosys/pkg/repo/model"
	warehouseRepo "github.com/agrosilo/silosys/pkg/repo/warehouse"
	withdrawalRepo "github.com/agrosilo/silosys/pkg/repo/withdrawal"
)

type withdrawalImpl struct {
	withdrawals repo.WithdrawalRepo
	warehouses  repo.WarehouseRepo
	contracts   repo.ContractRepo
	grains      repo.GrainRepo
	engine      *stockCore.Engine
	store       *db.Datastore
}

func New() core.Service {
	return &withdrawalImpl{
		withdrawals: withdrawalRepo.New(),
		warehouses:  warehouseRepo.New(),
		contracts:   contractRepo.New(),
		grains:      grainRepo.New(),
		engine:      stockCore.New(),
		store:       db.DB(),
	}
}

// validateContractRef checks that a referenced contract exists, is active
// and belongs to the caller. A broken reference is a bad request, not a
// not-found, since the withdrawal itself is the resource in play.
func (w *withdrawalImpl) validateContractRef(ctx context.Context, ownerID int64, contractID *int64) error {
	if contractID == nil {
		return nil
	}
	if _, err := w.contracts.GetOwnedContract(ctx, ownerID, *contractID); err != nil {
		if errors.Is(err, code.ContractNotFound) {
			return code.ContractRefInvalid
		}
		return err
	}
	return nil
}

func (w *withdrawalImpl) toResponses(ctx context.Context, list []*model.Withdrawal) ([]*core.Response, error) {
	grainIDs := make([]int64, 0, len(list))
	for _, data := range list {
		grainIDs = append(grainIDs, data.GrainID)
	}
	grainNames, err := w.grains.GrainNamesByID(ctx, grainIDs)
	if err != nil {
		return nil, err
	}

	respList := make([]*core.Response, 0, len(list))
	for _, data := range list {
		respList = append(respList, &core.Response{
			ID:          data.ID,
			WarehouseID: data.WarehouseID,
			GrainID:     data.GrainID,
			GrainName:   grainNames[data.GrainID],
			ContractID:  data.ContractID,
			OwnerID:     data.OwnerID,
			GrossWeight: data.GrossWeight,
			TareWeight:  data.TareWeight,
			NetQuantity: data.NetQuantity(),
			Plate:       data.Plate,
			CreatedAt:   data.CreatedAt,
		})
	}
	return respList, nil
}

func (w *withdrawalImpl) toResponse(ctx context.Context, data *model.Withdrawal) (*core.Response, error) {
	respList, err := w.toResponses(ctx, []*model.Withdrawal{data})
	if err != nil {
		return nil, err
	}
	return respList[0], nil
}

func (w *withdrawalImpl) List(ctx context.Context, page *common.PageReq) (*common.PageResp[[]*core.Response], error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}
	list, total, err := w.withdrawals.ListWithdrawals(ctx, user.ID, page)
	if err != nil {
		return nil, err
	}
	respList, err := w.toResponses(ctx, list)
	if err != nil {
		return nil, err
	}
	return &common.PageResp[[]*core.Response]{
		Data:  respList,
		Total: total,
		Skip:  page.Skip,
		Limit: page.Limit,
	}, nil
}

func (w *withdrawalImpl) Get(ctx context.Context, id int64) (*core.Response, error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}
	data, err := w.withdrawals.GetOwnedWithdrawal(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}
	return w.toResponse(ctx, data)
}

func (w *withdrawalImpl) Create(ctx context.Context, req *core.CreateReq) (*core.Response, error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}

	data := &model.Withdrawal{
		WarehouseID: req.WarehouseID,
		GrainID:     req.GrainID,
		ContractID:  req.ContractID,
		OwnerID:     user.ID,
		GrossWeight: req.GrossWeight,
		TareWeight:  req.TareWeight,
		Plate:       req.Plate,
	}

	err := w.store.ExecTx(ctx, func(txCtx context.Context) error {
		if err := w.warehouses.LockWarehouse(txCtx, req.WarehouseID); err != nil {
			return err
		}
		if err := w.validateContractRef(txCtx, user.ID, req.ContractID); err != nil {
			return err
		}
		if err := w.engine.ValidateSingleGrain(txCtx, req.WarehouseID, req.GrainID, nil); err != nil {
			return err
		}
		if err := w.engine.ValidateWithdrawalCeiling(txCtx, req.WarehouseID, req.GrossWeight, req.TareWeight, nil); err != nil {
			return err
		}
		return w.withdrawals.CreateWithdrawal(txCtx, data)
	})
	if err != nil {
		logger.Errorf(ctx, "CreateWithdrawal err: %+v", err)
		return nil, err
	}
	return w.toResponse(ctx, data)
}

func (w *withdrawalImpl) Update(ctx context.Context, id int64, req *core.UpdateReq) (*core.Response, error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}

	current, err := w.withdrawals.GetOwnedWithdrawal(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}

	next := *current
	updates := make(map[string]any)
	if req.WarehouseID != nil {
		next.WarehouseID = *req.WarehouseID
		updates["warehouse_id"] = *req.WarehouseID
	}
	if req.GrainID != nil {
		next.GrainID = *req.GrainID
		updates["grain_id"] = *req.GrainID
	}
	if req.ContractID != nil {
		next.ContractID = req.ContractID
		updates["contract_id"] = *req.ContractID
	}
	if req.GrossWeight != nil {
		next.GrossWeight = req.GrossWeight
		updates["gross_weight"] = *req.GrossWeight
	}
	if req.TareWeight != nil {
		next.TareWeight = req.TareWeight
		updates["tare_weight"] = *req.TareWeight
	}
	if req.Plate != nil {
		updates["plate"] = *req.Plate
	}
	if len(updates) == 0 {
		return nil, code.ParamErr.WithMsg("at least one field to update is required")
	}

	// Each invariant is re-checked only when a field it depends on was
	// supplied, so a plate edit goes through even if the stock it once drew
	// from has since shrunk. The stored row is excluded from the re-check.
	grainTouched := req.WarehouseID != nil || req.GrainID != nil
	ceilingTouched := req.WarehouseID != nil || req.GrossWeight != nil || req.TareWeight != nil
	exclude := &stockCore.MovementRef{Kind: stockCore.KindWithdrawal, ID: id}
	err = w.store.ExecTx(ctx, func(txCtx context.Context) error {
		if err := w.warehouses.LockWarehouse(txCtx, next.WarehouseID); err != nil {
			return err
		}
		if err := w.validateContractRef(txCtx, user.ID, req.ContractID); err != nil {
			return err
		}
		if grainTouched {
			if err := w.engine.ValidateSingleGrain(txCtx, next.WarehouseID, next.GrainID, exclude); err != nil {
				return err
			}
		}
		if ceilingTouched {
			if err := w.engine.ValidateWithdrawalCeiling(txCtx, next.WarehouseID, next.GrossWeight, next.TareWeight, &id); err != nil {
				return err
			}
		}
		return w.withdrawals.UpdateWithdrawal(txCtx, id, updates)
	})
	if err != nil {
		return nil, err
	}

	data, err := w.withdrawals.GetOwnedWithdrawal(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}
	return w.toResponse(ctx, data)
}

func (w *withdrawalImpl) Delete(ctx context.Context, id int64) error {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return code.UnLogin
	}
	return w.withdrawals.SoftDeleteWithdrawal(ctx, user.ID, id)
}
