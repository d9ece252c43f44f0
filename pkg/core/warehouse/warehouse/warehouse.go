package warehouse

import (
	"context"

	"github.com/agrosilo/silosys/pkg/common"
	"github.com/agrosilo/silosys/pkg/common/code"
	stockCore "github.com/agrosilo/silosys/pkg/core/stock"
	core "github.com/agrosilo/silosys/pkg/core/warehouse"
	"github.com/agrosilo/silosys/pkg/middleware/auth"
	"github.com/agrosilo/silosys/pkg/middleware/logger"
	"github.com/agrosilo/silosys/pkg/repo"
	"github.com/agrosilo/silosys/pkg/repo/model"
	warehouseRepo "github.com/agrosilo/silosys/pkg/repo/warehouse"
)

type warehouseImpl struct {
	warehouses repo.WarehouseRepo
	engine     *stockCore.Engine
}

func New() core.Service {
	return &warehouseImpl{
		warehouses: warehouseRepo.New(),
		engine:     stockCore.New(),
	}
}

func (w *warehouseImpl) toResponse(ctx context.Context, data *model.Warehouse) (*core.Response, error) {
	stock, err := w.engine.ComputeStock(ctx, data.ID, nil)
	if err != nil {
		return nil, err
	}
	grainID, err := w.engine.InferGrainType(ctx, data.ID)
	if err != nil {
		return nil, err
	}
	return &core.Response{
		ID:        data.ID,
		OwnerID:   data.OwnerID,
		Name:      data.Name,
		Capacity:  data.Capacity,
		Stock:     stock,
		GrainID:   grainID,
		CreatedAt: data.CreatedAt,
	}, nil
}

func (w *warehouseImpl) List(ctx context.Context, page *common.PageReq) (*common.PageResp[[]*core.Response], error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}

	list, total, err := w.warehouses.ListWarehouses(ctx, user.ID, page)
	if err != nil {
		return nil, err
	}

	respList := make([]*core.Response, 0, len(list))
	for _, data := range list {
		resp, err := w.toResponse(ctx, data)
		if err != nil {
			return nil, err
		}
		respList = append(respList, resp)
	}

	return &common.PageResp[[]*core.Response]{
		Data:  respList,
		Total: total,
		Skip:  page.Skip,
		Limit: page.Limit,
	}, nil
}

func (w *warehouseImpl) Get(ctx context.Context, id int64) (*core.Response, error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}
	data, err := w.warehouses.GetOwnedWarehouse(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}
	return w.toResponse(ctx, data)
}

func (w *warehouseImpl) Create(ctx context.Context, req *core.CreateReq) (*core.Response, error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}

	data := &model.Warehouse{
		OwnerID:  user.ID,
		Name:     req.Name,
		Capacity: req.Capacity,
	}
	if err := w.warehouses.CreateWarehouse(ctx, data); err != nil {
		logger.Errorf(ctx, "CreateWarehouse err: %+v", err)
		return nil, err
	}
	return w.toResponse(ctx, data)
}

func (w *warehouseImpl) Update(ctx context.Context, id int64, req *core.UpdateReq) (*core.Response, error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}

	updates := make(map[string]any)
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if len(updates) == 0 {
		return nil, code.ParamErr.WithMsg("at least one field to update is required")
	}

	if err := w.warehouses.UpdateWarehouse(ctx, user.ID, id, updates); err != nil {
		return nil, err
	}
	data, err := w.warehouses.GetOwnedWarehouse(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}
	return w.toResponse(ctx, data)
}

func (w *warehouseImpl) Delete(ctx context.Context, id int64) error {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return code.UnLogin
	}
	return w.warehouses.SoftDeleteWarehouse(ctx, user.ID, id)
}
