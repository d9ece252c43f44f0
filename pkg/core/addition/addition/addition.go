package addition

import (
	"context"

	"github.com/agrosilo/silosys/pkg/common"
	"github.com/agrosilo/silosys/pkg/common/code"
	core "github.com/agrosilo/silosys/pkg/core/addition"
	stockCore "github.com/agrosilo/silosys/pkg/core/stock"
	"github.com/agrosilo/silosys/pkg/middleware/auth"
	"github.com/agrosilo/silosys/pkg/middleware/db"
	"github.com/agrosilo/silosys/pkg/middleware/logger"
	"github.com/agrosilo/silosys/pkg/repo"
	additionRepo "github.com/agrosilo/silosys/pkg/repo/addition"
	grainRepo "github.com/agrosilo/silosys/pkg/repo/grain"
	"github.com/agrosilo/silosys/pkg/repo/model"
	warehouseRepo "github.com/agrosilo/silosys/pkg/repo/warehouse"
	"github.com/agrosilo/silosys/pkg/utils"
)

type additionImpl struct {
	additions  repo.AdditionRepo
	warehouses repo.WarehouseRepo
	grains     repo.GrainRepo
	plots      repo.PlotRepo
	engine     *stockCore.Engine
	store      *db.Datastore
}

func New() core.Service {
	return &additionImpl{
		additions:  additionRepo.New(),
		warehouses: warehouseRepo.New(),
		grains:     grainRepo.New(),
		plots:      grainRepo.NewPlotRepo(),
		engine:     stockCore.New(),
		store:      db.DB(),
	}
}

// canonWeights folds the legacy quantity field into the gross/tare pair.
func canonWeights(req *core.CreateReq) (gross, tare int64) {
	if req.GrossWeight != nil {
		gross = *req.GrossWeight
	}
	if req.TareWeight != nil {
		tare = *req.TareWeight
	}
	if req.GrossWeight == nil && req.TareWeight == nil && req.Quantity != nil {
		gross = *req.Quantity
	}
	return gross, tare
}

func (a *additionImpl) toResponses(ctx context.Context, list []*model.Addition) ([]*core.Response, error) {
	grainIDs := utils.FilterSlice(list, func(data *model.Addition) (int64, bool) {
		return data.GrainID, true
	})
	plotIDs := utils.FilterSlice(list, func(data *model.Addition) (int64, bool) {
		if data.PlotID == nil {
			return 0, false
		}
		return *data.PlotID, true
	})
	grainNames, err := a.grains.GrainNamesByID(ctx, grainIDs)
	if err != nil {
		return nil, err
	}
	plotNames, err := a.plots.PlotNamesByID(ctx, plotIDs)
	if err != nil {
		return nil, err
	}

	respList := make([]*core.Response, 0, len(list))
	for _, data := range list {
		resp := &core.Response{
			ID:          data.ID,
			WarehouseID: data.WarehouseID,
			GrainID:     data.GrainID,
			GrainName:   grainNames[data.GrainID],
			PlotID:      data.PlotID,
			OwnerID:     data.OwnerID,
			GrossWeight: data.GrossWeight,
			TareWeight:  data.TareWeight,
			NetQuantity: data.NetQuantity(),
			Humidity:    data.Humidity,
			Discount:    data.Discount,
			Plate:       data.Plate,
			CreatedAt:   data.CreatedAt,
		}
		if data.PlotID != nil {
			if name, ok := plotNames[*data.PlotID]; ok {
				resp.PlotName = &name
			}
		}
		respList = append(respList, resp)
	}
	return respList, nil
}

func (a *additionImpl) toResponse(ctx context.Context, data *model.Addition) (*core.Response, error) {
	respList, err := a.toResponses(ctx, []*model.Addition{data})
	if err != nil {
		return nil, err
	}
	return respList[0], nil
}

func (a *additionImpl) List(ctx context.Context, page *common.PageReq) (*common.PageResp[[]*core.Response], error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}
	list, total, err := a.additions.ListAdditions(ctx, user.ID, page)
	if err != nil {
		return nil, err
	}
	respList, err := a.toResponses(ctx, list)
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

func (a *additionImpl) Get(ctx context.Context, id int64) (*core.Response, error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}
	data, err := a.additions.GetOwnedAddition(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}
	return a.toResponse(ctx, data)
}

func (a *additionImpl) Create(ctx context.Context, req *core.CreateReq) (*core.Response, error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}

	gross, tare := canonWeights(req)
	data := &model.Addition{
		WarehouseID: req.WarehouseID,
		GrainID:     req.GrainID,
		PlotID:      req.PlotID,
		OwnerID:     user.ID,
		GrossWeight: gross,
		TareWeight:  tare,
		Humidity:    req.Humidity,
		Discount:    req.Discount,
		Plate:       req.Plate,
	}

	err := a.store.ExecTx(ctx, func(txCtx context.Context) error {
		if err := a.warehouses.LockWarehouse(txCtx, req.WarehouseID); err != nil {
			return err
		}
		if err := a.engine.ValidatePlot(txCtx, req.PlotID); err != nil {
			return err
		}
		if err := a.engine.ValidateSingleGrain(txCtx, req.WarehouseID, req.GrainID, nil); err != nil {
			return err
		}
		if err := a.engine.ValidateCapacity(txCtx, user.ID, req.WarehouseID, data.NetQuantity(), nil); err != nil {
			return err
		}
		return a.additions.CreateAddition(txCtx, data)
	})
	if err != nil {
		logger.Errorf(ctx, "CreateAddition err: %+v", err)
		return nil, err
	}
	return a.toResponse(ctx, data)
}

func (a *additionImpl) Update(ctx context.Context, id int64, req *core.UpdateReq) (*core.Response, error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}

	current, err := a.additions.GetOwnedAddition(ctx, user.ID, id)
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
	if req.PlotID != nil {
		next.PlotID = req.PlotID
		updates["plot_id"] = *req.PlotID
	}
	if req.GrossWeight != nil {
		next.GrossWeight = *req.GrossWeight
		updates["gross_weight"] = *req.GrossWeight
	}
	if req.TareWeight != nil {
		next.TareWeight = *req.TareWeight
		updates["tare_weight"] = *req.TareWeight
	}
	if req.Humidity != nil {
		updates["humidity"] = *req.Humidity
	}
	if req.Discount != nil {
		updates["discount"] = *req.Discount
	}
	if req.Plate != nil {
		updates["plate"] = *req.Plate
	}
	if len(updates) == 0 {
		return nil, code.ParamErr.WithMsg("at least one field to update is required")
	}

	// Each invariant is re-checked only when a field it depends on was
	// supplied, so editing plate or humidity never trips a magnitude check.
	// The stored row is excluded from the re-check so the correction does
	// not count twice.
	grainTouched := req.WarehouseID != nil || req.GrainID != nil
	capacityTouched := req.WarehouseID != nil || req.GrossWeight != nil || req.TareWeight != nil
	exclude := &stockCore.MovementRef{Kind: stockCore.KindAddition, ID: id}
	err = a.store.ExecTx(ctx, func(txCtx context.Context) error {
		if err := a.warehouses.LockWarehouse(txCtx, next.WarehouseID); err != nil {
			return err
		}
		if err := a.engine.ValidatePlot(txCtx, req.PlotID); err != nil {
			return err
		}
		if grainTouched {
			if err := a.engine.ValidateSingleGrain(txCtx, next.WarehouseID, next.GrainID, exclude); err != nil {
				return err
			}
		}
		if capacityTouched {
			if err := a.engine.ValidateCapacity(txCtx, user.ID, next.WarehouseID, next.NetQuantity(), exclude); err != nil {
				return err
			}
		}
		return a.additions.UpdateAddition(txCtx, id, updates)
	})
	if err != nil {
		return nil, err
	}

	data, err := a.additions.GetOwnedAddition(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}
	return a.toResponse(ctx, data)
}

func (a *additionImpl) Delete(ctx context.Context, id int64) error {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return code.UnLogin
	}
	return a.additions.SoftDeleteAddition(ctx, user.ID, id)
}
