package contract

import (
	"context"
	"time"

	"github.com/agrosilo/silosys/pkg/common"
	"github.com/agrosilo/silosys/pkg/common/code"
	core "github.com/agrosilo/silosys/pkg/core/contract"
	"github.com/agrosilo/silosys/pkg/middleware/auth"
	"github.com/agrosilo/silosys/pkg/middleware/logger"
	"github.com/agrosilo/silosys/pkg/repo"
	contractRepo "github.com/agrosilo/silosys/pkg/repo/contract"
	grainRepo "github.com/agrosilo/silosys/pkg/repo/grain"
	"github.com/agrosilo/silosys/pkg/repo/model"
)

type contractImpl struct {
	contracts repo.ContractRepo
	grains    repo.GrainRepo
}

func New() core.Service {
	return &contractImpl{
		contracts: contractRepo.New(),
		grains:    grainRepo.New(),
	}
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(core.DateOnly, value)
	if err != nil {
		return time.Time{}, code.ParamErr.WithMsgf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

func formatDate(t time.Time) string { return t.Format(core.DateOnly) }

func (c *contractImpl) toResponses(ctx context.Context, list []*model.Contract) ([]*core.Response, error) {
	grainIDs := make([]int64, 0, len(list))
	contractIDs := make([]int64, 0, len(list))
	for _, data := range list {
		grainIDs = append(grainIDs, data.GrainID)
		contractIDs = append(contractIDs, data.ID)
	}
	grainNames, err := c.grains.GrainNamesByID(ctx, grainIDs)
	if err != nil {
		return nil, err
	}
	withdrawn, err := c.contracts.WithdrawnByContract(ctx, contractIDs)
	if err != nil {
		return nil, err
	}

	respList := make([]*core.Response, 0, len(list))
	for _, data := range list {
		resp := &core.Response{
			ID:                data.ID,
			OwnerID:           data.OwnerID,
			Company:           data.Company,
			GrainID:           data.GrainID,
			GrainName:         grainNames[data.GrainID],
			DueDate:           formatDate(data.DueDate),
			Value:             data.Value,
			Quantity:          data.Quantity,
			QuantityWithdrawn: withdrawn[data.ID],
			CreatedAt:         data.CreatedAt,
		}
		if data.PaymentDate != nil {
			paid := formatDate(*data.PaymentDate)
			resp.PaymentDate = &paid
		}
		respList = append(respList, resp)
	}
	return respList, nil
}

func (c *contractImpl) toResponse(ctx context.Context, data *model.Contract) (*core.Response, error) {
	respList, err := c.toResponses(ctx, []*model.Contract{data})
	if err != nil {
		return nil, err
	}
	return respList[0], nil
}

func (c *contractImpl) List(ctx context.Context, page *common.PageReq) (*common.PageResp[[]*core.Response], error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}
	list, total, err := c.contracts.ListContracts(ctx, user.ID, page)
	if err != nil {
		return nil, err
	}
	respList, err := c.toResponses(ctx, list)
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

func (c *contractImpl) Get(ctx context.Context, id int64) (*core.Response, error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}
	data, err := c.contracts.GetOwnedContract(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}
	return c.toResponse(ctx, data)
}

func (c *contractImpl) Create(ctx context.Context, req *core.CreateReq) (*core.Response, error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	data := &model.Contract{
		OwnerID:  user.ID,
		Company:  req.Company,
		GrainID:  req.GrainID,
		DueDate:  dueDate,
		Value:    req.Value,
		Quantity: req.Quantity,
	}
	if req.PaymentDate != nil {
		paid, err := parseDate(*req.PaymentDate)
		if err != nil {
			return nil, err
		}
		data.PaymentDate = &paid
	}

	if err := c.contracts.CreateContract(ctx, data); err != nil {
		logger.Errorf(ctx, "CreateContract err: %+v", err)
		return nil, err
	}
	return c.toResponse(ctx, data)
}

func (c *contractImpl) Update(ctx context.Context, id int64, req *core.UpdateReq) (*core.Response, error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}
	if _, err := c.contracts.GetOwnedContract(ctx, user.ID, id); err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if req.Company != nil {
		updates["company"] = *req.Company
	}
	if req.GrainID != nil {
		updates["grain_id"] = *req.GrainID
	}
	if req.DueDate != nil {
		dueDate, err := parseDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		updates["due_date"] = dueDate
	}
	if req.Value != nil {
		updates["value"] = *req.Value
	}
	if req.PaymentDate != nil {
		paid, err := parseDate(*req.PaymentDate)
		if err != nil {
			return nil, err
		}
		updates["payment_date"] = paid
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if len(updates) == 0 {
		return nil, code.ParamErr.WithMsg("at least one field to update is required")
	}

	if err := c.contracts.UpdateContract(ctx, id, updates); err != nil {
		return nil, err
	}
	data, err := c.contracts.GetOwnedContract(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}
	return c.toResponse(ctx, data)
}

func (c *contractImpl) Delete(ctx context.Context, id int64) error {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return code.UnLogin
	}
	return c.contracts.SoftDeleteContract(ctx, user.ID, id)
}
