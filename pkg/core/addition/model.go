package addition

import (
	"context"
	"time"

	"github.com/agrosilo/silosys/pkg/common"
)

// CreateReq accepts either the full gross/tare pair or the legacy single
// quantity field, which is treated as a gross weight with zero tare.
type CreateReq struct {
	WarehouseID int64   `json:"warehouse_id" binding:"required,gt=0"`
	GrainID     int64   `json:"grain_id" binding:"required,gt=0"`
	PlotID      *int64  `json:"plot_id" binding:"omitempty,gt=0"`
	GrossWeight *int64  `json:"gross_weight" binding:"omitempty,gte=0"`
	TareWeight  *int64  `json:"tare_weight" binding:"omitempty,gte=0"`
	Quantity    *int64  `json:"quantity" binding:"omitempty,gte=0"`
	Humidity    *int64  `json:"humidity"`
	Discount    *int64  `json:"discount"`
	Plate       *string `json:"plate"`
}

type UpdateReq struct {
	WarehouseID *int64  `json:"warehouse_id" binding:"omitempty,gt=0"`
	GrainID     *int64  `json:"grain_id" binding:"omitempty,gt=0"`
	PlotID      *int64  `json:"plot_id" binding:"omitempty,gt=0"`
	GrossWeight *int64  `json:"gross_weight" binding:"omitempty,gte=0"`
	TareWeight  *int64  `json:"tare_weight" binding:"omitempty,gte=0"`
	Humidity    *int64  `json:"humidity"`
	Discount    *int64  `json:"discount"`
	Plate       *string `json:"plate"`
}

type Response struct {
	ID          int64     `json:"id"`
	WarehouseID int64     `json:"warehouse_id"`
	GrainID     int64     `json:"grain_id"`
	GrainName   string    `json:"grain_name,omitempty"`
	PlotID      *int64    `json:"plot_id"`
	PlotName    *string   `json:"plot_name,omitempty"`
	OwnerID     int64     `json:"owner_id"`
	GrossWeight int64     `json:"gross_weight"`
	TareWeight  int64     `json:"tare_weight"`
	NetQuantity int64     `json:"net_quantity"`
	Humidity    *int64    `json:"humidity"`
	Discount    *int64    `json:"discount"`
	Plate       *string   `json:"plate"`
	CreatedAt   time.Time `json:"created_at"`
}

type Service interface {
	List(ctx context.Context, page *common.PageReq) (*common.PageResp[[]*Response], error)
	Get(ctx context.Context, id int64) (*Response, error)
	Create(ctx context.Context, req *CreateReq) (*Response, error)
	Update(ctx context.Context, id int64, req *UpdateReq) (*Response, error)
	Delete(ctx context.Context, id int64) error
}
