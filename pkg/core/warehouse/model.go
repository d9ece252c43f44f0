package warehouse

import (
	"context"
	"time"

	"github.com/agrosilo/silosys/pkg/common"
)

type CreateReq struct {
	Name     string `json:"name" binding:"required,min=1"`
	Capacity int64  `json:"capacity" binding:"required,gt=0"`
}

type UpdateReq struct {
	Name     *string `json:"name" binding:"omitempty,min=1"`
	Capacity *int64  `json:"capacity" binding:"omitempty,gt=0"`
}

// Response carries the derived fields alongside the stored ones: Stock and
// GrainID are recomputed from the movement history on every read.
type Response struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	Capacity  int64     `json:"capacity"`
	Stock     int64     `json:"stock"`
	GrainID   *int64    `json:"grain_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Service interface {
	List(ctx context.Context, page *common.PageReq) (*common.PageResp[[]*Response], error)
	Get(ctx context.Context, id int64) (*Response, error)
	Create(ctx context.Context, req *CreateReq) (*Response, error)
	Update(ctx context.Context, id int64, req *UpdateReq) (*Response, error)
	Delete(ctx context.Context, id int64) error
}
