package contract

import (
	"context"
	"time"

	"github.com/agrosilo/silosys/pkg/common"
)

// DateOnly is the wire format for contract dates.
const DateOnly = "2006-01-02"

type CreateReq struct {
	Company     string  `json:"company" binding:"required,min=1"`
	GrainID     int64   `json:"grain_id" binding:"required,gt=0"`
	DueDate     string  `json:"due_date" binding:"required"`
	Value       int64   `json:"value" binding:"required,gt=0"`
	PaymentDate *string `json:"payment_date"`
	Quantity    int64   `json:"quantity" binding:"required,gt=0"`
}

type UpdateReq struct {
	Company     *string `json:"company" binding:"omitempty,min=1"`
	GrainID     *int64  `json:"grain_id" binding:"omitempty,gt=0"`
	DueDate     *string `json:"due_date"`
	Value       *int64  `json:"value" binding:"omitempty,gt=0"`
	PaymentDate *string `json:"payment_date"`
	Quantity    *int64  `json:"quantity" binding:"omitempty,gt=0"`
}

// Response reports the contracted quantity next to the quantity already
// withdrawn against the contract, derived from the active withdrawals.
type Response struct {
	ID                int64     `json:"id"`
	OwnerID           int64     `json:"owner_id"`
	Company           string    `json:"company"`
	GrainID           int64     `json:"grain_id"`
	GrainName         string    `json:"grain_name,omitempty"`
	DueDate           string    `json:"due_date"`
	Value             int64     `json:"value"`
	PaymentDate       *string   `json:"payment_date"`
	Quantity          int64     `json:"quantity"`
	QuantityWithdrawn int64     `json:"quantity_withdrawn"`
	CreatedAt         time.Time `json:"created_at"`
}

type Service interface {
	List(ctx context.Context, page *common.PageReq) (*common.PageResp[[]*Response], error)
	Get(ctx context.Context, id int64) (*Response, error)
	Create(ctx context.Context, req *CreateReq) (*Response, error)
	Update(ctx context.Context, id int64, req *UpdateReq) (*Response, error)
	Delete(ctx context.Context, id int64) error
}
