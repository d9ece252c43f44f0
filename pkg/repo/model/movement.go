package model

import "time"

// Addition is an inbound delivery. Weights are stored as gross+tare; the
// net quantity is always derived, never stored, so the two can be corrected
// independently after weighing.
type Addition struct {
	BaseModel
	WarehouseID int64      `gorm:"not null;index:idx_addition_warehouse" json:"warehouse_id"`
	GrainID     int64      `gorm:"not null" json:"grain_id"`
	PlotID      *int64     `json:"plot_id"`
	OwnerID     int64      `gorm:"not null;index:idx_addition_owner" json:"owner_id"`
	GrossWeight int64      `gorm:"not null;default:0" json:"gross_weight"`
	TareWeight  int64      `gorm:"not null;default:0" json:"tare_weight"`
	Humidity    *int64     `json:"humidity"`
	Discount    *int64     `json:"discount"`
	Plate       *string    `gorm:"type:text" json:"plate"`
	DeletedAt   *time.Time `gorm:"index" json:"-"`
}

func (*Addition) TableName() string { return "additions" }

// NetQuantity is gross minus tare, floored at zero.
func (a *Addition) NetQuantity() int64 {
	return clampNet(a.GrossWeight, a.TareWeight)
}

// Withdrawal is an outbound load, optionally drawing against a contract.
// Gross/tare may be nil until the truck is weighed; the net of an unweighed
// withdrawal is zero.
type Withdrawal struct {
	BaseModel
	WarehouseID int64      `gorm:"not null;index:idx_withdrawal_warehouse" json:"warehouse_id"`
	GrainID     int64      `gorm:"not null" json:"grain_id"`
	ContractID  *int64     `gorm:"index:idx_withdrawal_contract" json:"contract_id"`
	OwnerID     int64      `gorm:"not null;index:idx_withdrawal_owner" json:"owner_id"`
	GrossWeight *int64     `json:"gross_weight"`
	TareWeight  *int64     `json:"tare_weight"`
	Plate       *string    `gorm:"type:text" json:"plate"`
	DeletedAt   *time.Time `gorm:"index" json:"-"`
}

func (*Withdrawal) TableName() string { return "withdrawals" }

func (w *Withdrawal) NetQuantity() int64 {
	var gross, tare int64
	if w.GrossWeight != nil {
		gross = *w.GrossWeight
	}
	if w.TareWeight != nil {
		tare = *w.TareWeight
	}
	return clampNet(gross, tare)
}

func clampNet(gross, tare int64) int64 {
	if net := gross - tare; net > 0 {
		return net
	}
	return 0
}
