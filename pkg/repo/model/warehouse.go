package model

import "time"

// Warehouse is a fixed-capacity silo. Capacity and all stock figures are
// whole kilograms. DeletedAt is the soft-delete mark: a non-nil value
// removes the row from every read and every aggregate, the row itself stays.
type Warehouse struct {
	BaseModel
	OwnerID   int64      `gorm:"not null;index:idx_warehouse_owner" json:"owner_id"`
	Name      string     `gorm:"type:text;not null" json:"name"`
	Capacity  int64      `gorm:"not null;check:capacity > 0" json:"capacity"`
	DeletedAt *time.Time `gorm:"index" json:"-"`
}

func (*Warehouse) TableName() string { return "warehouses" }
