package model

import "time"

// Contract is a sale agreement withdrawals can draw against. The withdrawn
// quantity is derived from active withdrawals referencing the contract.
type Contract struct {
	BaseModel
	OwnerID     int64      `gorm:"not null;index:idx_contract_owner" json:"owner_id"`
	Company     string     `gorm:"type:text;not null" json:"company"`
	GrainID     int64      `gorm:"not null" json:"grain_id"`
	DueDate     time.Time  `gorm:"type:date;not null" json:"due_date"`
	Value       int64      `gorm:"not null" json:"value"`
	PaymentDate *time.Time `gorm:"type:date" json:"payment_date"`
	Quantity    int64      `gorm:"not null" json:"quantity"`
	DeletedAt   *time.Time `gorm:"index" json:"-"`
}

func (*Contract) TableName() string { return "contracts" }
