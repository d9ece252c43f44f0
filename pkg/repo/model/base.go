package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/agrosilo/silosys/pkg/common/uuid"
)

type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"uuid"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (b *BaseModel) BeforeCreate(*gorm.DB) error {
	if b.UUID == uuid.Nil {
		b.UUID = uuid.New()
	}
	return nil
}

type BaseDBModel interface {
	GetID() int64
	GetUUID() uuid.UUID
}

func (b BaseModel) GetID() int64 {
	return b.ID
}

func (b BaseModel) GetUUID() uuid.UUID {
	return b.UUID
}
