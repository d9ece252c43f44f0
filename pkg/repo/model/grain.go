package model

// GrainType is seeded reference data, never soft-deleted.
type GrainType struct {
	BaseModel
	Name string `gorm:"type:text;not null;uniqueIndex" json:"name"`
}

func (*GrainType) TableName() string { return "grain_types" }

// Plot is an optional field-of-origin classification for additions.
type Plot struct {
	BaseModel
	Name string `gorm:"type:text;not null;uniqueIndex" json:"name"`
}

func (*Plot) TableName() string { return "plots" }
