package model

type User struct {
	BaseModel
	Name         string  `gorm:"type:text;not null" json:"name"`
	Email        string  `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordHash string  `gorm:"type:text;not null" json:"-"`
	ProfilePhoto *string `gorm:"type:text" json:"profile_photo"`
}

func (*User) TableName() string { return "users" }
