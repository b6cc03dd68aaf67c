package model

import "time"

// 配送先住所
type Address struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`
	User   User  `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	//最寄りの目印（店舗・施設など）
	Locality string `gorm:"type:varchar(150);not null" json:"locality"`

	//市区町村
	City string `gorm:"type:varchar(150);not null" json:"city"`

	//州・県
	State string `gorm:"type:varchar(150);not null" json:"state"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
