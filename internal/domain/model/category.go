package model

import "time"

type Category struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string `gorm:"type:varchar(50);not null" json:"title"`
	Slug        string `gorm:"type:varchar(55);not null;uniqueIndex" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	//画像はストレージ上のキーだけ持つ
	ImageRef   string    `gorm:"type:varchar(255)" json:"image_ref"`
	IsActive   bool      `gorm:"not null;default:false" json:"is_active"`
	IsFeatured bool      `gorm:"not null;default:false" json:"is_featured"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
