package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// decimal(8,2)の上限
var MaxPrice = decimal.RequireFromString("999999.99")

type Product struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title             string          `gorm:"type:varchar(150);not null" json:"title"`
	Slug              string          `gorm:"type:varchar(160);not null;index" json:"slug"`
	SKU               string          `gorm:"column:sku;type:varchar(255);not null;uniqueIndex" json:"sku"`
	ShortDescription  string          `gorm:"type:text;not null" json:"short_description"`
	DetailDescription string          `gorm:"type:text" json:"detail_description"`
	ImageRef          string          `gorm:"type:varchar(255)" json:"image_ref"`
	Price             decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"price"`
	CategoryID        int64           `gorm:"not null;index" json:"category_id"`
	Category          Category        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	IsActive          bool            `gorm:"not null;default:false" json:"is_active"`
	IsFeatured        bool            `gorm:"not null;default:false" json:"is_featured"`
	CreatedAt         time.Time       `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 0以上かつdecimal(8,2)に収まるか
func ValidPrice(p decimal.Decimal) bool {
	if p.IsNegative() || p.GreaterThan(MaxPrice) {
		return false
	}
	return p.Equal(p.Round(2))
}
