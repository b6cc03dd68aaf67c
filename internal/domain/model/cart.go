package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カートの1行（ユーザー×商品）
// 合計金額は保存しない。読むたびに商品の現在価格から計算する。
type Cart struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Product   Product   `gorm:"constraint:OnDelete:CASCADE" json:"product"`
	Quantity  int64     `gorm:"not null;default:1;check:chk_carts_quantity,quantity >= 1" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 数量×商品価格
func (c Cart) TotalPrice() decimal.Decimal {
	return c.Product.Price.Mul(decimal.NewFromInt(c.Quantity))
}
