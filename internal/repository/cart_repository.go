package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// カート行。読み出し時はProductを一緒に読む（合計は現在価格で計算するため）
type CartRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.Cart, error)
	FindByID(ctx context.Context, cartID int64) (model.Cart, error)
	// 同一商品は数量を加算
	AddOrIncrement(ctx context.Context, userID int64, productID int64, qty int64) (model.Cart, error)
	UpdateQuantity(ctx context.Context, cartID int64, qty int64) error
	DeleteByID(ctx context.Context, cartID int64) error
	DeleteByUserID(ctx context.Context, userID int64) error
}
