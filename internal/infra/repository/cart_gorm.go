package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// ユーザーのカート行一覧（商品つき）
func (r *CartGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Cart, error) {
	var items []model.Cart

	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.Cart{}, err
	}

	return items, nil
}

// カート行を取得（商品つき）
func (r *CartGormRepository) FindByID(ctx context.Context, cartID int64) (model.Cart, error) {
	var item model.Cart

	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("id = ?", cartID).
		First(&item).Error
	if err != nil {
		return model.Cart{}, translate(err)
	}
	return item, nil
}

// 同一商品は数量加算
func (r *CartGormRepository) AddOrIncrement(ctx context.Context, userID int64, productID int64, qty int64) (model.Cart, error) {
	if qty <= 0 {
		return model.Cart{}, errors.New("invalid quantity")
	}

	var out model.Cart
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.Cart

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&item).Error

		if err == nil {
			// 既存ありだったら数量を増やす
			res := tx.Model(&model.Cart{}).
				Where("id = ?", item.ID).
				Update("quantity", gorm.Expr("quantity + ?", qty))
			if err := affected(res); err != nil {
				return err
			}
			out.ID = item.ID
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		//無い場合は新規作成
		newItem := model.Cart{
			UserID:    userID,
			ProductID: productID,
			Quantity:  qty,
		}
		if err := tx.Omit("User", "Product").Create(&newItem).Error; err != nil {
			return translate(err)
		}
		out.ID = newItem.ID
		return nil
	})
	if err != nil {
		return model.Cart{}, err
	}

	return r.FindByID(ctx, out.ID)
}

// 行の数量を更新
func (r *CartGormRepository) UpdateQuantity(ctx context.Context, cartID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("id = ?", cartID).
		Update("quantity", qty)
	return affected(res)
}

// 行を削除
func (r *CartGormRepository) DeleteByID(ctx context.Context, cartID int64) error {
	return affected(r.db.WithContext(ctx).Delete(&model.Cart{}, cartID))
}

// ユーザーのカートを空にする（0件でもエラーにしない）
func (r *CartGormRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Cart{}).Error
}

var _ repo.CartRepository = (*CartGormRepository)(nil)
