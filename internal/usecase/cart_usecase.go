package usecase

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジック。
// 金額は保存せず、読むたびに商品の現在価格で出す。
type CartUsecase struct {
	carts    repo.CartRepository
	products repo.ProductRepository
}

func NewCartUsecase(carts repo.CartRepository, products repo.ProductRepository) *CartUsecase {
	return &CartUsecase{carts: carts, products: products}
}

type CartLineResponse struct {
	ID         int64           `json:"id"`
	ProductID  int64           `json:"product_id"`
	Title      string          `json:"title"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int64           `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64 // 0なら1
}

func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return u.buildCartResponse(ctx, userID)
}

// 同じ商品は数量を加算する
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	//公開中の商品だけ
	p, err := u.products.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && !p.IsActive) {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "product not available")
	}
	if err != nil {
		return CartResponse{}, dbError(err)
	}

	if _, err := u.carts.AddOrIncrement(ctx, userID, in.ProductID, in.Quantity); err != nil {
		return CartResponse{}, dbError(err)
	}
	return u.buildCartResponse(ctx, userID)
}

func (u *CartUsecase) UpdateQuantity(ctx context.Context, userID int64, cartID int64, qty int64) (CartResponse, error) {
	if qty < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}
	if _, err := u.owned(ctx, userID, cartID); err != nil {
		return CartResponse{}, err
	}
	if err := u.carts.UpdateQuantity(ctx, cartID, qty); err != nil {
		return CartResponse{}, dbError(err)
	}
	return u.buildCartResponse(ctx, userID)
}

func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, cartID int64) (CartResponse, error) {
	if _, err := u.owned(ctx, userID, cartID); err != nil {
		return CartResponse{}, err
	}
	if err := u.carts.DeleteByID(ctx, cartID); err != nil {
		return CartResponse{}, dbError(err)
	}
	return u.buildCartResponse(ctx, userID)
}

func (u *CartUsecase) Clear(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.carts.DeleteByUserID(ctx, userID); err != nil {
		return dbError(err)
	}
	return nil
}

// 他人のカート行は404
func (u *CartUsecase) owned(ctx context.Context, userID int64, cartID int64) (model.Cart, error) {
	if userID <= 0 {
		return model.Cart{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartID <= 0 {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	c, err := u.carts.FindByID(ctx, cartID)
	if err != nil {
		return model.Cart{}, dbError(err)
	}
	if c.UserID != userID {
		return model.Cart{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return c, nil
}

func (u *CartUsecase) buildCartResponse(ctx context.Context, userID int64) (CartResponse, error) {
	lines, err := u.carts.ListByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, dbError(err)
	}
	return toCartResponse(lines), nil
}

func toCartResponse(lines []model.Cart) CartResponse {
	res := CartResponse{Items: make([]CartLineResponse, 0, len(lines)), Total: decimal.Zero}
	for _, c := range lines {
		line := CartLineResponse{
			ID:         c.ID,
			ProductID:  c.ProductID,
			Title:      c.Product.Title,
			UnitPrice:  c.Product.Price,
			Quantity:   c.Quantity,
			TotalPrice: c.TotalPrice(),
		}
		res.Items = append(res.Items, line)
		res.Total = res.Total.Add(line.TotalPrice)
	}
	return res
}
