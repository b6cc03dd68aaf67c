package usecase

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx        repo.TransactionManager
	orders    repo.OrderRepository
	addresses repo.AddressRepository
}

func NewOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, addresses repo.AddressRepository) *OrderUsecase {
	return &OrderUsecase{tx: tx, orders: orders, addresses: addresses}
}

type PlaceOrderInput struct {
	AddressID int64
}

type OrderOutput struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	AddressID    int64           `json:"address_id"`
	Address      *AddressDTO     `json:"address,omitempty"`
	ProductID    int64           `json:"product_id"`
	ProductTitle string          `json:"product_title"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int64           `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	OrderedDate  time.Time       `json:"ordered_date"`
	Status       string          `json:"status"`
}

type OrderListOutput struct {
	Items []OrderOutput `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

type CheckoutOutput struct {
	Orders []OrderOutput   `json:"orders"`
	Total  decimal.Decimal `json:"total"`
}

// カートの各行を1件ずつ注文にし、カートを空にする（1トランザクション）
func (u *OrderUsecase) Checkout(ctx context.Context, userID int64, in PlaceOrderInput) (CheckoutOutput, error) {
	if userID <= 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.AddressID <= 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid address_id")
	}

	//住所の存在確認＋所有チェック
	addr, err := u.addresses.FindByID(ctx, in.AddressID)
	if err != nil {
		return CheckoutOutput{}, dbError(err)
	}
	if addr.UserID != userID {
		return CheckoutOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	out := CheckoutOutput{Total: decimal.Zero}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		lines, err := r.Carts().ListByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		out.Orders = make([]OrderOutput, 0, len(lines))
		for _, c := range lines {
			if !c.Product.IsActive {
				return NewHTTPError(http.StatusBadRequest, "product not available")
			}

			o, err := r.Orders().Create(ctx, model.Order{
				UserID:    userID,
				AddressID: addr.ID,
				ProductID: c.ProductID,
				Quantity:  c.Quantity,
				Status:    model.OrderStatusPending,
			})
			if err != nil {
				return err
			}
			o.Address = addr
			o.Product = c.Product

			oo := toOrderOutput(o)
			out.Orders = append(out.Orders, oo)
			out.Total = out.Total.Add(oo.TotalPrice)
		}

		//注文にした行はカートから消す
		return r.Carts().DeleteByUserID(ctx, userID)
	})
	if err != nil {
		return CheckoutOutput{}, txError(err)
	}
	return out, nil
}

// 新しい順
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, page int, limit int) (OrderListOutput, error) {
	if userID <= 0 {
		return OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := pageParams(page, limit); err != nil {
		return OrderListOutput{}, err
	}

	orders, total, err := u.orders.ListByUserID(ctx, userID, page, limit)
	if err != nil {
		return OrderListOutput{}, dbError(err)
	}
	return toOrderListOutput(orders, total, page, limit), nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, dbError(err)
	}
	if o.UserID != userID {
		//他人の注文は「存在しない扱い」にする
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return toOrderOutput(o), nil
}

// 合計は商品の現在価格から出す
func toOrderOutput(o model.Order) OrderOutput {
	out := OrderOutput{
		ID:           o.ID,
		UserID:       o.UserID,
		AddressID:    o.AddressID,
		ProductID:    o.ProductID,
		ProductTitle: o.Product.Title,
		UnitPrice:    o.Product.Price,
		Quantity:     o.Quantity,
		TotalPrice:   o.Product.Price.Mul(decimal.NewFromInt(o.Quantity)),
		OrderedDate:  o.OrderedDate,
		Status:       string(o.Status),
	}
	if o.Address.ID != 0 {
		a := toAddressDTO(o.Address)
		out.Address = &a
	}
	return out
}

func toOrderListOutput(orders []model.Order, total int64, page int, limit int) OrderListOutput {
	items := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items = append(items, toOrderOutput(o))
	}
	return OrderListOutput{Items: items, Total: total, Page: page, Limit: limit}
}
