package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	tx        *TxManagerMock
	orders    *MockOrderRepository
	carts     *MockCartRepository
	addresses *MockAddressRepository
	audit     *MockAuditRepository
}

func newOrderFixture() orderFixture {
	f := orderFixture{
		tx:        new(TxManagerMock),
		orders:    new(MockOrderRepository),
		carts:     new(MockCartRepository),
		addresses: new(MockAddressRepository),
		audit:     new(MockAuditRepository),
	}
	f.tx.Repos = &TxReposMock{orders: f.orders, carts: f.carts, addresses: f.addresses, auditLogs: f.audit}
	return f
}

func TestOrderUsecase_Checkout(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	addr := model.Address{ID: 4, UserID: 1, City: "Istanbul"}
	shirt := model.Product{ID: 7, Title: "Shirt", Price: decimal.RequireFromString("19.99"), IsActive: true}
	mug := model.Product{ID: 8, Title: "Mug", Price: decimal.RequireFromString("5.00"), IsActive: true}

	f.addresses.On("FindByID", ctx, int64(4)).Return(addr, nil).Once()
	f.tx.On("WithinTx", ctx).Return(nil).Once()
	f.carts.On("ListByUserID", ctx, int64(1)).Return([]model.Cart{
		{ID: 1, UserID: 1, ProductID: 7, Product: shirt, Quantity: 3},
		{ID: 2, UserID: 1, ProductID: 8, Product: mug, Quantity: 2},
	}, nil).Once()

	for _, line := range []struct {
		id        int64
		productID int64
		qty       int64
	}{{101, 7, 3}, {102, 8, 2}} {
		line := line
		f.orders.On("Create", ctx, mock.MatchedBy(func(o model.Order) bool {
			return o.UserID == 1 && o.AddressID == 4 && o.ProductID == line.productID && o.Status == model.OrderStatusPending
		})).Return(model.Order{ID: line.id, UserID: 1, AddressID: 4, ProductID: line.productID, Quantity: line.qty, Status: model.OrderStatusPending}, nil).Once()
	}
	f.carts.On("DeleteByUserID", ctx, int64(1)).Return(nil).Once()

	uc := usecase.NewOrderUsecase(f.tx, f.orders, f.addresses)
	out, err := uc.Checkout(ctx, 1, usecase.PlaceOrderInput{AddressID: 4})
	require.NoError(t, err)

	require.Len(t, out.Orders, 2)
	assert.Equal(t, "Pending", out.Orders[0].Status)
	assert.Equal(t, int64(3), out.Orders[0].Quantity)
	assert.Equal(t, "59.97", out.Orders[0].TotalPrice.StringFixed(2))
	assert.Equal(t, "69.97", out.Total.StringFixed(2))
	f.carts.AssertExpectations(t)
	f.orders.AssertExpectations(t)
}

func TestOrderUsecase_Checkout_EmptyCart(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	f.addresses.On("FindByID", ctx, int64(4)).Return(model.Address{ID: 4, UserID: 1}, nil).Once()
	f.tx.On("WithinTx", ctx).Return(nil).Once()
	f.carts.On("ListByUserID", ctx, int64(1)).Return([]model.Cart{}, nil).Once()

	uc := usecase.NewOrderUsecase(f.tx, f.orders, f.addresses)
	_, err := uc.Checkout(ctx, 1, usecase.PlaceOrderInput{AddressID: 4})
	he := requireHTTPError(t, err, http.StatusBadRequest)
	assert.Equal(t, "cart empty", he.Message)
	f.carts.AssertNotCalled(t, "DeleteByUserID", mock.Anything, mock.Anything)
}

func TestOrderUsecase_Checkout_ForeignAddress(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	f.addresses.On("FindByID", ctx, int64(4)).Return(model.Address{ID: 4, UserID: 2}, nil).Once()

	uc := usecase.NewOrderUsecase(f.tx, f.orders, f.addresses)
	_, err := uc.Checkout(ctx, 1, usecase.PlaceOrderInput{AddressID: 4})
	requireHTTPError(t, err, http.StatusForbidden)
	f.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestOrderUsecase_GetMyOrderDetail_OtherUser(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	f.orders.On("FindByID", ctx, int64(9)).Return(model.Order{ID: 9, UserID: 2}, nil).Once()

	uc := usecase.NewOrderUsecase(f.tx, f.orders, f.addresses)
	_, err := uc.GetMyOrderDetail(ctx, 1, 9)
	requireHTTPError(t, err, http.StatusNotFound)
}

func TestOrderUsecase_ListMyOrders(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	f.orders.On("ListByUserID", ctx, int64(1), 1, 20).Return([]model.Order{
		{ID: 2, UserID: 1, Quantity: 1, Status: model.OrderStatusAccepted, Product: model.Product{Price: decimal.RequireFromString("2.50")}},
	}, int64(1), nil).Once()

	uc := usecase.NewOrderUsecase(f.tx, f.orders, f.addresses)
	out, err := uc.ListMyOrders(ctx, 1, 1, 20)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Accepted", out.Items[0].Status)
	assert.Equal(t, "2.50", out.Items[0].TotalPrice.StringFixed(2))
}

func TestAdminOrderUsecase_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("forward step writes audit", func(t *testing.T) {
		f := newOrderFixture()
		f.tx.On("WithinTx", ctx).Return(nil).Once()
		f.orders.On("FindByID", ctx, int64(5)).Return(model.Order{ID: 5, Status: model.OrderStatusPending}, nil).Once()
		f.orders.On("UpdateStatus", ctx, int64(5), model.OrderStatusOnTheWay).Return(nil).Once()
		f.audit.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
			return l.Action == model.AuditActionUpdateOrderStatus &&
				l.ResourceID == 5 &&
				l.BeforeJSON == `{"status":"Pending"}` &&
				l.AfterJSON == `{"status":"On The Way"}`
		})).Return(nil).Once()

		uc := usecase.NewAdminOrderUsecase(f.tx, f.orders, f.addresses, new(MockProductRepository), f.audit)
		require.NoError(t, uc.UpdateStatus(ctx, 1, 5, usecase.AdminUpdateOrderStatusInput{Status: "On The Way"}))
		f.audit.AssertExpectations(t)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		f := newOrderFixture()
		f.tx.On("WithinTx", ctx).Return(nil).Once()
		f.orders.On("FindByID", ctx, int64(5)).Return(model.Order{ID: 5, Status: model.OrderStatusPacked}, nil).Once()

		uc := usecase.NewAdminOrderUsecase(f.tx, f.orders, f.addresses, new(MockProductRepository), f.audit)
		require.NoError(t, uc.UpdateStatus(ctx, 1, 5, usecase.AdminUpdateOrderStatusInput{Status: "Packed"}))
		f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		f.audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("terminal order cannot change", func(t *testing.T) {
		f := newOrderFixture()
		f.tx.On("WithinTx", ctx).Return(nil).Once()
		f.orders.On("FindByID", ctx, int64(5)).Return(model.Order{ID: 5, Status: model.OrderStatusDelivered}, nil).Once()

		uc := usecase.NewAdminOrderUsecase(f.tx, f.orders, f.addresses, new(MockProductRepository), f.audit)
		err := uc.UpdateStatus(ctx, 1, 5, usecase.AdminUpdateOrderStatusInput{Status: "Cancelled"})
		requireHTTPError(t, err, http.StatusBadRequest)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newOrderFixture()
		uc := usecase.NewAdminOrderUsecase(f.tx, f.orders, f.addresses, new(MockProductRepository), f.audit)
		err := uc.UpdateStatus(ctx, 1, 5, usecase.AdminUpdateOrderStatusInput{Status: "SHIPPED"})
		requireHTTPError(t, err, http.StatusBadRequest)
		f.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
	})

	t.Run("missing order", func(t *testing.T) {
		f := newOrderFixture()
		f.tx.On("WithinTx", ctx).Return(nil).Once()
		f.orders.On("FindByID", ctx, int64(5)).Return(model.Order{}, repo.ErrNotFound).Once()

		uc := usecase.NewAdminOrderUsecase(f.tx, f.orders, f.addresses, new(MockProductRepository), f.audit)
		err := uc.UpdateStatus(ctx, 1, 5, usecase.AdminUpdateOrderStatusInput{Status: "Accepted"})
		requireHTTPError(t, err, http.StatusNotFound)
	})
}

func TestAdminOrderUsecase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit initial status", func(t *testing.T) {
		f := newOrderFixture()
		products := new(MockProductRepository)
		f.addresses.On("FindByID", ctx, int64(4)).Return(model.Address{ID: 4, UserID: 2}, nil).Once()
		products.On("FindByID", ctx, int64(7)).Return(model.Product{ID: 7, Price: decimal.RequireFromString("3.00")}, nil).Once()
		f.orders.On("Create", ctx, mock.MatchedBy(func(o model.Order) bool {
			return o.Status == model.OrderStatusAccepted && o.Quantity == 1 && o.UserID == 2
		})).Return(model.Order{ID: 50, UserID: 2, AddressID: 4, ProductID: 7, Quantity: 1, Status: model.OrderStatusAccepted}, nil).Once()

		uc := usecase.NewAdminOrderUsecase(f.tx, f.orders, f.addresses, products, f.audit)
		out, err := uc.Create(ctx, 1, usecase.AdminCreateOrderInput{UserID: 2, AddressID: 4, ProductID: 7, Status: "Accepted"})
		require.NoError(t, err)
		assert.Equal(t, "Accepted", out.Status)
		assert.Equal(t, "3.00", out.TotalPrice.StringFixed(2))
	})

	t.Run("address of another user", func(t *testing.T) {
		f := newOrderFixture()
		f.addresses.On("FindByID", ctx, int64(4)).Return(model.Address{ID: 4, UserID: 3}, nil).Once()

		uc := usecase.NewAdminOrderUsecase(f.tx, f.orders, f.addresses, new(MockProductRepository), f.audit)
		_, err := uc.Create(ctx, 1, usecase.AdminCreateOrderInput{UserID: 2, AddressID: 4, ProductID: 7})
		requireHTTPError(t, err, http.StatusBadRequest)
	})

	t.Run("invalid status", func(t *testing.T) {
		f := newOrderFixture()
		uc := usecase.NewAdminOrderUsecase(f.tx, f.orders, f.addresses, new(MockProductRepository), f.audit)
		_, err := uc.Create(ctx, 1, usecase.AdminCreateOrderInput{UserID: 2, AddressID: 4, ProductID: 7, Status: "pending"})
		requireHTTPError(t, err, http.StatusBadRequest)
	})
}

func TestAdminOrderUsecase_List_InvalidStatus(t *testing.T) {
	f := newOrderFixture()
	uc := usecase.NewAdminOrderUsecase(f.tx, f.orders, f.addresses, new(MockProductRepository), f.audit)

	_, err := uc.List(context.Background(), repo.AdminOrderListFilter{Page: 1, Limit: 20, Status: "PAID"})
	requireHTTPError(t, err, http.StatusBadRequest)
}
