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

func TestCartUsecase_AddToCart_DefaultQuantityAndTotals(t *testing.T) {
	ctx := context.Background()
	carts := new(MockCartRepository)
	products := new(MockProductRepository)

	shirt := model.Product{ID: 7, Title: "Shirt", Price: decimal.RequireFromString("19.99"), IsActive: true}
	products.On("FindByID", ctx, int64(7)).Return(shirt, nil).Once()
	carts.On("AddOrIncrement", ctx, int64(1), int64(7), int64(1)).Return(model.Cart{ID: 3}, nil).Once()
	carts.On("ListByUserID", ctx, int64(1)).Return([]model.Cart{
		{ID: 3, UserID: 1, ProductID: 7, Product: shirt, Quantity: 3},
		{ID: 4, UserID: 1, ProductID: 8, Product: model.Product{ID: 8, Price: decimal.RequireFromString("0.03")}, Quantity: 1},
	}, nil).Once()

	uc := usecase.NewCartUsecase(carts, products)
	res, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{ProductID: 7})
	require.NoError(t, err)

	require.Len(t, res.Items, 2)
	assert.Equal(t, "59.97", res.Items[0].TotalPrice.StringFixed(2))
	assert.Equal(t, "60.00", res.Total.StringFixed(2))
	carts.AssertExpectations(t)
}

func TestCartUsecase_AddToCart_Rejects(t *testing.T) {
	ctx := context.Background()

	t.Run("inactive product", func(t *testing.T) {
		products := new(MockProductRepository)
		carts := new(MockCartRepository)
		products.On("FindByID", ctx, int64(7)).Return(model.Product{ID: 7, IsActive: false}, nil).Once()

		uc := usecase.NewCartUsecase(carts, products)
		_, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{ProductID: 7, Quantity: 2})
		requireHTTPError(t, err, http.StatusBadRequest)
		carts.AssertNotCalled(t, "AddOrIncrement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing product", func(t *testing.T) {
		products := new(MockProductRepository)
		products.On("FindByID", ctx, int64(9)).Return(model.Product{}, repo.ErrNotFound).Once()

		uc := usecase.NewCartUsecase(new(MockCartRepository), products)
		_, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{ProductID: 9})
		requireHTTPError(t, err, http.StatusBadRequest)
	})

	t.Run("negative quantity", func(t *testing.T) {
		uc := usecase.NewCartUsecase(new(MockCartRepository), new(MockProductRepository))
		_, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{ProductID: 7, Quantity: -1})
		requireHTTPError(t, err, http.StatusBadRequest)
	})
}

func TestCartUsecase_UpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("own line", func(t *testing.T) {
		carts := new(MockCartRepository)
		carts.On("FindByID", ctx, int64(3)).Return(model.Cart{ID: 3, UserID: 1}, nil).Once()
		carts.On("UpdateQuantity", ctx, int64(3), int64(5)).Return(nil).Once()
		carts.On("ListByUserID", ctx, int64(1)).Return([]model.Cart{}, nil).Once()

		uc := usecase.NewCartUsecase(carts, new(MockProductRepository))
		res, err := uc.UpdateQuantity(ctx, 1, 3, 5)
		require.NoError(t, err)
		assert.True(t, res.Total.IsZero())
		carts.AssertExpectations(t)
	})

	t.Run("someone else's line", func(t *testing.T) {
		carts := new(MockCartRepository)
		carts.On("FindByID", ctx, int64(3)).Return(model.Cart{ID: 3, UserID: 2}, nil).Once()

		uc := usecase.NewCartUsecase(carts, new(MockProductRepository))
		_, err := uc.UpdateQuantity(ctx, 1, 3, 5)
		requireHTTPError(t, err, http.StatusNotFound)
	})

	t.Run("zero quantity", func(t *testing.T) {
		uc := usecase.NewCartUsecase(new(MockCartRepository), new(MockProductRepository))
		_, err := uc.UpdateQuantity(ctx, 1, 3, 0)
		requireHTTPError(t, err, http.StatusBadRequest)
	})
}

func TestCartUsecase_RemoveItem(t *testing.T) {
	ctx := context.Background()
	carts := new(MockCartRepository)
	carts.On("FindByID", ctx, int64(3)).Return(model.Cart{ID: 3, UserID: 1}, nil).Once()
	carts.On("DeleteByID", ctx, int64(3)).Return(nil).Once()
	carts.On("ListByUserID", ctx, int64(1)).Return([]model.Cart{}, nil).Once()

	uc := usecase.NewCartUsecase(carts, new(MockProductRepository))
	res, err := uc.RemoveItem(ctx, 1, 3)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	carts.AssertExpectations(t)
}
