package model_test

import (
	"testing"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_TotalPrice(t *testing.T) {
	p := model.Product{SKU: "SKU-1", Price: decimal.RequireFromString("19.99")}
	c := model.Cart{Product: p, Quantity: 3}

	assert.True(t, decimal.RequireFromString("59.97").Equal(c.TotalPrice()))
}

func TestCart_TotalPrice_FollowsLivePrice(t *testing.T) {
	c := model.Cart{Product: model.Product{Price: decimal.RequireFromString("10.00")}, Quantity: 2}
	assert.Equal(t, "20", c.TotalPrice().String())

	//商品価格を変えるとカート側は触らずに合計が変わる
	c.Product.Price = decimal.RequireFromString("12.50")
	assert.Equal(t, int64(2), c.Quantity)
	assert.Equal(t, "25", c.TotalPrice().String())
}

func TestValidPrice(t *testing.T) {
	assert.True(t, model.ValidPrice(decimal.Zero))
	assert.True(t, model.ValidPrice(decimal.RequireFromString("999999.99")))
	assert.False(t, model.ValidPrice(decimal.RequireFromString("-0.01")))
	assert.False(t, model.ValidPrice(decimal.RequireFromString("1000000.00")))
	assert.False(t, model.ValidPrice(decimal.RequireFromString("1.999")))
}

func TestOrder_DefaultStatus(t *testing.T) {
	o := &model.Order{Quantity: 1}
	require.NoError(t, o.BeforeCreate(nil))
	assert.Equal(t, model.OrderStatusPending, o.Status)

	o2 := &model.Order{Quantity: 1, Status: model.OrderStatusAccepted}
	require.NoError(t, o2.BeforeCreate(nil))
	assert.Equal(t, model.OrderStatusAccepted, o2.Status)
}

func TestCarousel_DefaultStatus(t *testing.T) {
	c := &model.Carousel{Title: "sale"}
	require.NoError(t, c.BeforeCreate(nil))
	assert.Equal(t, model.CarouselStatusDraft, c.Status)

	c2 := &model.Carousel{Status: model.CarouselStatusPublished}
	require.NoError(t, c2.BeforeCreate(nil))
	assert.Equal(t, model.CarouselStatusPublished, c2.Status)
}

func TestCart_DefaultQuantity(t *testing.T) {
	c := &model.Cart{}
	require.NoError(t, c.BeforeCreate(nil))
	assert.Equal(t, int64(1), c.Quantity)
}

func TestOrderStatus_ExactValues(t *testing.T) {
	want := []string{"Pending", "Accepted", "Packed", "On The Way", "Delivered", "Cancelled"}
	got := make([]string, 0, len(want))
	for _, s := range model.OrderStatuses() {
		got = append(got, string(s))
	}
	assert.Equal(t, want, got)

	st, ok := model.ParseOrderStatus("On The Way")
	assert.True(t, ok)
	assert.Equal(t, model.OrderStatusOnTheWay, st)

	_, ok = model.ParseOrderStatus("SHIPPED")
	assert.False(t, ok)
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to model.OrderStatus
		ok       bool
	}{
		{model.OrderStatusPending, model.OrderStatusAccepted, true},
		{model.OrderStatusPending, model.OrderStatusDelivered, true},
		{model.OrderStatusPacked, model.OrderStatusOnTheWay, true},
		{model.OrderStatusPacked, model.OrderStatusAccepted, false},
		{model.OrderStatusAccepted, model.OrderStatusPending, false},
		{model.OrderStatusOnTheWay, model.OrderStatusCancelled, true},
		{model.OrderStatusDelivered, model.OrderStatusCancelled, false},
		{model.OrderStatusCancelled, model.OrderStatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestParseCarouselStatus(t *testing.T) {
	for _, s := range []string{"draft", "published", "deleted"} {
		_, ok := model.ParseCarouselStatus(s)
		assert.True(t, ok, s)
	}
	_, ok := model.ParseCarouselStatus("Draft")
	assert.False(t, ok)
}
