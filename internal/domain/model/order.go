package model

import "time"

type OrderStatus string

// 値はそのまま保存・JSONに出るので変更しないこと
const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusAccepted  OrderStatus = "Accepted"
	OrderStatusPacked    OrderStatus = "Packed"
	OrderStatusOnTheWay  OrderStatus = "On The Way"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// 進行順
var orderStatusFlow = []OrderStatus{
	OrderStatusPending,
	OrderStatusAccepted,
	OrderStatusPacked,
	OrderStatusOnTheWay,
	OrderStatusDelivered,
}

func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusAccepted,
		OrderStatusPacked,
		OrderStatusOnTheWay,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range OrderStatuses() {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// 終端（配達済み・キャンセル）
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// 前進のみ許可（飛ばしはOK）。キャンセルは終端以外から。
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	return flowIndex(next) > flowIndex(s)
}

func flowIndex(s OrderStatus) int {
	for i, st := range orderStatusFlow {
		if st == s {
			return i
		}
	}
	return -1
}

type Order struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64       `gorm:"not null;index" json:"user_id"`
	User        User        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AddressID   int64       `gorm:"not null;index" json:"address_id"`
	Address     Address     `gorm:"constraint:OnDelete:CASCADE" json:"address"`
	ProductID   int64       `gorm:"not null;index" json:"product_id"`
	Product     Product     `gorm:"constraint:OnDelete:CASCADE" json:"product"`
	Quantity    int64       `gorm:"not null;check:chk_orders_quantity,quantity >= 1" json:"quantity"`
	OrderedDate time.Time   `gorm:"not null;autoCreateTime;index" json:"ordered_date"`
	Status      OrderStatus `gorm:"type:varchar(50);not null;default:'Pending';index" json:"status"`
}
