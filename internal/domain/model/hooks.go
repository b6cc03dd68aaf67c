package model

import "gorm.io/gorm"

// 作成時の既定値。usecaseを通らない作成でも同じ値になるようにhookでも入れる。

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.Quantity == 0 {
		c.Quantity = 1
	}
	return nil
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	return nil
}

func (c *Carousel) BeforeCreate(tx *gorm.DB) error {
	if c.Status == "" {
		c.Status = CarouselStatusDraft
	}
	return nil
}
