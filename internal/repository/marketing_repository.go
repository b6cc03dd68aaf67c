package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CarouselRepository interface {
	//statusが空なら全件
	List(ctx context.Context, status model.CarouselStatus) ([]model.Carousel, error)
	FindByID(ctx context.Context, id int64) (model.Carousel, error)
	Create(ctx context.Context, c model.Carousel) (model.Carousel, error)
	Update(ctx context.Context, c model.Carousel) error
	Delete(ctx context.Context, id int64) error
}

// 追記のみ。重複チェックはしない
type SubscribeRepository interface {
	Create(ctx context.Context, s model.Subscribe) (model.Subscribe, error)
	List(ctx context.Context, limit int, offset int) ([]model.Subscribe, error)
}
