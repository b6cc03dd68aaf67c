package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type carouselGormRepository struct {
	db *gorm.DB
}

func NewCarouselGormRepository(db *gorm.DB) repo.CarouselRepository {
	return &carouselGormRepository{db: db}
}

func (r *carouselGormRepository) List(ctx context.Context, status model.CarouselStatus) ([]model.Carousel, error) {
	q := r.db.WithContext(ctx).Model(&model.Carousel{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var list []model.Carousel
	if err := q.Order("created_at desc").Order("id desc").Find(&list).Error; err != nil {
		return []model.Carousel{}, err
	}
	return list, nil
}

func (r *carouselGormRepository) FindByID(ctx context.Context, id int64) (model.Carousel, error) {
	var c model.Carousel
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return model.Carousel{}, translate(err)
	}
	return c, nil
}

func (r *carouselGormRepository) Create(ctx context.Context, c model.Carousel) (model.Carousel, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Carousel{}, translate(err)
	}
	return c, nil
}

func (r *carouselGormRepository) Update(ctx context.Context, c model.Carousel) error {
	res := r.db.WithContext(ctx).Model(&model.Carousel{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"title":       c.Title,
		"subtitle":    c.Subtitle,
		"cover_image": c.CoverImage,
		"status":      c.Status,
	})
	return affected(res)
}

func (r *carouselGormRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.WithContext(ctx).Delete(&model.Carousel{}, id))
}

type subscribeGormRepository struct {
	db *gorm.DB
}

func NewSubscribeGormRepository(db *gorm.DB) repo.SubscribeRepository {
	return &subscribeGormRepository{db: db}
}

func (r *subscribeGormRepository) Create(ctx context.Context, s model.Subscribe) (model.Subscribe, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.Subscribe{}, translate(err)
	}
	return s, nil
}

func (r *subscribeGormRepository) List(ctx context.Context, limit int, offset int) ([]model.Subscribe, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var list []model.Subscribe
	if err := r.db.WithContext(ctx).
		Order("id desc").
		Limit(limit).Offset(offset).
		Find(&list).Error; err != nil {
		return []model.Subscribe{}, err
	}
	return list, nil
}
