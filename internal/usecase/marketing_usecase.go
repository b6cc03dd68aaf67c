package usecase

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/validator"
)

type CarouselDTO struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Subtitle      string    `json:"subtitle"`
	CoverImage    string    `json:"cover_image"`
	CoverImageURL string    `json:"cover_image_url"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Statusを省略すると作成時はdraft、更新時は現状維持
type CarouselInput = validator.Carousel

type MarketingUsecase struct {
	carousels  repo.CarouselRepository
	subscribes repo.SubscribeRepository
	media      MediaResolver
	subscribe  *validator.SubscribeValidator
	carousel   *validator.CarouselValidator
}

func NewMarketingUsecase(carousels repo.CarouselRepository, subscribes repo.SubscribeRepository, media MediaResolver) *MarketingUsecase {
	return &MarketingUsecase{
		carousels:  carousels,
		subscribes: subscribes,
		media:      media,
		subscribe:  validator.NewSubscribeValidator(),
		carousel:   validator.NewCarouselValidator(),
	}
}

// 公開中のスライドだけ
func (u *MarketingUsecase) ListPublishedCarousels(ctx context.Context) ([]CarouselDTO, error) {
	return u.listCarousels(ctx, model.CarouselStatusPublished)
}

// statusが空なら全件
func (u *MarketingUsecase) AdminListCarousels(ctx context.Context, status string) ([]CarouselDTO, error) {
	var st model.CarouselStatus
	if status != "" {
		s, ok := model.ParseCarouselStatus(status)
		if !ok {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		st = s
	}
	return u.listCarousels(ctx, st)
}

func (u *MarketingUsecase) AdminCreateCarousel(ctx context.Context, in CarouselInput) (CarouselDTO, error) {
	c, err := u.applyCarousel(in, model.Carousel{Status: model.CarouselStatusDraft})
	if err != nil {
		return CarouselDTO{}, err
	}
	created, err := u.carousels.Create(ctx, c)
	if err != nil {
		return CarouselDTO{}, dbError(err)
	}
	return u.toCarouselDTO(ctx, created)
}

func (u *MarketingUsecase) AdminUpdateCarousel(ctx context.Context, carouselID int64, in CarouselInput) (CarouselDTO, error) {
	if carouselID <= 0 {
		return CarouselDTO{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	current, err := u.carousels.FindByID(ctx, carouselID)
	if err != nil {
		return CarouselDTO{}, dbError(err)
	}
	c, err := u.applyCarousel(in, current)
	if err != nil {
		return CarouselDTO{}, err
	}
	if err := u.carousels.Update(ctx, c); err != nil {
		return CarouselDTO{}, dbError(err)
	}
	return u.toCarouselDTO(ctx, c)
}

func (u *MarketingUsecase) AdminDeleteCarousel(ctx context.Context, carouselID int64) error {
	if carouselID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.carousels.Delete(ctx, carouselID); err != nil {
		return dbError(err)
	}
	return nil
}

// 重複チェックはしない（同じメールでも追記）
func (u *MarketingUsecase) Subscribe(ctx context.Context, in validator.Input) (model.Subscribe, error) {
	email, err := u.subscribe.Validate(in)
	if err != nil {
		return model.Subscribe{}, validationFailed(err)
	}
	s, err := u.subscribes.Create(ctx, model.Subscribe{Email: email})
	if err != nil {
		return model.Subscribe{}, dbError(err)
	}
	return s, nil
}

func (u *MarketingUsecase) AdminListSubscribers(ctx context.Context, limit int, offset int) ([]model.Subscribe, error) {
	if limit < 1 || limit > 100 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if offset < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid offset")
	}
	list, err := u.subscribes.List(ctx, limit, offset)
	if err != nil {
		return nil, dbError(err)
	}
	if list == nil {
		list = []model.Subscribe{}
	}
	return list, nil
}

func (u *MarketingUsecase) listCarousels(ctx context.Context, status model.CarouselStatus) ([]CarouselDTO, error) {
	list, err := u.carousels.List(ctx, status)
	if err != nil {
		return nil, dbError(err)
	}
	out := make([]CarouselDTO, 0, len(list))
	for _, c := range list {
		dto, err := u.toCarouselDTO(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

func (u *MarketingUsecase) toCarouselDTO(ctx context.Context, c model.Carousel) (CarouselDTO, error) {
	dto := CarouselDTO{
		ID:         c.ID,
		Title:      c.Title,
		Subtitle:   c.Subtitle,
		CoverImage: c.CoverImage,
		Status:     string(c.Status),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if u.media != nil && c.CoverImage != "" {
		url, err := u.media.ResolveURL(ctx, c.CoverImage)
		if err != nil {
			return CarouselDTO{}, NewHTTPError(http.StatusInternalServerError, "media error")
		}
		dto.CoverImageURL = url
	}
	return dto, nil
}

// base に入力を重ねる。Statusが空ならbaseのまま
func (u *MarketingUsecase) applyCarousel(in CarouselInput, base model.Carousel) (model.Carousel, error) {
	in, err := u.carousel.Validate(in)
	if err != nil {
		return model.Carousel{}, validationFailed(err)
	}
	base.Title, base.Subtitle, base.CoverImage = in.Title, in.Subtitle, in.CoverImage
	if in.Status != "" {
		base.Status = model.CarouselStatus(in.Status)
	}
	return base, nil
}
