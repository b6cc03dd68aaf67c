package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/infra/mailer"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarketingUsecase_CreateCarousel_DefaultsToDraft(t *testing.T) {
	ctx := context.Background()
	carousels := new(MockCarouselRepository)
	carousels.On("Create", ctx, model.Carousel{Title: "Summer Sale", Status: model.CarouselStatusDraft}).
		Return(model.Carousel{ID: 1, Title: "Summer Sale", Status: model.CarouselStatusDraft}, nil).Once()

	uc := usecase.NewMarketingUsecase(carousels, new(MockSubscribeRepository), nil)
	dto, err := uc.AdminCreateCarousel(ctx, usecase.CarouselInput{Title: "Summer Sale"})
	require.NoError(t, err)
	assert.Equal(t, "draft", dto.Status)
	carousels.AssertExpectations(t)
}

func TestMarketingUsecase_UpdateCarousel_Status(t *testing.T) {
	ctx := context.Background()
	carousels := new(MockCarouselRepository)
	carousels.On("FindByID", ctx, int64(1)).Return(model.Carousel{ID: 1, Title: "Sale", Status: model.CarouselStatusDraft}, nil).Once()
	carousels.On("Update", ctx, mock.MatchedBy(func(c model.Carousel) bool {
		return c.ID == 1 && c.Status == model.CarouselStatusPublished
	})).Return(nil).Once()

	uc := usecase.NewMarketingUsecase(carousels, new(MockSubscribeRepository), nil)
	dto, err := uc.AdminUpdateCarousel(ctx, 1, usecase.CarouselInput{Title: "Sale", Status: "published"})
	require.NoError(t, err)
	assert.Equal(t, "published", dto.Status)

	carousels.On("FindByID", ctx, int64(1)).Return(model.Carousel{ID: 1}, nil).Once()
	_, err = uc.AdminUpdateCarousel(ctx, 1, usecase.CarouselInput{Status: "archived"})
	he := requireHTTPError(t, err, http.StatusBadRequest)
	assert.Contains(t, he.Fields, "status")
}

func TestMarketingUsecase_ListPublished(t *testing.T) {
	ctx := context.Background()
	carousels := new(MockCarouselRepository)
	media := new(MockMedia)
	carousels.On("List", ctx, model.CarouselStatusPublished).Return([]model.Carousel{
		{ID: 2, Title: "Hero", CoverImage: "carousel/hero.jpg", Status: model.CarouselStatusPublished},
	}, nil).Once()
	media.On("ResolveURL", ctx, "carousel/hero.jpg").Return("http://minio/hero.jpg?sig", nil).Once()

	uc := usecase.NewMarketingUsecase(carousels, new(MockSubscribeRepository), media)
	list, err := uc.ListPublishedCarousels(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "http://minio/hero.jpg?sig", list[0].CoverImageURL)
}

func TestMarketingUsecase_Subscribe_NoDedup(t *testing.T) {
	ctx := context.Background()
	subs := new(MockSubscribeRepository)
	subs.On("Create", ctx, model.Subscribe{Email: "ali@example.com"}).Return(model.Subscribe{ID: 1, Email: "ali@example.com"}, nil).Twice()

	uc := usecase.NewMarketingUsecase(new(MockCarouselRepository), subs, nil)
	_, err := uc.Subscribe(ctx, validator.Input{"email": "ali@example.com"})
	require.NoError(t, err)
	_, err = uc.Subscribe(ctx, validator.Input{"email": "ali@example.com"})
	require.NoError(t, err)
	subs.AssertNumberOfCalls(t, "Create", 2)

	_, err = uc.Subscribe(ctx, validator.Input{"email": "nope"})
	requireHTTPError(t, err, http.StatusBadRequest)
}

func TestContactUsecase_Send(t *testing.T) {
	ctx := context.Background()
	mail := new(MockMailer)
	mail.On("Send", ctx, mock.MatchedBy(func(m mailer.Message) bool {
		return m.To == "inbox@shop.test" && m.ReplyTo == "ali@example.com" && m.Subject == "[Contact] Order question"
	})).Return(nil).Once()

	uc := usecase.NewContactUsecase(testConfig(), mail)
	require.NoError(t, uc.Send(ctx, validator.Input{
		"name":    "Ali",
		"email":   "ali@example.com",
		"phone":   "+905551112233",
		"subject": "Order question",
		"message": "Where is my order?",
	}))
	mail.AssertExpectations(t)
}

func TestContactUsecase_Send_Failures(t *testing.T) {
	ctx := context.Background()
	mail := new(MockMailer)
	uc := usecase.NewContactUsecase(testConfig(), mail)

	err := uc.Send(ctx, validator.Input{"name": "Ali", "email": "ali.example.com", "phone": "1", "subject": "s", "message": "m"})
	he := requireHTTPError(t, err, http.StatusBadRequest)
	assert.Equal(t, []string{"Enter a valid email address."}, he.Fields["email"])
	mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)

	mail.On("Send", ctx, mock.Anything).Return(errors.New("smtp down")).Once()
	err = uc.Send(ctx, validator.Input{"name": "Ali", "email": "ali@example.com", "phone": "1", "subject": "s", "message": "m"})
	requireHTTPError(t, err, http.StatusInternalServerError)
}
