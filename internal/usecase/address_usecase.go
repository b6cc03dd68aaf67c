package usecase

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/validator"
)

type AddressDTO struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Locality  string    `json:"locality"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AddressUsecase struct {
	addresses repo.AddressRepository
	form      *validator.AddressValidator
}

func NewAddressUsecase(addresses repo.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addresses: addresses, form: validator.NewAddressValidator()}
}

func (u *AddressUsecase) List(ctx context.Context, userID int64) ([]AddressDTO, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	list, err := u.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, dbError(err)
	}

	out := make([]AddressDTO, 0, len(list))
	for _, a := range list {
		out = append(out, toAddressDTO(a))
	}
	return out, nil
}

func (u *AddressUsecase) Create(ctx context.Context, userID int64, in validator.Input) (AddressDTO, error) {
	if userID <= 0 {
		return AddressDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	rec, err := u.form.Validate(in)
	if err != nil {
		return AddressDTO{}, validationFailed(err)
	}

	a, err := u.addresses.Create(ctx, model.Address{
		UserID:   userID,
		Locality: rec.Locality,
		City:     rec.City,
		State:    rec.State,
	})
	if err != nil {
		return AddressDTO{}, dbError(err)
	}
	return toAddressDTO(a), nil
}

func (u *AddressUsecase) Update(ctx context.Context, userID int64, addressID int64, in validator.Input) (AddressDTO, error) {
	a, err := u.owned(ctx, userID, addressID)
	if err != nil {
		return AddressDTO{}, err
	}
	rec, err := u.form.Validate(in)
	if err != nil {
		return AddressDTO{}, validationFailed(err)
	}

	a.Locality, a.City, a.State = rec.Locality, rec.City, rec.State
	if err := u.addresses.Update(ctx, a); err != nil {
		return AddressDTO{}, dbError(err)
	}
	return toAddressDTO(a), nil
}

// 住所を消すとその住所の注文もCASCADEで消える
func (u *AddressUsecase) Delete(ctx context.Context, userID int64, addressID int64) error {
	if _, err := u.owned(ctx, userID, addressID); err != nil {
		return err
	}
	if err := u.addresses.Delete(ctx, addressID); err != nil {
		return dbError(err)
	}
	return nil
}

// 他人の住所は存在しない扱い（404）
func (u *AddressUsecase) owned(ctx context.Context, userID int64, addressID int64) (model.Address, error) {
	if userID <= 0 {
		return model.Address{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if addressID <= 0 {
		return model.Address{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := u.addresses.FindByID(ctx, addressID)
	if err != nil {
		return model.Address{}, dbError(err)
	}
	if a.UserID != userID {
		return model.Address{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return a, nil
}

func toAddressDTO(a model.Address) AddressDTO {
	return AddressDTO{
		ID:        a.ID,
		UserID:    a.UserID,
		Locality:  a.Locality,
		City:      a.City,
		State:     a.State,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
