package usecase

import (
	"errors"
	"fmt"
	"net/http"

	repo "storefront/internal/repository"
	"storefront/internal/validator"
)

// HTTPError はhandlerがそのままレスポンスにするエラー。
// Fieldsは入力エラーのときだけ埋まる。
type HTTPError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// validatorのエラーを400にする。それ以外は500。
func validationFailed(err error) error {
	var ve *validator.ValidationError
	if errors.As(err, &ve) {
		return &HTTPError{Status: http.StatusBadRequest, Message: "validation error", Fields: ve.Fields}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal error")
}

func fieldConflict(field string, msg string) error {
	return &HTTPError{
		Status:  http.StatusConflict,
		Message: "conflict",
		Fields:  map[string][]string{field: {msg}},
	}
}

// repositoryのエラーをHTTPErrorに揃える
func dbError(err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, repo.ErrUniqueConstraint):
		return NewHTTPError(http.StatusConflict, "conflict")
	case errors.Is(err, repo.ErrIntegrity):
		return NewHTTPError(http.StatusConflict, "integrity error")
	}
	return NewHTTPError(http.StatusInternalServerError, "db error")
}

// tx内で返したHTTPErrorはそのまま、それ以外はdbErrorへ
func txError(err error) error {
	if _, ok := AsHTTPError(err); ok {
		return err
	}
	return dbError(err)
}

func pageParams(page int, limit int) error {
	if page < 1 {
		return NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	return nil
}
