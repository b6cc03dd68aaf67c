package repository

import "errors"

var (
	// 対象が存在しない
	ErrNotFound = errors.New("not found")

	// SKUなどの一意制約違反
	ErrUniqueConstraint = errors.New("unique constraint violated")

	// 参照中のため削除できないなど
	ErrIntegrity = errors.New("integrity constraint violated")
)
