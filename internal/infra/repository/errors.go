package repository

import (
	"errors"

	repo "storefront/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQLのSQLSTATE
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// gormのエラーをrepositoryの共通エラーへ寄せる
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repo.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repo.ErrUniqueConstraint
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return repo.ErrIntegrity
	}

	//TranslateErrorが拾わないもの（CHECK制約など）はSQLSTATEで判定
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return repo.ErrUniqueConstraint
		case pgForeignKeyViolation, pgCheckViolation, pgNotNullViolation:
			return repo.ErrIntegrity
		}
	}
	return err
}

// 更新・削除で0件なら存在しない
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
