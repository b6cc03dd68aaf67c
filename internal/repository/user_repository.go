package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// パスワードハッシュを差し替え、token_versionを+1する
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	// 発行済みのアクセストークンをすべて無効にする
	IncrementTokenVersion(ctx context.Context, userID int64) error
	TouchLastLogin(ctx context.Context, userID int64) error
	// ユーザー削除（住所・カート・注文もCASCADEで消える）
	Delete(ctx context.Context, userID int64) error
}
