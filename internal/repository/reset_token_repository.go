package repository

import "context"

// パスワード再設定トークンの保管。期限切れ・未登録はErrNotFound
type ResetTokenRepository interface {
	Save(ctx context.Context, token string, userID int64) error
	Lookup(ctx context.Context, token string) (int64, error)
	//取得と削除を同時に行う。2回目以降はErrNotFound
	Consume(ctx context.Context, token string) (int64, error)
}
