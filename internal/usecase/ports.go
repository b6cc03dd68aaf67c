package usecase

import (
	"context"

	"storefront/internal/infra/mailer"
)

// 画像参照を表示用URLにする（MinIOのpresigned URLなど）
type MediaResolver interface {
	ResolveURL(ctx context.Context, ref string) (string, error)
}

type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}
