package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"storefront/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MediaStorage は画像の参照（オブジェクトキー）を表示用URLに変える。
// アップロードはしない。
type MediaStorage struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
}

// MINIO_ENDPOINTが空ならクライアント無し（参照をそのまま返す）
func NewMediaStorage(cfg config.Config) (*MediaStorage, error) {
	s := &MediaStorage{bucket: cfg.MinioBucket, ttl: cfg.MediaURLTTL}
	if cfg.MinioEndpoint == "" {
		return s, nil
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		//regionを固定するとpresignでbucket locationを問い合わせない
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: %w", err)
	}
	s.client = client
	return s, nil
}

// 空の参照は空文字。http(s)で始まるものは外部URLとしてそのまま。
func (s *MediaStorage) ResolveURL(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, nil
	}
	if s.client == nil {
		return ref, nil
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, strings.TrimPrefix(ref, "/"), s.ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", ref, err)
	}
	return u.String(), nil
}
