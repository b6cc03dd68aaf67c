// Package authtoken はアクセストークン(JWT)の発行と検証をまとめる。
package authtoken

import (
	"errors"
	"strconv"
	"time"

	"storefront/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
)

const DefaultTTL = 15 * time.Minute

var ErrInvalidToken = errors.New("invalid access token")

// AccessClaims はsubにユーザーID(10進文字列)を持つ
type AccessClaims struct {
	Role         string `json:"role"`
	TokenVersion int    `json:"tv"`
	jwt.RegisteredClaims
}

func (c *AccessClaims) UserID() int64 {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Valid は期限に加えてsub/role/tvの形もみる
func (c *AccessClaims) Valid() error {
	if err := c.RegisteredClaims.Valid(); err != nil {
		return err
	}
	if c.UserID() <= 0 || c.Role == "" || c.TokenVersion < 0 {
		return ErrInvalidToken
	}
	return nil
}

func NewAccessClaims(user *model.User, now time.Time, ttl time.Duration) *AccessClaims {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &AccessClaims{
		Role:         string(user.Role),
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// Sign はHS256で署名する
func Sign(claims *AccessClaims, secret string) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse は署名・アルゴリズム・期限・claimsの形をすべて検証する
func Parse(raw, secret string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	return claims, nil
}
