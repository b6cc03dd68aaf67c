package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront/internal/authtoken"
	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/infra/mailer"
	repo "storefront/internal/repository"
	"storefront/internal/validator"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgUsernameTaken = "A user with that username already exists."
	msgEmailTaken    = "A user with that email already exists."
	msgResetInvalid  = "The password reset link was invalid, possibly because it has already been used."
)

type UserDTO struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion int    `json:"token_version"`
	IsActive     bool   `json:"is_active"`
}

type JwtAccessTokenDTO struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenVersion int    `json:"token_version"`
}

type AuthLoginResponse struct {
	User  UserDTO           `json:"user"`
	Token JwtAccessTokenDTO `json:"token"`
}

type ForceLogoutResponse struct {
	UserID          int64 `json:"user_id"`
	NewTokenVersion int   `json:"new_token_version"`
}

type AuthUsecase struct {
	cfg         config.Config
	users       repo.UserRepository
	resetTokens repo.ResetTokenRepository
	mail        Mailer

	registration  *validator.RegistrationValidator
	login         *validator.LoginValidator
	change        *validator.PasswordChangeValidator
	resetRequest  *validator.PasswordResetRequestValidator
	resetComplete *validator.PasswordResetCompleteValidator
}

func NewAuthUsecase(
	cfg config.Config,
	users repo.UserRepository,
	resetTokens repo.ResetTokenRepository,
	mail Mailer,
) *AuthUsecase {
	policy := validator.NewStrengthPolicy(validator.PolicyConfig{MinLength: cfg.PasswordMinLength})
	return &AuthUsecase{
		cfg:           cfg,
		users:         users,
		resetTokens:   resetTokens,
		mail:          mail,
		registration:  validator.NewRegistrationValidator(policy),
		login:         validator.NewLoginValidator(),
		change:        validator.NewPasswordChangeValidator(policy),
		resetRequest:  validator.NewPasswordResetRequestValidator(),
		resetComplete: validator.NewPasswordResetCompleteValidator(policy),
	}
}

func (u *AuthUsecase) Register(ctx context.Context, in validator.Input) (UserDTO, error) {
	rec, err := u.registration.Validate(in)
	if err != nil {
		return UserDTO{}, validationFailed(err)
	}

	//先に重複を調べて、どの項目が重複かを返す
	if _, err := u.users.FindByUsername(ctx, rec.Username); err == nil {
		return UserDTO{}, fieldConflict("username", msgUsernameTaken)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return UserDTO{}, dbError(err)
	}
	if _, err := u.users.FindByEmail(ctx, rec.Email); err == nil {
		return UserDTO{}, fieldConflict("email", msgEmailTaken)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return UserDTO{}, dbError(err)
	}

	//平文は保存しない
	pwHash, err := bcrypt.GenerateFromPassword([]byte(rec.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Username:     rec.Username,
		Email:        rec.Email,
		PasswordHash: string(pwHash),
		Role:         model.RoleUser,
		IsActive:     true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		//同時登録で一意制約に当たった場合
		return UserDTO{}, dbError(err)
	}

	return toUserDTO(user), nil
}

func (u *AuthUsecase) Login(ctx context.Context, in validator.Input) (AuthLoginResponse, error) {
	rec, err := u.login.Validate(in)
	if err != nil {
		return AuthLoginResponse{}, validationFailed(err)
	}

	user, err := u.users.FindByUsername(ctx, rec.Username)
	if errors.Is(err, repo.ErrNotFound) {
		return AuthLoginResponse{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return AuthLoginResponse{}, dbError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(rec.Password)); err != nil {
		return AuthLoginResponse{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	//停止ユーザーはログイン不可
	if !user.IsActive {
		return AuthLoginResponse{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	_ = u.users.TouchLastLogin(ctx, user.ID)

	token, expiresIn, err := u.issueAccessToken(user)
	if err != nil {
		return AuthLoginResponse{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return AuthLoginResponse{
		User: toUserDTO(user),
		Token: JwtAccessTokenDTO{
			AccessToken:  token,
			ExpiresIn:    expiresIn,
			TokenVersion: user.TokenVersion,
		},
	}, nil
}

func (u *AuthUsecase) Me(ctx context.Context, userID int64) (UserDTO, error) {
	if userID <= 0 {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return UserDTO{}, dbError(err)
	}
	if !user.IsActive {
		return UserDTO{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return toUserDTO(user), nil
}

// パスワード変更。token_versionが上がるので今のトークンも使えなくなる
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID int64, in validator.Input) error {
	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return dbError(err)
	}

	checkOld := func(plain string) bool {
		return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(plain)) == nil
	}
	rec, err := u.change.Validate(in, checkOld, userAttributes(user)...)
	if err != nil {
		return validationFailed(err)
	}

	return u.setPassword(ctx, user.ID, rec.NewPassword)
}

// 再設定メールを送る。登録の無いメールでも同じ結果にする
func (u *AuthUsecase) RequestPasswordReset(ctx context.Context, in validator.Input) error {
	rec, err := u.resetRequest.Validate(in)
	if err != nil {
		return validationFailed(err)
	}

	user, err := u.users.FindByEmail(ctx, rec.Email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return dbError(err)
	}
	if !user.IsActive {
		return nil
	}

	token := uuid.NewString()
	if err := u.resetTokens.Save(ctx, token, user.ID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "token store error")
	}

	link := strings.TrimRight(u.cfg.FEURL, "/") + "/password-reset/" + token
	err = u.mail.Send(ctx, mailer.Message{
		To:      user.Email,
		Subject: "Password reset",
		Body: fmt.Sprintf(
			"Hello %s,\n\nUse the link below to choose a new password. It expires in %s.\n\n%s\n",
			user.Username, u.cfg.ResetTokenTTL, link,
		),
	})
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "mail error")
	}
	return nil
}

// トークンは一度だけ使える
func (u *AuthUsecase) CompletePasswordReset(ctx context.Context, in validator.Input) error {
	token := strings.TrimSpace(in["token"])

	var user *model.User
	if token != "" {
		userID, err := u.resetTokens.Lookup(ctx, token)
		switch {
		case errors.Is(err, repo.ErrNotFound):
		case err != nil:
			return NewHTTPError(http.StatusInternalServerError, "token store error")
		default:
			user, err = u.users.FindByID(ctx, userID)
			if err != nil && !errors.Is(err, repo.ErrNotFound) {
				return dbError(err)
			}
		}
	}

	rec, err := u.resetComplete.Validate(in, userAttributes(user)...)

	//トークンが無効ならtoken欄のエラーとして他の入力エラーと一緒に返す
	if token != "" && user == nil {
		var ve *validator.ValidationError
		if !errors.As(err, &ve) {
			ve = &validator.ValidationError{Fields: map[string][]string{}}
		}
		ve.Add("token", msgResetInvalid)
		err = ve
	}
	if err != nil {
		return validationFailed(err)
	}

	//入力が正しいと分かってから消費する（弱いパスワードならトークンは残る）
	consumedID, err := u.resetTokens.Consume(ctx, token)
	switch {
	case errors.Is(err, repo.ErrNotFound) || (err == nil && consumedID != user.ID):
		return validationFailed(&validator.ValidationError{
			Fields: map[string][]string{"token": {msgResetInvalid}},
		})
	case err != nil:
		return NewHTTPError(http.StatusInternalServerError, "token store error")
	}

	return u.setPassword(ctx, user.ID, rec.NewPassword)
}

// 管理者による強制ログアウト
func (u *AuthUsecase) ForceLogout(ctx context.Context, targetUserID int64) (ForceLogoutResponse, error) {
	if targetUserID <= 0 {
		return ForceLogoutResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.users.IncrementTokenVersion(ctx, targetUserID); err != nil {
		return ForceLogoutResponse{}, dbError(err)
	}

	//更新後を取得してnew_token_versionを返す
	user, err := u.users.FindByID(ctx, targetUserID)
	if err != nil {
		return ForceLogoutResponse{}, dbError(err)
	}
	return ForceLogoutResponse{UserID: user.ID, NewTokenVersion: user.TokenVersion}, nil
}

func (u *AuthUsecase) setPassword(ctx context.Context, userID int64, plain string) error {
	pwHash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if err := u.users.UpdatePassword(ctx, userID, string(pwHash)); err != nil {
		return dbError(err)
	}
	return nil
}

// jwt発行
func (u *AuthUsecase) issueAccessToken(user *model.User) (string, int, error) {
	claims := authtoken.NewAccessClaims(user, time.Now(), u.cfg.AccessTokenTTL)
	signed, err := authtoken.Sign(claims, u.cfg.JWTSecret)
	if err != nil {
		return "", 0, err
	}
	return signed, int(claims.ExpiresAt.Sub(claims.IssuedAt.Time).Seconds()), nil
}

// 類似チェック用
func userAttributes(user *model.User) []validator.UserAttribute {
	if user == nil {
		return nil
	}
	return []validator.UserAttribute{
		{Name: "username", Value: user.Username},
		{Name: "email address", Value: user.Email},
	}
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         string(u.Role),
		TokenVersion: u.TokenVersion,
		IsActive:     u.IsActive,
	}
}
