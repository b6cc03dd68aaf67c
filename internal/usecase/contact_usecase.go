package usecase

import (
	"context"
	"fmt"
	"net/http"

	"storefront/internal/config"
	"storefront/internal/infra/mailer"
	"storefront/internal/validator"
)

// お問い合わせはショップの受信箱へメールで転送する（保存しない）
type ContactUsecase struct {
	inbox string
	mail  Mailer
	form  *validator.ContactValidator
}

func NewContactUsecase(cfg config.Config, mail Mailer) *ContactUsecase {
	return &ContactUsecase{inbox: cfg.ContactInbox, mail: mail, form: validator.NewContactValidator()}
}

func (u *ContactUsecase) Send(ctx context.Context, in validator.Input) error {
	msg, err := u.form.Validate(in)
	if err != nil {
		return validationFailed(err)
	}

	err = u.mail.Send(ctx, mailer.Message{
		To:      u.inbox,
		ReplyTo: msg.Email,
		Subject: "[Contact] " + msg.Subject,
		Body: fmt.Sprintf("From: %s <%s>\nPhone: %s\n\n%s\n",
			msg.Name, msg.Email, msg.Phone, msg.Message),
	})
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "mail error")
	}
	return nil
}
