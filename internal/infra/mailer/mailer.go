package mailer

import (
	"context"
	"fmt"

	"storefront/internal/config"

	"github.com/labstack/echo/v4"
	"github.com/wneessen/go-mail"
)

// Message は送信する1通（本文はプレーンテキスト）
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// SMTPMailer はgo-mailでSMTP送信する
type SMTPMailer struct {
	client *mail.Client
	from   string
}

func NewSMTPMailer(cfg config.Config) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{client: client, from: cfg.MailFrom}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	mm, err := buildMsg(m.from, msg)
	if err != nil {
		return err
	}
	return m.client.DialAndSendWithContext(ctx, mm)
}

func buildMsg(from string, msg Message) (*mail.Msg, error) {
	mm := mail.NewMsg()
	if err := mm.From(from); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if err := mm.To(msg.To); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := mm.ReplyTo(msg.ReplyTo); err != nil {
			return nil, fmt.Errorf("reply-to: %w", err)
		}
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextPlain, msg.Body)
	return mm, nil
}

// LogMailer はSMTP未設定の開発環境用。送らずにログへ出す。
type LogMailer struct {
	Logger echo.Logger
}

func (m LogMailer) Send(_ context.Context, msg Message) error {
	m.Logger.Infof("mail (not sent) to=%s subject=%q\n%s", msg.To, msg.Subject, msg.Body)
	return nil
}
