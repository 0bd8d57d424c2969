// mail — отправка служебных писем (восстановление пароля) через SMTP.
// С точки зрения бизнес-логики отправка fire-and-forget: сервис не ждёт
// подтверждения доставки, только принятия письма SMTP-сервером.
package mail

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/pribylovaa/account-service/internal/config"
)

// Mailer — минимальный контракт отправки письма.
type Mailer interface {
	// Send отправляет письмо с текстовой и HTML-версией тела.
	Send(ctx context.Context, to, subject, text, html string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTP создаёт SMTP-отправщик из конфигурации.
func NewSMTP(cfg config.MailConfig) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// Send отправляет письмо. Контекст проверяется до обращения к SMTP;
// сам протокол обмена дедлайн контекста не поддерживает.
func (m *smtpMailer) Send(ctx context.Context, to, subject, text, html string) error {
	const op = "mail.smtp.Send"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
