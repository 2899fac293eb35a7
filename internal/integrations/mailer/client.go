package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Client отправляет коды подтверждения через SMTP (STARTTLS)
type Client struct {
	cfg  Config
	smtp *mail.Client
	log  Logger
}

// NewClient создает SMTP клиент; соединение открывается на каждую отправку
func NewClient(cfg Config, log Logger) (*Client, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}

	smtp, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &Client{cfg: cfg, smtp: smtp, log: log}, nil
}

// Deliver отправляет письмо с кодом на contact
func (c *Client) Deliver(ctx context.Context, contact string, n Notification) error {
	msg, err := c.buildMessage(contact, n)
	if err != nil {
		return err
	}

	if err := c.smtp.DialAndSendWithContext(ctx, msg); err != nil {
		c.log.Error("Mailer: failed to send code to %s: %v", contact, err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	c.log.Info("Mailer: confirmation code sent to %s", contact)
	return nil
}

func (c *Client) buildMessage(contact string, n Notification) (*mail.Msg, error) {
	body, err := render(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	msg := mail.NewMsg()
	if err := msg.From(c.cfg.From); err != nil {
		return nil, fmt.Errorf("%w: from %q: %v", ErrDeliveryFailed, c.cfg.From, err)
	}
	if err := msg.To(contact); err != nil {
		return nil, fmt.Errorf("%w: %w: %v", ErrDeliveryFailed, ErrInvalidRecipient, err)
	}
	msg.Subject(body.Subject)
	msg.SetBodyString(mail.TypeTextPlain, body.Text)
	msg.AddAlternativeString(mail.TypeTextHTML, body.HTML)

	return msg, nil
}
