package delivery

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

// AttachmentName is the file name tenants see on the mailed bill.
const AttachmentName = "Rental_Bill_Details.pdf"

// SMTPConfig holds the outgoing mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// messageSender is satisfied by *gomail.Dialer.
type messageSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer sends bills through an SMTP relay.
type SMTPMailer struct {
	from   string
	sender messageSender
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		from:   cfg.From,
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string, attachment []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if to == "" {
		return fmt.Errorf("no recipient address")
	}
	return m.sender.DialAndSend(m.message(to, subject, body, attachment))
}

func (m *SMTPMailer) message(to, subject, body string, attachment []byte) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	if len(attachment) > 0 {
		msg.Attach(AttachmentName,
			gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(attachment)
				return err
			}),
		)
	}
	return msg
}
