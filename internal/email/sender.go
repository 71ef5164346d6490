package email

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/mailersend/mailersend-go"

	"prestigo/internal/logger"
)

type SMTPSender struct {
	Host     string
	Port     string
	User     string
	Pass     string
	From     string
	FromName string
}

func (s *SMTPSender) Send(_ context.Context, job Job) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.FromName, s.From)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.User != "" && s.Pass != "" {
		auth = smtp.PlainAuth("", s.User, s.Pass, s.Host)
	}

	return smtp.SendMail(s.Host+":"+s.Port, auth, s.From, []string{job.To}, []byte(message))
}

// MailerSendSender delivers through the MailerSend HTTP API.
type MailerSendSender struct {
	client   *mailersend.Mailersend
	from     string
	fromName string
}

func NewMailerSendSender(apiKey, from, fromName string) *MailerSendSender {
	return &MailerSendSender{
		client:   mailersend.NewMailersend(apiKey),
		from:     from,
		fromName: fromName,
	}
}

func (m *MailerSendSender) Send(ctx context.Context, job Job) error {
	message := m.client.Email.NewMessage()
	message.SetFrom(mailersend.From{Name: m.fromName, Email: m.from})
	message.SetRecipients([]mailersend.Recipient{{Name: job.Name, Email: job.To}})
	message.SetSubject(job.Subject)
	message.SetText(job.Body)

	res, err := m.client.Email.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("mailersend: %w", err)
	}

	logger.Debug("email accepted by mailersend", "message_id", res.Header.Get("X-Message-Id"))
	return nil
}

// NopSender drops every message.
type NopSender struct{}

func (NopSender) Send(context.Context, Job) error { return nil }
