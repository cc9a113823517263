package notify

import (
	"fmt"
	"net/smtp"
	"os"
)

// SMTPSender delivers mail through a plain-auth SMTP relay.
type SMTPSender struct {
	Host string
	Port string
	From string
	Pass string
}

// NewSMTPSenderFromEnv reads SMTP_HOST, SMTP_PORT, SMTP_FROM, SMTP_PASS.
func NewSMTPSenderFromEnv() *SMTPSender {
	s := &SMTPSender{
		Host: os.Getenv("SMTP_HOST"),
		Port: os.Getenv("SMTP_PORT"),
		From: os.Getenv("SMTP_FROM"),
		Pass: os.Getenv("SMTP_PASS"),
	}
	if s.Port == "" {
		s.Port = "587"
	}
	return s
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	if s.Host == "" || s.From == "" {
		return fmt.Errorf("smtp transport not configured")
	}

	msg := []byte("From: Wayfare <" + s.From + ">\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" + htmlBody)

	auth := smtp.PlainAuth("", s.From, s.Pass, s.Host)
	return smtp.SendMail(s.Host+":"+s.Port, auth, s.From, []string{to}, msg)
}
