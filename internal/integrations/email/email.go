// Package email sends the report as a multipart/alternative message so
// clients pick HTML when they can and fall back to the plain-text body.
package email

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

type Sender struct {
	host       string
	port       int
	user       string
	pass       string
	from       string
	recipients []string
}

func NewSender(host string, port int, user, pass, from string, recipients []string) *Sender {
	return &Sender{
		host:       host,
		port:       port,
		user:       user,
		pass:       pass,
		from:       from,
		recipients: recipients,
	}
}

func (s *Sender) Send(subject, textBody, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.recipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("sending email via %s:%d: %w", s.host, s.port, err)
	}
	log.Printf("Email sent to %d recipient(s)", len(s.recipients))
	return nil
}
