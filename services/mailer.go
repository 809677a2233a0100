package services

import (
	"fmt"
	"log"
	"net/smtp"

	"quizshop/config"
)

// Mailer delivers confirmation codes over SMTP. With no SMTP host
// configured it only logs, which is what you want in development.
type Mailer struct {
	host string
	port string
	user string
	pass string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
	}
}

func (m *Mailer) SendConfirmationCode(to, code string) {
	if m.host == "" {
		log.Printf("SMTP not configured, confirmation code for %s: %s", to, code)
		return
	}

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	msg := []byte("To: " + to + "\r\n" +
		"Subject: Your confirmation code\r\n" +
		"\r\n" +
		fmt.Sprintf("Your confirmation code is: %s\r\nIt expires in 5 minutes.\r\n", code))

	if err := smtp.SendMail(m.host+":"+m.port, auth, m.user, []string{to}, msg); err != nil {
		log.Printf("Failed to send confirmation email to %s: %v", to, err)
	}
}
