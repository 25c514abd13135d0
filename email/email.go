package email

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"
)

type EmailService struct {
	host     string
	port     string
	user     string
	password string
	from     string
}

func NewEmailService() *EmailService {
	return &EmailService{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		user:     os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
	}
}

// Configured reports whether SMTP settings are present. Notifications are
// skipped silently when they are not.
func (e *EmailService) Configured() bool {
	return e.host != "" && e.port != "" && e.from != ""
}

// SendAccessGrantedEmail tells a user which faction pages they can now edit.
func (e *EmailService) SendAccessGrantedEmail(to string, factionNames []string) error {
	domain := os.Getenv("DOMAIN")
	if domain == "" {
		domain = "http://localhost:8080"
	}

	subject := "Faction editor access updated"
	body := fmt.Sprintf(`Hi,

Your editor access on the faction hub has been updated. You can now manage
content for: %s

Sign in at %s/login to get started.

---
Faction Hub
`, strings.Join(factionNames, ", "), domain)

	message := fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", e.from, to, subject, body)

	auth := smtp.PlainAuth("", e.user, e.password, e.host)
	addr := fmt.Sprintf("%s:%s", e.host, e.port)

	if err := smtp.SendMail(addr, auth, e.from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}

	return nil
}
