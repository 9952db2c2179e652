package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// Mailer dispatches the account lifecycle mails. Satisfied by MailService;
// tests substitute a fake.
type Mailer interface {
	SendVerificationEmail(to, token string) error
	SendPasswordResetEmail(to, token string) error
}

type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	AppURL   string
	Enabled  bool
}

func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080"
	}

	enabled := host != "" && port != "" && user != "" && pass != "" && from != ""
	if !enabled {
		log.Println("MailService disabled: missing SMTP environment variables")
	}

	return &MailService{
		Host:     host,
		Port:     port,
		Username: user,
		Password: pass,
		From:     from,
		AppURL:   appURL,
		Enabled:  enabled,
	}
}

// send delivers a mail synchronously so callers can surface SMTP failures.
func (s *MailService) send(to []string, subject, textBody, htmlBody string) error {
	if !s.Enabled {
		log.Printf("MailService disabled, dropping mail to %v: %s", to, subject)
		return nil
	}

	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

	body := textBody
	mime := "MIME-version: 1.0;\nContent-Type: text/plain; charset=\"UTF-8\";\n\n"
	if htmlBody != "" {
		body = htmlBody
		mime = "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	}
	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: SchoolHub <%s>\r\n"+
		"Subject: %s\r\n"+
		"%s\r\n%s", strings.Join(to, ","), s.From, subject, mime, body))

	if err := smtp.SendMail(addr, auth, s.From, to, msg); err != nil {
		log.Printf("Failed to send email to %v: %v", to, err)
		return fmt.Errorf("send mail: %w", err)
	}
	log.Printf("Email sent to %v: %s", to, subject)
	return nil
}

func (s *MailService) SendVerificationEmail(to, token string) error {
	link := fmt.Sprintf("%s/users/verify/%s", s.AppURL, token)
	text := fmt.Sprintf("Click the following link to verify your email:\n\n%s", link)
	html := fmt.Sprintf(`<p>Click the following link to verify your email:</p><p><a href="%s">Email verification link</a></p>`, link)
	return s.send([]string{to}, "Email Verification", text, html)
}

func (s *MailService) SendPasswordResetEmail(to, token string) error {
	link := fmt.Sprintf("%s/reset-password/%s", s.AppURL, token)
	text := fmt.Sprintf("Click the following link to reset your password:\n\n%s", link)
	return s.send([]string{to}, "Reset password", text, "")
}
