// package channels chứa các transport gửi thông báo ra ngoài (email, WhatsApp)
package channels

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"safety_hub/config"
	"safety_hub/core/logger"
)

// EmailSender gửi email qua SMTP
type EmailSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewEmailSender tạo EmailSender từ config SMTP
func NewEmailSender(cfg *config.Configuration) *EmailSender {
	return &EmailSender{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromName:  cfg.SMTPFromName,
		fromEmail: cfg.SMTPFromEmail,
	}
}

// IsConfigured kiểm tra SMTP đã có đủ cấu hình chưa
// Chưa cấu hình = bỏ qua kênh email, không phải lỗi
func (s *EmailSender) IsConfigured() bool {
	return s.host != "" && s.fromEmail != ""
}

// Send gửi một email với cả body HTML và plain text
func (s *EmailSender) Send(ctx context.Context, to string, subject string, html string, text string) error {
	log := logger.GetAppLogger()

	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)

	dialer := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := dialer.DialAndSend(msg); err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"to":      to,
			"subject": subject,
		}).Error("📧 [EMAIL] Lỗi khi gửi email qua SMTP")
		return err
	}

	log.WithFields(map[string]interface{}{
		"to":      to,
		"subject": subject,
	}).Info("📧 [EMAIL] Đã gửi email thành công")
	return nil
}
