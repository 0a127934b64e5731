package channels

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"safety_hub/config"
	"safety_hub/core/logger"
)

// WhatsAppSender gửi message qua WhatsApp Business Cloud API
// https://graph.facebook.com/<version>/<phoneNumberId>/messages
type WhatsAppSender struct {
	accessToken   string
	phoneNumberID string
	apiVersion    string
	apiBaseURL    string
	httpClient    *http.Client
}

// NewWhatsAppSender tạo WhatsAppSender từ config
func NewWhatsAppSender(cfg *config.Configuration) *WhatsAppSender {
	return &WhatsAppSender{
		accessToken:   cfg.WhatsAppAccessToken,
		phoneNumberID: cfg.WhatsAppPhoneNumberID,
		apiVersion:    cfg.WhatsAppAPIVersion,
		apiBaseURL:    "https://graph.facebook.com",
		httpClient:    &http.Client{Timeout: 10 * time.Second},
	}
}

// IsConfigured kiểm tra WhatsApp đã có credentials chưa
// Chưa cấu hình = bỏ qua kênh whatsapp, không phải lỗi
func (s *WhatsAppSender) IsConfigured() bool {
	return s.accessToken != "" && s.phoneNumberID != ""
}

// Send gửi một text message tới số điện thoại E.164
func (s *WhatsAppSender) Send(ctx context.Context, to string, message string) error {
	log := logger.GetAppLogger()

	url := fmt.Sprintf("%s/%s/%s/messages", s.apiBaseURL, s.apiVersion, s.phoneNumberID)

	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text": map[string]interface{}{
			"body": message,
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"to": to,
		}).Error("💬 [WHATSAPP] Lỗi khi gọi WhatsApp Cloud API")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Đọc response body để xem lỗi chi tiết
		bodyBytes, _ := io.ReadAll(resp.Body)
		log.WithFields(map[string]interface{}{
			"to":         to,
			"statusCode": resp.StatusCode,
			"response":   string(bodyBytes),
		}).Error("💬 [WHATSAPP] WhatsApp Cloud API trả về lỗi")
		return fmt.Errorf("whatsapp API returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	log.WithFields(map[string]interface{}{
		"to": to,
	}).Info("💬 [WHATSAPP] Đã gửi WhatsApp message thành công")
	return nil
}
