// Package channels - Test WhatsApp sender với mock Cloud API server.
package channels

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestWhatsAppSender(baseURL string) *WhatsAppSender {
	return &WhatsAppSender{
		accessToken:   "test-token",
		phoneNumberID: "123456789",
		apiVersion:    "v20.0",
		apiBaseURL:    baseURL,
		httpClient:    &http.Client{Timeout: 5 * time.Second},
	}
}

func TestWhatsAppSender_IsConfigured(t *testing.T) {
	s := &WhatsAppSender{accessToken: "token", phoneNumberID: "123"}
	if !s.IsConfigured() {
		t.Error("Sender có đủ credentials phải được coi là configured")
	}

	s = &WhatsAppSender{accessToken: "", phoneNumberID: "123"}
	if s.IsConfigured() {
		t.Error("Thiếu access token thì chưa configured")
	}

	s = &WhatsAppSender{accessToken: "token", phoneNumberID: ""}
	if s.IsConfigured() {
		t.Error("Thiếu phone number ID thì chưa configured")
	}
}

func TestWhatsAppSender_Send(t *testing.T) {
	var gotPath, gotAuth string
	var gotPayload map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"messages":[{"id":"wamid.test"}]}`))
	}))
	defer server.Close()

	s := newTestWhatsAppSender(server.URL)
	err := s.Send(context.Background(), "+31612345678", "🚨 Nieuwe melding INC-2026-0042")
	if err != nil {
		t.Fatalf("Send trả về lỗi: %v", err)
	}

	if gotPath != "/v20.0/123456789/messages" {
		t.Errorf("Path không đúng: %q", gotPath)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization header không đúng: %q", gotAuth)
	}
	if gotPayload["messaging_product"] != "whatsapp" {
		t.Errorf("Payload thiếu messaging_product=whatsapp: %v", gotPayload)
	}
	if gotPayload["to"] != "+31612345678" {
		t.Errorf("Số nhận không đúng: %v", gotPayload["to"])
	}
	text, ok := gotPayload["text"].(map[string]interface{})
	if !ok || text["body"] == "" {
		t.Errorf("Payload text.body không đúng: %v", gotPayload["text"])
	}
}

func TestWhatsAppSender_SendAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid OAuth access token"}}`))
	}))
	defer server.Close()

	s := newTestWhatsAppSender(server.URL)
	err := s.Send(context.Background(), "+31612345678", "test")
	if err == nil {
		t.Fatal("Status non-2xx phải trả về lỗi")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("Lỗi phải chứa status code, nhận: %v", err)
	}
	if !strings.Contains(err.Error(), "Invalid OAuth access token") {
		t.Errorf("Lỗi phải chứa response body để chẩn đoán, nhận: %v", err)
	}
}
