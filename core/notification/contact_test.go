// Package notification - Test chuỗi fallback lookup số điện thoại và email.
package notification

import (
	"context"
	"errors"
	"testing"

	"safety_hub/core/identity"
)

func TestEnrich_OverridePhoneWins(t *testing.T) {
	provider := &fakeIdentityProvider{users: map[string]*identity.UserInfo{
		"u1": {UID: "u1", Email: "u1@example.nl", PhoneNumber: "+31611111111"},
	}}
	overrides := &fakePhoneOverrideStore{phones: map[string]string{"u1": "+31622222222"}}

	enricher := NewEnricher(provider, overrides)
	contact := enricher.Enrich(context.Background(), "u1")

	if contact.Phone != "+31622222222" {
		t.Errorf("Số override phải thắng số của provider, nhận %q", contact.Phone)
	}
	if contact.Email != "u1@example.nl" {
		t.Errorf("Email mong đợi u1@example.nl, nhận %q", contact.Email)
	}
}

func TestEnrich_FallbackToProviderPhone(t *testing.T) {
	provider := &fakeIdentityProvider{users: map[string]*identity.UserInfo{
		"u1": {UID: "u1", PhoneNumber: "+31611111111"},
	}}
	overrides := &fakePhoneOverrideStore{phones: map[string]string{}} // không có override

	enricher := NewEnricher(provider, overrides)
	contact := enricher.Enrich(context.Background(), "u1")

	if contact.Phone != "+31611111111" {
		t.Errorf("Không có override phải fallback sang provider, nhận %q", contact.Phone)
	}
}

func TestEnrich_OverrideErrorFallsThroughToNextSource(t *testing.T) {
	provider := &fakeIdentityProvider{users: map[string]*identity.UserInfo{
		"u1": {UID: "u1", PhoneNumber: "+31611111111"},
	}}
	overrides := &fakePhoneOverrideStore{err: errors.New("connection reset")}

	enricher := NewEnricher(provider, overrides)
	contact := enricher.Enrich(context.Background(), "u1")

	if contact.Phone != "+31611111111" {
		t.Errorf("Lỗi ở nguồn override phải thử nguồn kế tiếp, nhận %q", contact.Phone)
	}
}

func TestEnrich_NoPhoneAnywhere(t *testing.T) {
	provider := &fakeIdentityProvider{users: map[string]*identity.UserInfo{
		"u1": {UID: "u1", Email: "u1@example.nl"},
	}}
	overrides := &fakePhoneOverrideStore{}

	enricher := NewEnricher(provider, overrides)
	contact := enricher.Enrich(context.Background(), "u1")

	if contact.Phone != "" {
		t.Errorf("Không nguồn nào có phone thì Phone phải rỗng, nhận %q", contact.Phone)
	}
}

func TestEnrich_ProviderErrorYieldsEmptyFields(t *testing.T) {
	provider := &fakeIdentityProvider{err: errors.New("firebase unavailable")}
	overrides := &fakePhoneOverrideStore{}

	enricher := NewEnricher(provider, overrides)
	contact := enricher.Enrich(context.Background(), "u1")

	// Lỗi lookup không propagate: field rỗng, các kênh tương ứng sẽ bị skip lúc dispatch
	if contact.Email != "" || contact.Phone != "" {
		t.Errorf("Lỗi provider phải trả về contact rỗng, nhận email=%q phone=%q", contact.Email, contact.Phone)
	}
}
