// Package notification - Test channel set union và dedupe theo identity id.
package notification

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	models "safety_hub/core/api/models/mongodb"
	"safety_hub/core/identity"
)

func newTestAggregator(memberships *fakeMembershipStore, provider *fakeIdentityProvider, overrides *fakePhoneOverrideStore) *Aggregator {
	resolver := NewResolver(memberships, provider)
	enricher := NewEnricher(provider, overrides)
	return NewAggregator(resolver, enricher)
}

func TestAggregate_ChannelSetUnion(t *testing.T) {
	provider := &fakeIdentityProvider{users: map[string]*identity.UserInfo{
		"u1": {UID: "u1", Email: "u1@example.nl"},
	}}
	agg := newTestAggregator(&fakeMembershipStore{}, provider, &fakePhoneOverrideStore{})

	// Hai rule cùng resolve tới u1 với kênh khác nhau
	rules := []models.NotificationRule{
		{
			Recipient: models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "u1"},
			Channels:  []string{ChannelEmail},
		},
		{
			Recipient: models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "u1"},
			Channels:  []string{ChannelWhatsApp},
		},
	}

	recipients := agg.Aggregate(context.Background(), rules)

	if len(recipients) != 1 {
		t.Fatalf("Mong đợi đúng 1 recipient sau dedupe, nhận %d", len(recipients))
	}
	r := recipients["u1"]
	if r == nil {
		t.Fatal("Recipient u1 không có trong kết quả")
	}
	if !r.HasChannel(ChannelEmail) || !r.HasChannel(ChannelWhatsApp) {
		t.Errorf("Channel set phải là union {email, whatsapp}, nhận %v", r.Channels)
	}
	if r.HasChannel(ChannelInApp) {
		t.Error("Kênh in_app không nằm trong rule nào, không được xuất hiện")
	}
}

func TestAggregate_UnionIdempotent(t *testing.T) {
	provider := &fakeIdentityProvider{users: map[string]*identity.UserInfo{
		"u1": {UID: "u1", Email: "u1@example.nl"},
	}}
	agg := newTestAggregator(&fakeMembershipStore{}, provider, &fakePhoneOverrideStore{})

	// Cùng kênh xuất hiện trong nhiều rule: union không tạo duplicate
	rules := []models.NotificationRule{
		{Recipient: models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "u1"}, Channels: []string{ChannelEmail}},
		{Recipient: models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "u1"}, Channels: []string{ChannelEmail, ChannelEmail}},
	}

	recipients := agg.Aggregate(context.Background(), rules)
	r := recipients["u1"]
	if r == nil {
		t.Fatal("Recipient u1 không có trong kết quả")
	}
	if len(r.Channels) != 1 {
		t.Errorf("Union phải idempotent, mong đợi 1 kênh nhận %d", len(r.Channels))
	}
}

func TestAggregate_TeamAndUserOverlap(t *testing.T) {
	projectID := primitive.NewObjectID()
	provider := &fakeIdentityProvider{users: map[string]*identity.UserInfo{
		"u1": {UID: "u1", Email: "u1@example.nl"},
		"u2": {UID: "u2", Email: "u2@example.nl"},
	}}
	memberships := &fakeMembershipStore{
		projectMembers: map[string][]string{projectID.Hex(): {"u1", "u2"}},
	}
	agg := newTestAggregator(memberships, provider, &fakePhoneOverrideStore{})

	// Rule team resolve ra {u1, u2} với in_app, rule user trỏ riêng u1 với email
	rules := []models.NotificationRule{
		{
			Recipient: models.RecipientDescriptor{Type: RecipientTypeTeam, ProjectID: oidPtr(projectID)},
			Channels:  []string{ChannelInApp},
		},
		{
			Recipient: models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "u1"},
			Channels:  []string{ChannelEmail},
		},
	}

	recipients := agg.Aggregate(context.Background(), rules)

	if len(recipients) != 2 {
		t.Fatalf("Mong đợi 2 recipients, nhận %d", len(recipients))
	}
	if !recipients["u1"].HasChannel(ChannelInApp) || !recipients["u1"].HasChannel(ChannelEmail) {
		t.Errorf("u1 phải có union {in_app, email}, nhận %v", recipients["u1"].Channels)
	}
	if !recipients["u2"].HasChannel(ChannelInApp) || recipients["u2"].HasChannel(ChannelEmail) {
		t.Errorf("u2 chỉ được có {in_app}, nhận %v", recipients["u2"].Channels)
	}
}

func TestAggregate_InvalidChannelSkipped(t *testing.T) {
	provider := &fakeIdentityProvider{users: map[string]*identity.UserInfo{
		"u1": {UID: "u1"},
	}}
	agg := newTestAggregator(&fakeMembershipStore{}, provider, &fakePhoneOverrideStore{})

	rules := []models.NotificationRule{
		{Recipient: models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "u1"}, Channels: []string{"sms", ChannelInApp}},
	}

	recipients := agg.Aggregate(context.Background(), rules)
	r := recipients["u1"]
	if r == nil {
		t.Fatal("Recipient u1 không có trong kết quả")
	}
	if r.HasChannel("sms") {
		t.Error("Kênh không hợp lệ không được vào channel set")
	}
	if !r.HasChannel(ChannelInApp) {
		t.Error("Kênh hợp lệ vẫn phải được giữ")
	}
}

func TestAggregate_EnrichmentAttachedToRecipient(t *testing.T) {
	provider := &fakeIdentityProvider{users: map[string]*identity.UserInfo{
		"u1": {UID: "u1", Email: "u1@example.nl", PhoneNumber: "+31612345678"},
	}}
	agg := newTestAggregator(&fakeMembershipStore{}, provider, &fakePhoneOverrideStore{})

	rules := []models.NotificationRule{
		{Recipient: models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "u1"}, Channels: []string{ChannelEmail}},
	}

	recipients := agg.Aggregate(context.Background(), rules)
	r := recipients["u1"]
	if r == nil {
		t.Fatal("Recipient u1 không có trong kết quả")
	}
	if r.Email != "u1@example.nl" {
		t.Errorf("Email mong đợi u1@example.nl, nhận %q", r.Email)
	}
	if r.Phone != "+31612345678" {
		t.Errorf("Phone mong đợi +31612345678, nhận %q", r.Phone)
	}
}
