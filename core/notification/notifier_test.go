// Package notification - Test pipeline end-to-end với fake collaborators.
package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "safety_hub/core/api/models/mongodb"
	"safety_hub/core/identity"
)

func testIncident() models.Incident {
	return models.Incident{
		ID:       primitive.NewObjectID(),
		Code:     "INC-2026-0042",
		Title:    "Graafschade aan gasleiding",
		Severity: models.SeverityCritical,
		Category: "graafschade",
		Location: "Hoofdstraat 12, Utrecht",
		Status:   models.IncidentStatusOpen,
	}
}

func testDeps() (NotifierDeps, *fakeEmailTransport, *fakeWhatsAppTransport, *fakeNotificationStore) {
	email := &fakeEmailTransport{configured: true}
	whatsapp := &fakeWhatsAppTransport{configured: true}
	notifications := &fakeNotificationStore{}

	deps := NotifierDeps{
		Rules:       &fakeRuleStore{},
		Memberships: &fakeMembershipStore{},
		Identity: &fakeIdentityProvider{users: map[string]*identity.UserInfo{
			"u1": {UID: "u1", Email: "u1@example.nl", PhoneNumber: "+31611111111"},
			"u2": {UID: "u2", Email: "u2@example.nl"},
		}},
		PhoneOverride: &fakePhoneOverrideStore{},
		Email:         email,
		WhatsApp:      whatsapp,
		Notifications: notifications,
		AppBaseURL:    "https://app.example.nl",
	}
	return deps, email, whatsapp, notifications
}

func TestNotifyIncident_AllChannels(t *testing.T) {
	deps, email, whatsapp, notifications := testDeps()
	deps.Rules = &fakeRuleStore{rules: []models.NotificationRule{
		{
			IsActive:  true,
			Recipient: models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "u1"},
			Channels:  []string{ChannelEmail, ChannelWhatsApp, ChannelInApp},
		},
	}}

	notifier := NewNotifierWithDeps(deps)
	notifier.NotifyIncident(context.Background(), testIncident())

	assert.Equal(t, []string{"u1@example.nl"}, email.sentTo, "Email phải được gửi tới u1")
	assert.Equal(t, []string{"+31611111111"}, whatsapp.sentTo, "WhatsApp phải được gửi tới u1")
	assert.Len(t, notifications.insertedFor("u1"), 1, "Đúng 1 notification in-app cho u1")
}

func TestNotifyIncident_OneInAppRowPerRecipient(t *testing.T) {
	deps, _, _, notifications := testDeps()
	// Hai rule cùng resolve tới u1 với kênh in_app: chỉ 1 row được ghi
	deps.Rules = &fakeRuleStore{rules: []models.NotificationRule{
		{
			IsActive:  true,
			Recipient: models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "u1"},
			Channels:  []string{ChannelInApp},
		},
		{
			IsActive:  true,
			Recipient: models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "u1"},
			Channels:  []string{ChannelInApp, ChannelEmail},
		},
	}}

	notifier := NewNotifierWithDeps(deps)
	incident := testIncident()
	notifier.NotifyIncident(context.Background(), incident)

	rows := notifications.insertedFor("u1")
	if assert.Len(t, rows, 1, "Dedupe theo identity: đúng 1 notification row dù 2 rule match") {
		assert.Equal(t, NotificationTypeIncident, rows[0].Type)
		assert.Equal(t, incident.ID, rows[0].IncidentID)
	}
}

func TestNotifyIncident_FailingEmailDoesNotBlockOtherChannels(t *testing.T) {
	deps, email, whatsapp, notifications := testDeps()
	email.err = errors.New("smtp: connection refused")
	deps.Rules = &fakeRuleStore{rules: []models.NotificationRule{
		{
			IsActive:  true,
			Recipient: models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "u1"},
			Channels:  []string{ChannelEmail, ChannelWhatsApp, ChannelInApp},
		},
	}}

	notifier := NewNotifierWithDeps(deps)
	notifier.NotifyIncident(context.Background(), testIncident())

	assert.Empty(t, email.sentTo, "Email fail")
	assert.Equal(t, []string{"+31611111111"}, whatsapp.sentTo, "WhatsApp vẫn phải được gửi khi email fail")
	assert.Len(t, notifications.insertedFor("u1"), 1, "In-app vẫn phải được ghi khi email fail")
}

func TestNotifyIncident_PanicInTransportRecovered(t *testing.T) {
	deps, email, whatsapp, _ := testDeps()
	email.panicMsg = "nil pointer in smtp client"
	deps.Rules = &fakeRuleStore{rules: []models.NotificationRule{
		{
			IsActive:  true,
			Recipient: models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "u1"},
			Channels:  []string{ChannelEmail, ChannelWhatsApp},
		},
	}}

	notifier := NewNotifierWithDeps(deps)

	// Panic trong transport không được lan ra ngoài pipeline
	assert.NotPanics(t, func() {
		notifier.NotifyIncident(context.Background(), testIncident())
	})
	assert.Equal(t, []string{"+31611111111"}, whatsapp.sentTo, "Kênh khác vẫn chạy sau panic của email")
}

func TestNotifyIncident_FailingRecipientDoesNotBlockOthers(t *testing.T) {
	deps, _, _, notifications := testDeps()
	projectID := primitive.NewObjectID()
	deps.Memberships = &fakeMembershipStore{
		projectMembers: map[string][]string{projectID.Hex(): {"u1", "u2"}},
	}
	// u1 không tồn tại trong identity provider → enrichment rỗng nhưng in_app vẫn ghi được
	deps.Identity = &fakeIdentityProvider{users: map[string]*identity.UserInfo{
		"u2": {UID: "u2", Email: "u2@example.nl"},
	}}
	deps.Rules = &fakeRuleStore{rules: []models.NotificationRule{
		{
			IsActive:  true,
			Recipient: models.RecipientDescriptor{Type: RecipientTypeTeam, ProjectID: oidPtr(projectID)},
			Channels:  []string{ChannelInApp},
		},
	}}

	notifier := NewNotifierWithDeps(deps)
	notifier.NotifyIncident(context.Background(), testIncident())

	assert.Len(t, notifications.insertedFor("u1"), 1, "u1 thiếu contact vẫn nhận in-app")
	assert.Len(t, notifications.insertedFor("u2"), 1, "u2 phải nhận in-app")
}

func TestNotifyIncident_RuleStoreErrorMeansNoDispatch(t *testing.T) {
	deps, email, whatsapp, notifications := testDeps()
	deps.Rules = &fakeRuleStore{err: errors.New("mongo: no reachable servers")}

	notifier := NewNotifierWithDeps(deps)
	notifier.NotifyIncident(context.Background(), testIncident())

	assert.Empty(t, email.sentTo)
	assert.Empty(t, whatsapp.sentTo)
	assert.Empty(t, notifications.inserted, "Không đọc được rules thì không có side effect nào")
}

func TestNotifyIncident_NoMatchingRules(t *testing.T) {
	deps, email, _, notifications := testDeps()
	deps.Rules = &fakeRuleStore{rules: []models.NotificationRule{
		{
			IsActive:  true,
			Recipient: models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "u1"},
			Channels:  []string{ChannelEmail},
			Filter:    models.RuleFilter{Severities: []string{models.SeverityLow}},
		},
		{
			// Rule inactive bị bỏ qua dù filter match
			IsActive:  false,
			Recipient: models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "u1"},
			Channels:  []string{ChannelEmail},
		},
	}}

	notifier := NewNotifierWithDeps(deps)
	notifier.NotifyIncident(context.Background(), testIncident()) // severity critical

	assert.Empty(t, email.sentTo, "Không rule nào match thì không gửi gì")
	assert.Empty(t, notifications.inserted)
}

func TestNotifyIncident_ChannelNotConfiguredIsSkippedSilently(t *testing.T) {
	deps, email, whatsapp, notifications := testDeps()
	email.configured = false
	whatsapp.configured = false
	deps.Rules = &fakeRuleStore{rules: []models.NotificationRule{
		{
			IsActive:  true,
			Recipient: models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "u1"},
			Channels:  []string{ChannelEmail, ChannelWhatsApp, ChannelInApp},
		},
	}}

	notifier := NewNotifierWithDeps(deps)
	notifier.NotifyIncident(context.Background(), testIncident())

	assert.Empty(t, email.sentTo, "Transport chưa cấu hình thì không gửi")
	assert.Empty(t, whatsapp.sentTo)
	assert.Len(t, notifications.insertedFor("u1"), 1, "In-app không phụ thuộc cấu hình transport")
}

func TestNotifyIncident_RecipientWithoutPhoneSkipsWhatsApp(t *testing.T) {
	deps, _, whatsapp, _ := testDeps()
	// u2 không có số điện thoại ở bất kỳ nguồn nào
	deps.Rules = &fakeRuleStore{rules: []models.NotificationRule{
		{
			IsActive:  true,
			Recipient: models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "u2"},
			Channels:  []string{ChannelWhatsApp},
		},
	}}

	notifier := NewNotifierWithDeps(deps)
	notifier.NotifyIncident(context.Background(), testIncident())

	assert.Empty(t, whatsapp.sentTo, "Không có số điện thoại thì skip kênh whatsapp, không phải lỗi")
}

func TestNotifyIncident_MalformedRuleSkipped(t *testing.T) {
	deps, _, _, notifications := testDeps()
	deps.Rules = &fakeRuleStore{rules: []models.NotificationRule{
		{
			// Filter hỏng (severity ngoài enum, persist từ trước khi validation chặt hơn)
			IsActive:  true,
			Recipient: models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "u1"},
			Channels:  []string{ChannelInApp},
			Filter:    models.RuleFilter{Severities: []string{"urgent"}},
		},
		{
			IsActive:  true,
			Recipient: models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "u2"},
			Channels:  []string{ChannelInApp},
		},
	}}

	notifier := NewNotifierWithDeps(deps)
	notifier.NotifyIncident(context.Background(), testIncident())

	assert.Empty(t, notifications.insertedFor("u1"), "Rule hỏng bị skip, không gửi gì")
	assert.Len(t, notifications.insertedFor("u2"), 1, "Rule hỏng không được làm hỏng các rule khác")
}

func TestNotifyIncident_TenantScopedRules(t *testing.T) {
	deps, _, _, notifications := testDeps()
	org7 := primitive.NewObjectID()
	org8 := primitive.NewObjectID()

	deps.Rules = &fakeRuleStore{rules: []models.NotificationRule{
		{
			IsActive:       true,
			OrganizationID: oidPtr(org7),
			Recipient:      models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "u1"},
			Channels:       []string{ChannelInApp},
		},
		{
			IsActive:       true,
			OrganizationID: oidPtr(org8),
			Recipient:      models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "u2"},
			Channels:       []string{ChannelInApp},
		},
	}}

	incident := testIncident()
	incident.OrganizationID = oidPtr(org7)

	notifier := NewNotifierWithDeps(deps)
	notifier.NotifyIncident(context.Background(), incident)

	assert.Len(t, notifications.insertedFor("u1"), 1, "Rule của org7 phải match incident của org7")
	assert.Empty(t, notifications.insertedFor("u2"), "Rule của org8 không được match incident của org7")
}
