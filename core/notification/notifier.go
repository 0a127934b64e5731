package notification

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	models "safety_hub/core/api/models/mongodb"
	"safety_hub/core/api/services"
	"safety_hub/core/delivery/channels"
	"safety_hub/core/logger"

	"safety_hub/config"
)

// Notifier là entry point của engine: nhận incident snapshot, chạy pipeline
// match → resolve → enrich → aggregate → dispatch
type Notifier struct {
	rules      RuleStore
	aggregator *Aggregator
	dispatcher *Dispatcher
}

// NewNotifier wiring production: MongoDB stores, Firebase identity, SMTP và WhatsApp transport
func NewNotifier(cfg *config.Configuration) (*Notifier, error) {
	ruleService, err := services.NewNotificationRuleService()
	if err != nil {
		return nil, fmt.Errorf("failed to create notification rule service: %w", err)
	}

	notificationService, err := services.NewNotificationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create notification service: %w", err)
	}

	contactService, err := services.NewRecipientContactService()
	if err != nil {
		return nil, fmt.Errorf("failed to create recipient contact service: %w", err)
	}

	projectMemberService, err := services.NewProjectMemberService()
	if err != nil {
		return nil, fmt.Errorf("failed to create project member service: %w", err)
	}

	orgMemberService, err := services.NewOrganizationMemberService()
	if err != nil {
		return nil, fmt.Errorf("failed to create organization member service: %w", err)
	}

	return NewNotifierWithDeps(NotifierDeps{
		Rules: &mongoRuleStore{rules: ruleService},
		Memberships: &mongoMembershipStore{
			projectMembers: projectMemberService,
			orgMembers:     orgMemberService,
		},
		Identity:      &firebaseIdentityProvider{},
		PhoneOverride: &mongoPhoneOverrideStore{contacts: contactService},
		Email:         channels.NewEmailSender(cfg),
		WhatsApp:      channels.NewWhatsAppSender(cfg),
		Notifications: &mongoNotificationStore{notifications: notificationService},
		AppBaseURL:    cfg.AppBaseURL,
	}), nil
}

// NotifierDeps gom các collaborator để inject (test dùng fake, production dùng NewNotifier)
type NotifierDeps struct {
	Rules         RuleStore
	Memberships   MembershipStore
	Identity      IdentityProvider
	PhoneOverride PhoneOverrideStore
	Email         EmailTransport
	WhatsApp      WhatsAppTransport
	Notifications NotificationStore
	AppBaseURL    string
}

// NewNotifierWithDeps tạo Notifier từ các collaborator đã có sẵn
func NewNotifierWithDeps(deps NotifierDeps) *Notifier {
	resolver := NewResolver(deps.Memberships, deps.Identity)
	enricher := NewEnricher(deps.Identity, deps.PhoneOverride)

	return &Notifier{
		rules:      deps.Rules,
		aggregator: NewAggregator(resolver, enricher),
		dispatcher: NewDispatcher(deps.Email, deps.WhatsApp, deps.Notifications, deps.AppBaseURL),
	}
}

// NotifyIncident chạy toàn bộ pipeline cho một incident vừa tạo
// Không bao giờ trả lỗi và không bao giờ panic ra ngoài: flow tạo incident
// không được phép fail vì notification. Kết quả gửi chỉ quan sát qua log.
func (n *Notifier) NotifyIncident(ctx context.Context, incident models.Incident) {
	log := logger.GetAppLogger().WithFields(logrus.Fields{
		"incidentId":   incident.ID.Hex(),
		"incidentCode": incident.Code,
		"severity":     incident.Severity,
	})

	defer func() {
		if rec := recover(); rec != nil {
			log.WithField("panic", rec).Error("🔔 [NOTIFICATION] Panic trong pipeline thông báo, đã recover")
		}
	}()

	rules, err := n.rules.ListEnabledRules(ctx)
	if err != nil {
		log.WithError(err).Error("🔔 [NOTIFICATION] Không đọc được danh sách rule, bỏ qua dispatch")
		return
	}

	// Chọn các rule áp dụng (tenant scope kiểm tra trước, rồi tới filter)
	// Rule có cấu hình hỏng (đã persist trước khi validation chặt hơn) bị skip như non-matching
	matched := make([]models.NotificationRule, 0, len(rules))
	for _, rule := range rules {
		if err := ValidateRuleFilter(rule.Filter); err != nil {
			log.WithError(err).WithField("ruleId", rule.ID.Hex()).Warn("🔔 [NOTIFICATION] Rule có filter hỏng, bỏ qua rule này")
			continue
		}
		if RuleApplies(incident, rule) {
			matched = append(matched, rule)
		}
	}

	if len(matched) == 0 {
		log.Info("🔔 [NOTIFICATION] Không có rule nào match incident")
		return
	}

	log.WithField("matchedRules", len(matched)).Info("🔔 [NOTIFICATION] Bắt đầu resolve recipients")

	// Aggregation hoàn tất trước khi dispatch: channel set union phải đầy đủ
	// trước khi bất kỳ kênh nào được gửi
	recipients := n.aggregator.Aggregate(ctx, matched)
	if len(recipients) == 0 {
		log.Info("🔔 [NOTIFICATION] Không resolve được recipient nào")
		return
	}

	log.WithField("recipients", len(recipients)).Info("🔔 [NOTIFICATION] Bắt đầu dispatch")
	n.dispatcher.Dispatch(ctx, incident, recipients)
	log.Info("🔔 [NOTIFICATION] Dispatch hoàn tất")
}
