package notification

import (
	"context"

	models "safety_hub/core/api/models/mongodb"
	"safety_hub/core/logger"
)

// ResolvedRecipient là value object per-dispatch: một identity với địa chỉ gửi
// và tập kênh được phép. Không bao giờ persist, build lại từ đầu mỗi lần dispatch.
type ResolvedRecipient struct {
	UserID   string
	Email    string
	Phone    string
	Channels map[string]bool // Set các kênh, union từ mọi rule resolve tới identity này
}

// HasChannel kiểm tra recipient có được gửi qua kênh đó không
func (r *ResolvedRecipient) HasChannel(channel string) bool {
	return r.Channels[channel]
}

// Aggregator merge kết quả resolve của tất cả rule match thành một map dedupe theo identity id
type Aggregator struct {
	resolver *Resolver
	enricher *Enricher
}

// NewAggregator tạo Aggregator
func NewAggregator(resolver *Resolver, enricher *Enricher) *Aggregator {
	return &Aggregator{
		resolver: resolver,
		enricher: enricher,
	}
}

// Aggregate resolve từng rule và union channel set theo identity id
// Bất biến: tối đa một ResolvedRecipient cho mỗi identity id cho mỗi dispatch,
// channel set là union qua mọi rule resolve tới identity đó (set union, không phải concat)
// Map được build xong hoàn toàn trước khi dispatcher bắt đầu gửi
func (a *Aggregator) Aggregate(ctx context.Context, rules []models.NotificationRule) map[string]*ResolvedRecipient {
	log := logger.GetAppLogger()
	recipients := make(map[string]*ResolvedRecipient)

	for _, rule := range rules {
		userIDs := a.resolver.Resolve(ctx, rule.Recipient)
		if len(userIDs) == 0 {
			log.WithFields(map[string]interface{}{
				"ruleId":   rule.ID.Hex(),
				"ruleName": rule.Name,
			}).Info("🔔 [NOTIFICATION] Rule không resolve được recipient nào")
			continue
		}

		for _, uid := range userIDs {
			entry, exists := recipients[uid]
			if !exists {
				contact := a.enricher.Enrich(ctx, uid)
				entry = &ResolvedRecipient{
					UserID:   uid,
					Email:    contact.Email,
					Phone:    contact.Phone,
					Channels: make(map[string]bool),
				}
				recipients[uid] = entry
			}

			for _, ch := range rule.Channels {
				if IsValidChannel(ch) {
					entry.Channels[ch] = true
				}
			}
		}
	}

	return recipients
}
