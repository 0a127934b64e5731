package notification

import (
	models "safety_hub/core/api/models/mongodb"
	"safety_hub/core/logger"

	"context"
)

// Resolver mở rộng recipient descriptor thành danh sách identity id cụ thể
type Resolver struct {
	memberships MembershipStore
	provider    IdentityProvider
}

// NewResolver tạo Resolver từ các collaborator
func NewResolver(memberships MembershipStore, provider IdentityProvider) *Resolver {
	return &Resolver{
		memberships: memberships,
		provider:    provider,
	}
}

// Resolve trả về danh sách Firebase UID mà descriptor trỏ tới
// Mọi lỗi đều soft-fail: log rồi trả về danh sách rỗng (hoặc thiếu phần tử lỗi),
// không bao giờ làm hỏng việc resolve của các rule khác
func (r *Resolver) Resolve(ctx context.Context, recipient models.RecipientDescriptor) []string {
	log := logger.GetAppLogger()

	switch recipient.Type {
	case RecipientTypeUser:
		if recipient.UserID == "" {
			log.Warn("🔔 [NOTIFICATION] Recipient type user nhưng thiếu userId, bỏ qua")
			return nil
		}
		// Xác nhận user tồn tại trong identity provider, lỗi lookup = bỏ qua
		if _, err := r.provider.GetUser(ctx, recipient.UserID); err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"userId": recipient.UserID,
			}).Warn("🔔 [NOTIFICATION] Không lookup được user, bỏ qua recipient")
			return nil
		}
		return []string{recipient.UserID}

	case RecipientTypeTeam:
		if recipient.ProjectID == nil || recipient.ProjectID.IsZero() {
			log.Warn("🔔 [NOTIFICATION] Recipient type team nhưng thiếu projectId, bỏ qua")
			return nil
		}
		ids, err := r.memberships.ListActiveProjectMembers(ctx, *recipient.ProjectID)
		if err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"projectId": recipient.ProjectID.Hex(),
			}).Warn("🔔 [NOTIFICATION] Không lấy được thành viên dự án, bỏ qua recipient")
			return nil
		}
		return ids

	case RecipientTypeOrganization:
		if recipient.OrganizationID == nil || recipient.OrganizationID.IsZero() {
			log.Warn("🔔 [NOTIFICATION] Recipient type organization nhưng thiếu organizationId, bỏ qua")
			return nil
		}
		ids, err := r.memberships.ListActiveOrgMembers(ctx, *recipient.OrganizationID)
		if err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"organizationId": recipient.OrganizationID.Hex(),
			}).Warn("🔔 [NOTIFICATION] Không lấy được thành viên tổ chức, bỏ qua recipient")
			return nil
		}
		return ids

	default:
		log.WithFields(map[string]interface{}{
			"type": recipient.Type,
		}).Warn("🔔 [NOTIFICATION] Recipient type không xác định, bỏ qua")
		return nil
	}
}
