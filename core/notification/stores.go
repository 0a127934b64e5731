package notification

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	models "safety_hub/core/api/models/mongodb"
	"safety_hub/core/api/services"
	"safety_hub/core/identity"
)

// Các collaborator interface của engine
// Engine chỉ đọc rule/membership/contact và ghi notification, mọi thứ khác là của CRUD layer

// RuleStore đọc danh sách rule đang bật
type RuleStore interface {
	ListEnabledRules(ctx context.Context) ([]models.NotificationRule, error)
}

// MembershipStore đọc danh sách thành viên active của dự án/tổ chức
type MembershipStore interface {
	ListActiveProjectMembers(ctx context.Context, projectID primitive.ObjectID) ([]string, error)
	ListActiveOrgMembers(ctx context.Context, organizationID primitive.ObjectID) ([]string, error)
}

// IdentityProvider lookup thông tin user (email, số điện thoại) từ identity provider
type IdentityProvider interface {
	GetUser(ctx context.Context, uid string) (*identity.UserInfo, error)
}

// PhoneOverrideStore đọc số điện thoại override, chuỗi rỗng nếu không có
type PhoneOverrideStore interface {
	GetOverridePhone(ctx context.Context, uid string) (string, error)
}

// EmailTransport gửi email, IsConfigured false = kênh tắt (no-op, không phải lỗi)
type EmailTransport interface {
	IsConfigured() bool
	Send(ctx context.Context, to string, subject string, html string, text string) error
}

// WhatsAppTransport gửi WhatsApp message, IsConfigured false = kênh tắt
type WhatsAppTransport interface {
	IsConfigured() bool
	Send(ctx context.Context, to string, message string) error
}

// NotificationStore ghi notification in-app (append-only từ phía engine)
type NotificationStore interface {
	Insert(ctx context.Context, n models.Notification) error
}

// ====================================
// BINDING PRODUCTION (MongoDB + Firebase)
// ====================================

// mongoRuleStore binding RuleStore trên NotificationRuleService
type mongoRuleStore struct {
	rules *services.NotificationRuleService
}

func (s *mongoRuleStore) ListEnabledRules(ctx context.Context) ([]models.NotificationRule, error) {
	return s.rules.ListEnabled(ctx)
}

// mongoMembershipStore binding MembershipStore trên các member service
type mongoMembershipStore struct {
	projectMembers *services.ProjectMemberService
	orgMembers     *services.OrganizationMemberService
}

func (s *mongoMembershipStore) ListActiveProjectMembers(ctx context.Context, projectID primitive.ObjectID) ([]string, error) {
	return s.projectMembers.ListActiveMemberIDs(ctx, projectID)
}

func (s *mongoMembershipStore) ListActiveOrgMembers(ctx context.Context, organizationID primitive.ObjectID) ([]string, error) {
	return s.orgMembers.ListActiveMemberIDs(ctx, organizationID)
}

// firebaseIdentityProvider binding IdentityProvider trên Firebase Auth
type firebaseIdentityProvider struct{}

func (p *firebaseIdentityProvider) GetUser(ctx context.Context, uid string) (*identity.UserInfo, error) {
	return identity.GetUser(ctx, uid)
}

// mongoPhoneOverrideStore binding PhoneOverrideStore trên RecipientContactService
type mongoPhoneOverrideStore struct {
	contacts *services.RecipientContactService
}

func (s *mongoPhoneOverrideStore) GetOverridePhone(ctx context.Context, uid string) (string, error) {
	return s.contacts.GetOverridePhone(ctx, uid)
}

// mongoNotificationStore binding NotificationStore trên NotificationService
type mongoNotificationStore struct {
	notifications *services.NotificationService
}

func (s *mongoNotificationStore) Insert(ctx context.Context, n models.Notification) error {
	_, err := s.notifications.InsertOne(ctx, n)
	return err
}
