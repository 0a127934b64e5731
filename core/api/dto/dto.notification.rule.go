package dto

// RuleFilterInput là filter có cấu trúc trong request tạo/sửa rule
// Mỗi dimension rỗng = match tất cả
type RuleFilterInput struct {
	Severities     []string `json:"severities,omitempty" validate:"omitempty,dive,oneof=low medium high critical"`
	Categories     []string `json:"categories,omitempty" validate:"omitempty,dive,required,no_xss"`
	Disciplines    []string `json:"disciplines,omitempty" validate:"omitempty,dive,required,no_xss"`
	OrganizationID string   `json:"organizationId,omitempty" validate:"omitempty,object_id"`
	ProjectID      string   `json:"projectId,omitempty" validate:"omitempty,object_id"`
}

// RecipientDescriptorInput là recipient descriptor trong request tạo/sửa rule
type RecipientDescriptorInput struct {
	Type           string `json:"type" validate:"required,oneof=user team organization"`
	UserID         string `json:"userId,omitempty"`
	ProjectID      string `json:"projectId,omitempty" validate:"omitempty,object_id"`
	OrganizationID string `json:"organizationId,omitempty" validate:"omitempty,object_id"`
}

// NotificationRuleCreateInput là dữ liệu đầu vào khi tạo rule
type NotificationRuleCreateInput struct {
	Name           string                   `json:"name" validate:"required,no_xss"`
	Recipient      RecipientDescriptorInput `json:"recipient" validate:"required"`
	Channels       []string                 `json:"channels" validate:"required,min=1,dive,oneof=email whatsapp in_app"`
	Filter         RuleFilterInput          `json:"filter"`
	OrganizationID string                   `json:"organizationId,omitempty" validate:"omitempty,object_id"`
	IsActive       *bool                    `json:"isActive,omitempty"`
}

// NotificationRuleUpdateInput là dữ liệu đầu vào khi sửa rule
type NotificationRuleUpdateInput struct {
	Name      string                    `json:"name,omitempty" validate:"omitempty,no_xss"`
	Recipient *RecipientDescriptorInput `json:"recipient,omitempty"`
	Channels  []string                  `json:"channels,omitempty" validate:"omitempty,min=1,dive,oneof=email whatsapp in_app"`
	Filter    *RuleFilterInput          `json:"filter,omitempty"`
	IsActive  *bool                     `json:"isActive,omitempty"`
}

// NotificationRuleIDParam là param id trên URI
type NotificationRuleIDParam struct {
	ID string `uri:"id" validate:"required,object_id"`
}
