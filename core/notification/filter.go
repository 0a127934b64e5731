package notification

import (
	"fmt"

	models "safety_hub/core/api/models/mongodb"
	"safety_hub/core/common"
)

// RuleApplies kiểm tra một rule có áp dụng cho incident không
// Tenant scope của rule là hard constraint, kiểm tra TRƯỚC khi đánh giá filter:
// rule có OrganizationID khác nil chỉ áp dụng khi incident thuộc đúng tổ chức đó
func RuleApplies(incident models.Incident, rule models.NotificationRule) bool {
	if !rule.IsActive {
		return false
	}

	if rule.OrganizationID != nil {
		if incident.OrganizationID == nil || *incident.OrganizationID != *rule.OrganizationID {
			return false
		}
	}

	return MatchesFilter(incident, rule.Filter)
}

// MatchesFilter đánh giá filter có cấu trúc trên một incident
// Mỗi dimension rỗng/nil = match tất cả; tất cả dimensions phải pass (AND logic)
// Dimension không rỗng mà field của incident absent (discipline nil) = không match
func MatchesFilter(incident models.Incident, filter models.RuleFilter) bool {
	if len(filter.Severities) > 0 && !containsString(filter.Severities, incident.Severity) {
		return false
	}

	if len(filter.Categories) > 0 && !containsString(filter.Categories, incident.Category) {
		return false
	}

	if len(filter.Disciplines) > 0 {
		if incident.Discipline == nil || !containsString(filter.Disciplines, *incident.Discipline) {
			return false
		}
	}

	if filter.OrganizationID != nil {
		if incident.OrganizationID == nil || *incident.OrganizationID != *filter.OrganizationID {
			return false
		}
	}

	if filter.ProjectID != nil {
		if incident.ProjectID == nil || *incident.ProjectID != *filter.ProjectID {
			return false
		}
	}

	return true
}

// ValidateRuleFilter kiểm tra filter lúc tạo/sửa rule (fail fast)
// Filter hỏng bị chặn từ CRUD layer, engine không phải đoán lúc match
func ValidateRuleFilter(filter models.RuleFilter) error {
	for _, s := range filter.Severities {
		if !models.IsValidSeverity(s) {
			return common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Severity không hợp lệ trong filter: %s", s),
				common.StatusBadRequest,
				nil,
			)
		}
	}

	for _, c := range filter.Categories {
		if c == "" {
			return common.NewError(
				common.ErrCodeValidationInput,
				"Category trong filter không được rỗng",
				common.StatusBadRequest,
				nil,
			)
		}
	}

	for _, d := range filter.Disciplines {
		if d == "" {
			return common.NewError(
				common.ErrCodeValidationInput,
				"Discipline trong filter không được rỗng",
				common.StatusBadRequest,
				nil,
			)
		}
	}

	return nil
}

// ValidateRecipientDescriptor kiểm tra descriptor lúc tạo/sửa rule
// Type quyết định field id nào bắt buộc
func ValidateRecipientDescriptor(recipient models.RecipientDescriptor) error {
	switch recipient.Type {
	case RecipientTypeUser:
		if recipient.UserID == "" {
			return common.NewError(
				common.ErrCodeValidationInput,
				"Recipient type user yêu cầu userId",
				common.StatusBadRequest,
				nil,
			)
		}
	case RecipientTypeTeam:
		if recipient.ProjectID == nil || recipient.ProjectID.IsZero() {
			return common.NewError(
				common.ErrCodeValidationInput,
				"Recipient type team yêu cầu projectId",
				common.StatusBadRequest,
				nil,
			)
		}
	case RecipientTypeOrganization:
		if recipient.OrganizationID == nil || recipient.OrganizationID.IsZero() {
			return common.NewError(
				common.ErrCodeValidationInput,
				"Recipient type organization yêu cầu organizationId",
				common.StatusBadRequest,
				nil,
			)
		}
	default:
		return common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Recipient type không hợp lệ: %s", recipient.Type),
			common.StatusBadRequest,
			nil,
		)
	}

	return nil
}

// ValidateChannels kiểm tra danh sách kênh lúc tạo/sửa rule
func ValidateChannels(channels []string) error {
	if len(channels) == 0 {
		return common.NewError(
			common.ErrCodeValidationInput,
			"Rule phải có ít nhất một kênh gửi",
			common.StatusBadRequest,
			nil,
		)
	}
	for _, ch := range channels {
		if !IsValidChannel(ch) {
			return common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Kênh gửi không hợp lệ: %s", ch),
				common.StatusBadRequest,
				nil,
			)
		}
	}
	return nil
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
