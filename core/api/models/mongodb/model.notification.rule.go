package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RuleFilter - Filter có cấu trúc của notification rule
// Mỗi dimension rỗng/nil = match tất cả; tất cả dimensions phải pass (AND logic)
// Filter được validate lúc tạo/sửa rule (fail fast), không phải lúc match
type RuleFilter struct {
	Severities     []string            `json:"severities,omitempty" bson:"severities,omitempty"`         // Chỉ match các severity này (rỗng = tất cả)
	Categories     []string            `json:"categories,omitempty" bson:"categories,omitempty"`         // Chỉ match các category này (rỗng = tất cả)
	Disciplines    []string            `json:"disciplines,omitempty" bson:"disciplines,omitempty"`       // Chỉ match các discipline này (rỗng = tất cả)
	OrganizationID *primitive.ObjectID `json:"organizationId,omitempty" bson:"organizationId,omitempty"` // Incident phải thuộc đúng tổ chức này (nil = bỏ qua)
	ProjectID      *primitive.ObjectID `json:"projectId,omitempty" bson:"projectId,omitempty"`           // Incident phải thuộc đúng dự án này (nil = bỏ qua)
}

// RecipientDescriptor - Mô tả người nhận của một rule (closed tagged variant)
// Type quyết định field id nào được dùng:
//   - "user": UserID (Firebase UID) - đúng 1 người
//   - "team": ProjectID - tất cả thành viên active của dự án
//   - "organization": OrganizationID - tất cả thành viên active của tổ chức
type RecipientDescriptor struct {
	Type           string              `json:"type" bson:"type"` // user, team, organization
	UserID         string              `json:"userId,omitempty" bson:"userId,omitempty"`
	ProjectID      *primitive.ObjectID `json:"projectId,omitempty" bson:"projectId,omitempty"`
	OrganizationID *primitive.ObjectID `json:"organizationId,omitempty" bson:"organizationId,omitempty"`
}

// NotificationRule - Rule cấu hình: incident nào → gửi cho ai → qua kênh nào
// Được admin tạo/sửa/xóa qua CRUD layer; notification engine chỉ đọc
type NotificationRule struct {
	ID             primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string              `json:"name" bson:"name"`                                 // Tên rule để admin nhận biết
	Recipient      RecipientDescriptor `json:"recipient" bson:"recipient"`                       // Người nhận (user/team/organization)
	Channels       []string            `json:"channels" bson:"channels"`                         // Các kênh gửi: email, whatsapp, in_app
	Filter         RuleFilter          `json:"filter" bson:"filter"`                             // Filter có cấu trúc (soft filter)
	OrganizationID *primitive.ObjectID `json:"organizationId,omitempty" bson:"organizationId,omitempty" index:"single:1"` // Tenant scope: nil = rule hệ thống, khác nil = chỉ match incident của đúng tổ chức này (hard constraint, kiểm tra TRƯỚC filter)
	IsActive       bool                `json:"isActive" bson:"isActive" index:"single:1"`
	CreatedAt      int64               `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64               `json:"updatedAt" bson:"updatedAt"`
}
