package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái thành viên tổ chức
const (
	OrgMemberStatusActive    = "active"    // Thành viên đang hoạt động
	OrgMemberStatusInvited   = "invited"   // Đã được mời nhưng chưa chấp nhận
	OrgMemberStatusSuspended = "suspended" // Bị tạm ngưng
)

// OrganizationMember - Thành viên của một tổ chức (tenant)
// Chỉ thành viên có Status = "active" mới nhận notification khi rule trỏ tới organization
type OrganizationMember struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OrganizationID primitive.ObjectID `json:"organizationId" bson:"organizationId" index:"single:1,compound:org_user_unique"`
	UserID         string             `json:"userId" bson:"userId" index:"single:1,compound:org_user_unique"` // Firebase UID
	Role           string             `json:"role,omitempty" bson:"role,omitempty"`                           // Vai trò trong tổ chức (admin, member, ...)
	Status         string             `json:"status" bson:"status" index:"single:1"`                          // active, invited, suspended
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}
