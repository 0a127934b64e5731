package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecipientContact - Phone override cho người nhận notification
// Store này có trước khi identity provider hỗ trợ số điện thoại (backward compatibility):
// khi enrich contact, số điện thoại ở đây được ưu tiên, identity provider là fallback
type RecipientContact struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string             `json:"userId" bson:"userId" index:"single:1,unique"` // Firebase UID
	Phone     string             `json:"phone" bson:"phone"`                           // Số điện thoại override (định dạng E.164)
	Note      string             `json:"note,omitempty" bson:"note,omitempty"`         // Ghi chú của admin
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
