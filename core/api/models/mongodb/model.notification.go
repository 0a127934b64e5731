package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification - In-app notification record, được tạo bởi kênh in_app của dispatcher
// Engine chỉ ghi 1 lần (append-only); UI layer đọc và đánh dấu đã đọc
type Notification struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     string             `json:"userId" bson:"userId" index:"single:1"` // Firebase UID của người nhận
	Type       string             `json:"type" bson:"type"`                      // Loại notification (ví dụ: incident)
	Title      string             `json:"title" bson:"title"`
	Message    string             `json:"message" bson:"message"`
	IncidentID primitive.ObjectID `json:"incidentId" bson:"incidentId" index:"single:1"` // Back-reference tới incident
	IsRead     bool               `json:"isRead" bson:"isRead"`                          // Mặc định false
	CreatedAt  int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64              `json:"updatedAt" bson:"updatedAt"`
}
