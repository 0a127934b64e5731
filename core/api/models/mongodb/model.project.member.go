package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectMember - Thành viên của một dự án ("team" trong recipient descriptor)
type ProjectMember struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ProjectID primitive.ObjectID `json:"projectId" bson:"projectId" index:"single:1,compound:project_user_unique"`
	UserID    string             `json:"userId" bson:"userId" index:"single:1,compound:project_user_unique"` // Firebase UID
	Role      string             `json:"role,omitempty" bson:"role,omitempty"`                               // Vai trò trong dự án (uitvoerder, toezichthouder, ...)
	IsActive  bool               `json:"isActive" bson:"isActive" index:"single:1"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
