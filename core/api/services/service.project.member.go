package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "safety_hub/core/api/models/mongodb"
	"safety_hub/core/common"
	"safety_hub/core/global"
)

// ProjectMemberService là cấu trúc chứa các phương thức liên quan đến thành viên dự án
type ProjectMemberService struct {
	*BaseServiceMongoImpl[models.ProjectMember]
}

// NewProjectMemberService tạo mới ProjectMemberService
func NewProjectMemberService() (*ProjectMemberService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ProjectMembers)
	if !exist {
		return nil, fmt.Errorf("failed to get project_members collection: %v", common.ErrNotFound)
	}

	return &ProjectMemberService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.ProjectMember](collection),
	}, nil
}

// ListActiveMemberIDs trả về danh sách user ID của các thành viên đang hoạt động trong dự án
// Rule team trỏ tới dự án sẽ gửi thông báo cho đúng danh sách này
func (s *ProjectMemberService) ListActiveMemberIDs(ctx context.Context, projectID primitive.ObjectID) ([]string, error) {
	filter := bson.M{"projectId": projectID, "isActive": true}
	members, err := s.Find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	return ids, nil
}
