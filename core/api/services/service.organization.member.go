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

// OrganizationMemberService là cấu trúc chứa các phương thức liên quan đến thành viên tổ chức
type OrganizationMemberService struct {
	*BaseServiceMongoImpl[models.OrganizationMember]
}

// NewOrganizationMemberService tạo mới OrganizationMemberService
func NewOrganizationMemberService() (*OrganizationMemberService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.OrganizationMembers)
	if !exist {
		return nil, fmt.Errorf("failed to get organization_members collection: %v", common.ErrNotFound)
	}

	return &OrganizationMemberService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.OrganizationMember](collection),
	}, nil
}

// ListActiveMemberIDs trả về danh sách user ID của thành viên có status active trong tổ chức
// Thành viên invited/suspended không nhận thông báo
func (s *OrganizationMemberService) ListActiveMemberIDs(ctx context.Context, organizationID primitive.ObjectID) ([]string, error) {
	filter := bson.M{"organizationId": organizationID, "status": models.OrgMemberStatusActive}
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
