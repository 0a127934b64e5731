package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "safety_hub/core/api/models/mongodb"
	"safety_hub/core/common"
	"safety_hub/core/global"
)

// NotificationRuleService là cấu trúc chứa các phương thức liên quan đến rule thông báo sự cố
type NotificationRuleService struct {
	*BaseServiceMongoImpl[models.NotificationRule]
}

// NewNotificationRuleService tạo mới NotificationRuleService
func NewNotificationRuleService() (*NotificationRuleService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.NotificationRules)
	if !exist {
		return nil, fmt.Errorf("failed to get notification_rules collection: %v", common.ErrNotFound)
	}

	return &NotificationRuleService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.NotificationRule](collection),
	}, nil
}

// ListEnabled trả về toàn bộ rule đang bật, theo thứ tự tạo
// Engine đánh giá từng rule độc lập trên mỗi incident, rule tắt không bao giờ match
func (s *NotificationRuleService) ListEnabled(ctx context.Context) ([]models.NotificationRule, error) {
	filter := bson.M{"isActive": true}
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	return s.Find(ctx, filter, opts)
}

// ListForOrganization liệt kê rule của một tổ chức với phân trang (màn hình quản trị rule)
func (s *NotificationRuleService) ListForOrganization(ctx context.Context, organizationID primitive.ObjectID, page, limit int64) (*models.PaginateResult[models.NotificationRule], error) {
	filter := bson.M{"organizationId": organizationID}
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// SetActive bật/tắt một rule
func (s *NotificationRuleService) SetActive(ctx context.Context, id primitive.ObjectID, isActive bool) (models.NotificationRule, error) {
	return s.UpdateById(ctx, id, bson.M{"isActive": isActive})
}
