package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "safety_hub/core/api/models/mongodb"
	"safety_hub/core/common"
	"safety_hub/core/global"
)

// NotificationService là cấu trúc chứa các phương thức liên quan đến thông báo in-app
type NotificationService struct {
	*BaseServiceMongoImpl[models.Notification]
}

// NewNotificationService tạo mới NotificationService
func NewNotificationService() (*NotificationService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Notifications)
	if !exist {
		return nil, fmt.Errorf("failed to get notifications collection: %v", common.ErrNotFound)
	}

	return &NotificationService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.Notification](collection),
	}, nil
}

// ListForUser liệt kê thông báo của một user với phân trang, mới nhất trước
func (s *NotificationService) ListForUser(ctx context.Context, userID string, page, limit int64) (*models.PaginateResult[models.Notification], error) {
	filter := bson.M{"userId": userID}
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// CountUnread đếm số thông báo chưa đọc của user (badge trên UI)
func (s *NotificationService) CountUnread(ctx context.Context, userID string) (int64, error) {
	return s.CountDocuments(ctx, bson.M{"userId": userID, "isRead": false})
}

// MarkRead đánh dấu một thông báo là đã đọc
// Filter kèm userId để user không đánh dấu được thông báo của người khác
func (s *NotificationService) MarkRead(ctx context.Context, id primitive.ObjectID, userID string) (models.Notification, error) {
	filter := bson.M{"_id": id, "userId": userID}
	return s.UpdateOne(ctx, filter, bson.M{"isRead": true}, nil)
}

// MarkAllRead đánh dấu tất cả thông báo của user là đã đọc, trả về số bản ghi đã sửa
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	filter := bson.M{"userId": userID, "isRead": false}
	return s.UpdateMany(ctx, filter, bson.M{"isRead": true})
}

// DeleteOlderThan xóa thông báo đã đọc cũ hơn số ngày cho trước (worker dọn dẹp định kỳ)
// Thông báo chưa đọc được giữ lại bất kể tuổi
func (s *NotificationService) DeleteOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays).UnixMilli()
	return s.DeleteMany(ctx, bson.M{"isRead": true, "createdAt": bson.M{"$lt": cutoff}})
}
