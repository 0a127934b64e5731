package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	models "safety_hub/core/api/models/mongodb"
	"safety_hub/core/common"
	"safety_hub/core/global"
)

// RecipientContactService là cấu trúc chứa các phương thức liên quan đến số điện thoại override
// Bảng này ghi đè số điện thoại từ identity provider cho kênh WhatsApp
type RecipientContactService struct {
	*BaseServiceMongoImpl[models.RecipientContact]
}

// NewRecipientContactService tạo mới RecipientContactService
func NewRecipientContactService() (*RecipientContactService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.RecipientContacts)
	if !exist {
		return nil, fmt.Errorf("failed to get recipient_contacts collection: %v", common.ErrNotFound)
	}

	return &RecipientContactService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.RecipientContact](collection),
	}, nil
}

// GetOverridePhone trả về số điện thoại override của user, chuỗi rỗng nếu không có bản ghi
func (s *RecipientContactService) GetOverridePhone(ctx context.Context, userID string) (string, error) {
	contact, err := s.FindOne(ctx, bson.M{"userId": userID}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return contact.Phone, nil
}

// SetOverride ghi đè số điện thoại cho user (upsert theo userId)
func (s *RecipientContactService) SetOverride(ctx context.Context, userID string, phone string, note string) (models.RecipientContact, error) {
	filter := bson.M{"userId": userID}
	update := bson.M{"userId": userID, "phone": phone}
	if note != "" {
		update["note"] = note
	}
	return s.Upsert(ctx, filter, update)
}

// RemoveOverride xóa số điện thoại override của user
func (s *RecipientContactService) RemoveOverride(ctx context.Context, userID string) error {
	return s.DeleteOne(ctx, bson.M{"userId": userID})
}
