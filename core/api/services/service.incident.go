package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "safety_hub/core/api/models/mongodb"
	"safety_hub/core/common"
	"safety_hub/core/global"
)

// IncidentService là cấu trúc chứa các phương thức liên quan đến sự cố an toàn
type IncidentService struct {
	*BaseServiceMongoImpl[models.Incident]
}

// NewIncidentService tạo mới IncidentService
func NewIncidentService() (*IncidentService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Incidents)
	if !exist {
		return nil, fmt.Errorf("failed to get incidents collection: %v", common.ErrNotFound)
	}

	return &IncidentService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.Incident](collection),
	}, nil
}

// Create tạo mới một sự cố với mã tự sinh dạng INC-<năm>-<số thứ tự>
// Trả về snapshot đầy đủ của sự cố vừa tạo (pipeline thông báo chạy trên snapshot này)
func (s *IncidentService) Create(ctx context.Context, incident models.Incident) (models.Incident, error) {
	var zero models.Incident

	if incident.Status == "" {
		incident.Status = models.IncidentStatusOpen
	}

	code, err := s.nextCode(ctx)
	if err != nil {
		return zero, err
	}
	incident.Code = code

	created, err := s.InsertOne(ctx, incident)
	if err != nil {
		// Mã bị trùng do request song song: sinh lại một lần rồi thử lại
		if errors.Is(err, common.ErrMongoDuplicate) {
			code, retryErr := s.nextCode(ctx)
			if retryErr != nil {
				return zero, retryErr
			}
			incident.Code = code
			return s.InsertOne(ctx, incident)
		}
		return zero, err
	}

	return created, nil
}

// nextCode sinh mã sự cố kế tiếp trong năm hiện tại, ví dụ INC-2026-0042
func (s *IncidentService) nextCode(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("INC-%d-", year)

	count, err := s.CountDocuments(ctx, bson.M{
		"code": bson.M{"$regex": "^" + prefix},
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

// FindByCode tìm sự cố theo mã
func (s *IncidentService) FindByCode(ctx context.Context, code string) (models.Incident, error) {
	return s.FindOne(ctx, bson.M{"code": code}, nil)
}

// ListForOrganization liệt kê sự cố của một tổ chức với phân trang, mới nhất trước
func (s *IncidentService) ListForOrganization(ctx context.Context, organizationID primitive.ObjectID, page, limit int64) (*models.PaginateResult[models.Incident], error) {
	filter := bson.M{"organizationId": organizationID}
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// UpdateStatus cập nhật trạng thái của sự cố
func (s *IncidentService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (models.Incident, error) {
	var zero models.Incident

	if !models.IsValidIncidentStatus(status) {
		return zero, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Trạng thái sự cố không hợp lệ: %s", status),
			common.StatusBadRequest,
			nil,
		)
	}

	return s.UpdateById(ctx, id, bson.M{"status": status})
}
