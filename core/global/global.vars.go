package global

import (
	"safety_hub/config"
	"safety_hub/core/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName chứa tên các collection trong MongoDB
type CollectionName struct {
	Incidents           string // Tên collection cho sự cố an toàn (incidents)
	NotificationRules   string // Tên collection cho notification rules
	Notifications       string // Tên collection cho in-app notifications
	RecipientContacts   string // Tên collection cho phone override của người nhận
	ProjectMembers      string // Tên collection cho thành viên dự án
	OrganizationMembers string // Tên collection cho thành viên tổ chức
}

// Các biến toàn cục
var Validate *validator.Validate           // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client          // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration     // Cấu hình của server
var MongoDB_ColNames = *new(CollectionName) // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
