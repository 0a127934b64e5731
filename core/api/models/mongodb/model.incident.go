package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mức độ nghiêm trọng của sự cố (closed enum, thứ tự tăng dần)
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Trạng thái xử lý của sự cố
const (
	IncidentStatusOpen          = "open"
	IncidentStatusInvestigating = "investigating"
	IncidentStatusResolved      = "resolved"
	IncidentStatusClosed        = "closed"
)

// IsValidSeverity kiểm tra mức độ nghiêm trọng có nằm trong enum không
func IsValidSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// IsValidIncidentStatus kiểm tra trạng thái sự cố có hợp lệ không
func IsValidIncidentStatus(s string) bool {
	switch s {
	case IncidentStatusOpen, IncidentStatusInvestigating, IncidentStatusResolved, IncidentStatusClosed:
		return true
	}
	return false
}

// Incident - Sự cố an toàn trên công trường (melding)
// Snapshot bất biến của incident được truyền vào notification engine lúc trigger.
// Engine chỉ đọc, không bao giờ ghi lại incident.
type Incident struct {
	ID             primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Code           string              `json:"code" bson:"code" index:"single:1,unique"` // Mã incident hiển thị cho người dùng (ví dụ: INC-2026-0042)
	Title          string              `json:"title" bson:"title"`
	Description    string              `json:"description,omitempty" bson:"description,omitempty"`
	Severity       string              `json:"severity" bson:"severity"`                             // low, medium, high, critical
	Category       string              `json:"category" bson:"category"`                             // Loại sự cố (open string enum: graafschade, valgevaar, ...)
	Discipline     *string             `json:"discipline,omitempty" bson:"discipline,omitempty"`     // Chuyên ngành (optional: Elektra, Gas, Water, ...)
	Location       string              `json:"location,omitempty" bson:"location,omitempty"`         // Vị trí xảy ra sự cố
	OrganizationID *primitive.ObjectID `json:"organizationId,omitempty" bson:"organizationId,omitempty" index:"single:1"` // Tổ chức sở hữu incident (tenant)
	ProjectID      *primitive.ObjectID `json:"projectId,omitempty" bson:"projectId,omitempty" index:"single:1"`           // Dự án liên quan (optional)
	ReportedBy     string              `json:"reportedBy,omitempty" bson:"reportedBy,omitempty"` // Firebase UID của người báo cáo
	Status         string              `json:"status" bson:"status"`                             // open, investigating, resolved, closed
	CreatedAt      int64               `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64               `json:"updatedAt" bson:"updatedAt"`
}
