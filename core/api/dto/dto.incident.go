// package dto chứa các struct input/output của API layer
package dto

// IncidentCreateInput là dữ liệu đầu vào khi báo cáo một sự cố mới
type IncidentCreateInput struct {
	Title          string  `json:"title" validate:"required,no_xss"`
	Description    string  `json:"description,omitempty" validate:"omitempty,no_xss"`
	Severity       string  `json:"severity" validate:"required,oneof=low medium high critical"`
	Category       string  `json:"category" validate:"required,no_xss"`
	Discipline     *string `json:"discipline,omitempty" validate:"omitempty,no_xss"`
	Location       string  `json:"location,omitempty" validate:"omitempty,no_xss"`
	OrganizationID string  `json:"organizationId,omitempty" validate:"omitempty,object_id"`
	ProjectID      string  `json:"projectId,omitempty" validate:"omitempty,object_id"`
}

// IncidentStatusUpdateInput là dữ liệu đầu vào khi đổi trạng thái sự cố
type IncidentStatusUpdateInput struct {
	Status string `json:"status" validate:"required,oneof=open investigating resolved closed"`
}

// IncidentIDParam là param id trên URI
type IncidentIDParam struct {
	ID string `uri:"id" validate:"required,object_id"`
}
