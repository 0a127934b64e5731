package dto

// NotificationIDParam là param id trên URI
type NotificationIDParam struct {
	ID string `uri:"id" validate:"required,object_id"`
}

// PaginationQuery là query phân trang chung cho các API danh sách
type PaginationQuery struct {
	Page  int64 `query:"page"`
	Limit int64 `query:"limit"`
}
