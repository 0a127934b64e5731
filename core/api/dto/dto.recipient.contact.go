package dto

// RecipientContactSetInput là dữ liệu đầu vào khi ghi đè số điện thoại của user
type RecipientContactSetInput struct {
	UserID string `json:"userId" validate:"required"`
	Phone  string `json:"phone" validate:"required,e164"`
	Note   string `json:"note,omitempty" validate:"omitempty,no_xss"`
}

// RecipientContactUserParam là param userId trên URI
type RecipientContactUserParam struct {
	UserID string `uri:"userId" validate:"required"`
}
