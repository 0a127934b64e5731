// package notification chứa engine match rule và fan-out thông báo sự cố
// Pipeline: incident → match rules → resolve recipients → enrich contacts → aggregate → dispatch
package notification

// Các kênh gửi thông báo, mỗi kênh fail độc lập
const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
	ChannelInApp    = "in_app"
)

// Các loại recipient descriptor của rule
const (
	RecipientTypeUser         = "user"         // Đúng 1 user theo Firebase UID
	RecipientTypeTeam         = "team"         // Tất cả thành viên active của dự án
	RecipientTypeOrganization = "organization" // Tất cả thành viên active của tổ chức
)

// NotificationTypeIncident là type tag của notification in-app sinh từ incident
const NotificationTypeIncident = "incident"

// AllChannels liệt kê toàn bộ kênh hợp lệ
var AllChannels = []string{ChannelEmail, ChannelWhatsApp, ChannelInApp}

// IsValidChannel kiểm tra tên kênh có hợp lệ không
func IsValidChannel(channel string) bool {
	switch channel {
	case ChannelEmail, ChannelWhatsApp, ChannelInApp:
		return true
	}
	return false
}

// IsValidRecipientType kiểm tra loại recipient có hợp lệ không
func IsValidRecipientType(t string) bool {
	switch t {
	case RecipientTypeUser, RecipientTypeTeam, RecipientTypeOrganization:
		return true
	}
	return false
}
