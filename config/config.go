package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
// Bao gồm cấu hình server, database, Firebase và các kênh gửi notification
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":8080"`                // Địa chỉ server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`                   // Tên cơ sở dữ liệu chính
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting

	// Firebase Configuration (identity provider)
	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`       // Firebase Project ID
	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"` // Đường dẫn đến service account JSON

	// SMTP Configuration (kênh email)
	SMTPHost      string `env:"SMTP_HOST"`                 // SMTP server host (rỗng = tắt kênh email)
	SMTPPort      int    `env:"SMTP_PORT" envDefault:"587"` // SMTP server port
	SMTPUsername  string `env:"SMTP_USERNAME"`             // SMTP username
	SMTPPassword  string `env:"SMTP_PASSWORD"`             // SMTP password
	SMTPFromName  string `env:"SMTP_FROM_NAME" envDefault:"Safety Hub"` // Tên người gửi
	SMTPFromEmail string `env:"SMTP_FROM_EMAIL"`           // Email người gửi

	// WhatsApp Business Cloud API Configuration (kênh whatsapp)
	WhatsAppAccessToken   string `env:"WHATSAPP_ACCESS_TOKEN"`    // Access token (rỗng = tắt kênh whatsapp)
	WhatsAppPhoneNumberID string `env:"WHATSAPP_PHONE_NUMBER_ID"` // Phone number ID của business account
	WhatsAppAPIVersion    string `env:"WHATSAPP_API_VERSION" envDefault:"v20.0"` // Phiên bản Graph API

	// Frontend URL (dùng để build deep link trong notification)
	AppBaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:3000"` // URL frontend

	// Notification retention
	NotificationRetentionDays int `env:"NOTIFICATION_RETENTION_DAYS" envDefault:"90"` // Số ngày giữ notification đã đọc
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env bằng cách đi lên từ thư mục hiện tại
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env được cung cấp
func NewConfig() *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		fmt.Printf("Không tìm thấy thư mục config/env\n")
		return nil
	}

	err := godotenv.Load(envPath)
	if err != nil {
		fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	err = env.Parse(&cfg)
	if err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
