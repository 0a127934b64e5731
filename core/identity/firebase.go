// Package identity bao bọc Firebase Admin SDK - identity provider của hệ thống.
// Mọi thông tin liên hệ (email, số điện thoại) của user đều được lấy từ đây.
package identity

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var (
	firebaseApp  *firebase.App
	firebaseAuth *auth.Client
)

// UserInfo chứa thông tin liên hệ của user từ identity provider
type UserInfo struct {
	UID         string // Firebase UID
	Email       string // Email chính (rỗng nếu user chưa đăng ký email)
	PhoneNumber string // Số điện thoại (rỗng nếu user chưa đăng ký)
	DisplayName string // Tên hiển thị
}

// Init khởi tạo Firebase Admin SDK
func Init(projectID, credentialsPath string) error {
	if credentialsPath == "" {
		return fmt.Errorf("firebase credentials path is empty")
	}
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
	}

	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(context.Background(), &firebase.Config{
		ProjectID: projectID,
	}, opt)
	if err != nil {
		return fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	firebaseApp = app

	authClient, err := app.Auth(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get Firebase Auth client: %w", err)
	}

	firebaseAuth = authClient
	return nil
}

// GetAuthClient trả về Firebase Auth client
func GetAuthClient() *auth.Client {
	return firebaseAuth
}

// VerifyIDToken verify Firebase ID token và trả về token claims
func VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if firebaseAuth == nil {
		return nil, fmt.Errorf("firebase auth not initialized")
	}

	token, err := firebaseAuth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	return token, nil
}

// GetUser lấy thông tin liên hệ của user từ Firebase bằng UID
func GetUser(ctx context.Context, uid string) (*UserInfo, error) {
	if firebaseAuth == nil {
		return nil, fmt.Errorf("firebase auth not initialized")
	}

	user, err := firebaseAuth.GetUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", uid, err)
	}

	return &UserInfo{
		UID:         user.UID,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		DisplayName: user.DisplayName,
	}, nil
}
