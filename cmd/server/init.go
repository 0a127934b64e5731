package main

import (
	"github.com/sirupsen/logrus"

	"safety_hub/config"
	"safety_hub/core/database"
	"safety_hub/core/global"
	"safety_hub/core/identity"
)

// InitGlobal khởi tạo các biến toàn cục theo thứ tự phụ thuộc
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
	initFirebase()         // Khởi tạo Firebase (identity provider)
}

// initColNames khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Incidents = "incidents"
	global.MongoDB_ColNames.NotificationRules = "notification_rules"
	global.MongoDB_ColNames.Notifications = "notifications"
	global.MongoDB_ColNames.RecipientContacts = "recipient_contacts"
	global.MongoDB_ColNames.ProjectMembers = "project_members"
	global.MongoDB_ColNames.OrganizationMembers = "organization_members"

	logrus.Info("Initialized collection names")
}

// initValidator khởi tạo validator với các custom validators (no_xss, object_id)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// initConfig khởi tạo cấu hình server từ env
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// initDatabase_MongoDB khởi tạo kết nối database, collections và indexes
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.Connect(global.ServerConfig.MongoDB_ConnectionURI)
	if err != nil {
		logrus.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections")

	if err := database.EnsureIndexes(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure indexes: %v", err)
	}
	logrus.Info("Ensured indexes")
}

// initFirebase khởi tạo Firebase Admin SDK
func initFirebase() {
	cfg := global.ServerConfig
	if cfg.FirebaseProjectID == "" {
		logrus.Warn("Firebase project ID not configured, identity lookups will fail")
		return
	}

	if err := identity.Init(cfg.FirebaseProjectID, cfg.FirebaseCredentialsPath); err != nil {
		logrus.Fatalf("Failed to initialize Firebase: %v", err)
	}
	logrus.Info("Initialized Firebase")
}
