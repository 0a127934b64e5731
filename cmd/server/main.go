package main

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"safety_hub/core/global"
	"safety_hub/core/logger"
	"safety_hub/core/worker"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Khởi tạo logger với cấu hình mặc định
	// Logger sẽ tự động đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	// Log thông tin khởi tạo bằng logger mới
	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// main_thread khởi tạo và chạy Fiber server
func main_thread() {
	// Khởi tạo app với cấu hình
	app := InitFiberApp()

	cfg := global.ServerConfig
	log := logger.GetAppLogger()

	log.WithFields(map[string]interface{}{
		"address":  cfg.Address,
		"protocol": "HTTP",
	}).Info("Starting Fiber server...")

	listenConfig := fiber.ListenConfig{}
	if err := app.Listen(cfg.Address, listenConfig); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo registry
	InitRegistry()

	log := logger.GetAppLogger()

	// Khởi tạo và chạy Notification Cleanup Worker (background worker)
	cleanupWorker, err := worker.NewNotificationCleanupWorker(global.ServerConfig.NotificationRetentionDays)
	if err != nil {
		log.WithError(err).Error("Failed to create notification cleanup worker, continuing without cleanup worker")
	} else {
		// Tạo context với cancel để có thể dừng worker khi cần
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Chạy worker trong goroutine riêng với recover
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(map[string]interface{}{
						"panic": r,
					}).Error("🧹 [NOTIFICATION_CLEANUP] Worker goroutine panic")
				}
			}()

			if err := cleanupWorker.Start(ctx); err != nil {
				log.WithError(err).Error("🧹 [NOTIFICATION_CLEANUP] Worker stopped with error")
			}
		}()
	}

	// Chạy Fiber server trên main thread
	main_thread()
}
