package worker

import (
	"context"

	"github.com/robfig/cron/v3"

	"safety_hub/core/api/services"
	"safety_hub/core/logger"
)

// NotificationCleanupWorker worker dọn dẹp các thông báo in-app cũ
// Chạy theo lịch cron hàng ngày, xóa thông báo quá thời gian lưu trữ
type NotificationCleanupWorker struct {
	notificationService *services.NotificationService
	retentionDays       int
	cron                *cron.Cron
}

// NewNotificationCleanupWorker tạo mới NotificationCleanupWorker
// Tham số:
//   - retentionDays: Số ngày lưu trữ thông báo (mặc định: 90 ngày)
func NewNotificationCleanupWorker(retentionDays int) (*NotificationCleanupWorker, error) {
	notificationService, err := services.NewNotificationService()
	if err != nil {
		return nil, err
	}

	if retentionDays <= 0 {
		retentionDays = 90 // Mặc định 90 ngày
	}

	return &NotificationCleanupWorker{
		notificationService: notificationService,
		retentionDays:       retentionDays,
		cron:                cron.New(),
	}, nil
}

// Start đăng ký cron job và chạy worker cho đến khi context bị hủy
// Lịch chạy: 03:00 mỗi ngày (giờ server)
func (w *NotificationCleanupWorker) Start(ctx context.Context) error {
	log := logger.GetWorkerLogger()

	_, err := w.cron.AddFunc("0 3 * * *", func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(map[string]interface{}{
					"panic": r,
				}).Error("🧹 [NOTIFICATION_CLEANUP] Panic khi dọn dẹp thông báo, sẽ tiếp tục ở lần chạy tiếp theo")
			}
		}()

		deletedCount, err := w.notificationService.DeleteOlderThan(ctx, w.retentionDays)
		if err != nil {
			log.WithError(err).Error("🧹 [NOTIFICATION_CLEANUP] Failed to delete old notifications")
			return
		}

		if deletedCount > 0 {
			log.WithFields(map[string]interface{}{
				"deletedCount":  deletedCount,
				"retentionDays": w.retentionDays,
			}).Info("🧹 [NOTIFICATION_CLEANUP] Deleted old notifications")
		}
		// Nếu deletedCount = 0, không log (giảm log noise)
	})
	if err != nil {
		return err
	}

	log.WithFields(map[string]interface{}{
		"schedule":      "0 3 * * *",
		"retentionDays": w.retentionDays,
	}).Info("🧹 [NOTIFICATION_CLEANUP] Starting Notification Cleanup Worker...")

	w.cron.Start()

	<-ctx.Done()
	stopCtx := w.cron.Stop()
	<-stopCtx.Done()
	log.Info("🧹 [NOTIFICATION_CLEANUP] Notification Cleanup Worker stopped")
	return nil
}
