package notification

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	models "safety_hub/core/api/models/mongodb"
	"safety_hub/core/logger"
)

// Dispatcher gửi thông báo cho từng recipient đã aggregate qua các kênh của họ
// Mọi recipient chạy song song; trong một recipient, từng kênh fail độc lập.
// Không retry, không trạng thái delivery: kết quả chỉ quan sát được qua log.
type Dispatcher struct {
	email         EmailTransport
	whatsapp      WhatsAppTransport
	notifications NotificationStore
	baseURL       string
}

// NewDispatcher tạo Dispatcher
func NewDispatcher(email EmailTransport, whatsapp WhatsAppTransport, notifications NotificationStore, baseURL string) *Dispatcher {
	return &Dispatcher{
		email:         email,
		whatsapp:      whatsapp,
		notifications: notifications,
		baseURL:       baseURL,
	}
}

// Dispatch fan-out tới tất cả recipients, chờ tất cả xong rồi mới return
// Không bao giờ trả lỗi: mọi lỗi đều được bắt ở scope nhỏ nhất và log
func (d *Dispatcher) Dispatch(ctx context.Context, incident models.Incident, recipients map[string]*ResolvedRecipient) {
	var wg sync.WaitGroup

	for _, recipient := range recipients {
		wg.Add(1)
		go func(r *ResolvedRecipient) {
			defer wg.Done()
			d.dispatchRecipient(ctx, incident, r)
		}(recipient)
	}

	wg.Wait()
}

// dispatchRecipient thực hiện tối đa 3 side effect độc lập cho một recipient
func (d *Dispatcher) dispatchRecipient(ctx context.Context, incident models.Incident, r *ResolvedRecipient) {
	if r.HasChannel(ChannelInApp) {
		d.attemptChannel(incident, r.UserID, ChannelInApp, func() error {
			return d.sendInApp(ctx, incident, r)
		})
	}

	if r.HasChannel(ChannelEmail) {
		d.attemptChannel(incident, r.UserID, ChannelEmail, func() error {
			return d.sendEmail(ctx, incident, r)
		})
	}

	if r.HasChannel(ChannelWhatsApp) {
		d.attemptChannel(incident, r.UserID, ChannelWhatsApp, func() error {
			return d.sendWhatsApp(ctx, incident, r)
		})
	}
}

// attemptChannel chạy một lần gửi trên một kênh, bắt cả panic lẫn error
// Hiệu ứng duy nhất khi fail là một dòng log kèm đủ context để chẩn đoán
func (d *Dispatcher) attemptChannel(incident models.Incident, userID string, channel string, send func() error) {
	log := logger.GetAppLogger().WithFields(logrus.Fields{
		"incidentId":   incident.ID.Hex(),
		"incidentCode": incident.Code,
		"userId":       userID,
		"channel":      channel,
	})

	defer func() {
		if rec := recover(); rec != nil {
			log.WithField("panic", rec).Error("🔔 [NOTIFICATION] Panic khi gửi qua kênh, đã recover")
		}
	}()

	if err := send(); err != nil {
		log.WithError(err).Error("🔔 [NOTIFICATION] Gửi qua kênh thất bại")
		return
	}

	log.Info("🔔 [NOTIFICATION] Gửi qua kênh thành công")
}

// sendInApp ghi một Notification row, không phụ thuộc dịch vụ ngoài
func (d *Dispatcher) sendInApp(ctx context.Context, incident models.Incident, r *ResolvedRecipient) error {
	return d.notifications.Insert(ctx, models.Notification{
		UserID:     r.UserID,
		Type:       NotificationTypeIncident,
		Title:      BuildInAppTitle(incident),
		Message:    BuildInAppMessage(incident),
		IncidentID: incident.ID,
	})
}

// sendEmail gửi email nếu có địa chỉ và transport đã cấu hình
func (d *Dispatcher) sendEmail(ctx context.Context, incident models.Incident, r *ResolvedRecipient) error {
	if r.Email == "" {
		logger.GetAppLogger().WithFields(logrus.Fields{
			"userId": r.UserID,
		}).Info("🔔 [NOTIFICATION] Recipient không có email, bỏ qua kênh email")
		return nil
	}
	if !d.email.IsConfigured() {
		logger.GetAppLogger().Info("🔔 [NOTIFICATION] SMTP chưa cấu hình, bỏ qua kênh email")
		return nil
	}

	return d.email.Send(ctx, r.Email,
		BuildEmailSubject(incident),
		BuildEmailHTML(incident, d.baseURL),
		BuildEmailText(incident, d.baseURL))
}

// sendWhatsApp gửi WhatsApp message nếu có số điện thoại và transport đã cấu hình
func (d *Dispatcher) sendWhatsApp(ctx context.Context, incident models.Incident, r *ResolvedRecipient) error {
	if r.Phone == "" {
		logger.GetAppLogger().WithFields(logrus.Fields{
			"userId": r.UserID,
		}).Info("🔔 [NOTIFICATION] Recipient không có số điện thoại, bỏ qua kênh whatsapp")
		return nil
	}
	if !d.whatsapp.IsConfigured() {
		logger.GetAppLogger().Info("🔔 [NOTIFICATION] WhatsApp chưa cấu hình, bỏ qua kênh whatsapp")
		return nil
	}

	return d.whatsapp.Send(ctx, r.Phone, BuildWhatsAppMessage(incident, d.baseURL))
}
