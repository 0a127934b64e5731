package notification

import (
	"context"

	"safety_hub/core/logger"
)

// Contact chứa địa chỉ gửi per-channel của một identity
// Chuỗi rỗng = không có địa chỉ cho kênh đó (không phải lỗi)
type Contact struct {
	Email string
	Phone string
}

// Enricher lookup địa chỉ email/số điện thoại cho một identity id
type Enricher struct {
	provider  IdentityProvider
	overrides PhoneOverrideStore

	// phoneLookups là chuỗi fallback có thứ tự: kết quả non-empty đầu tiên thắng
	// Bảng override đứng trước vì tồn tại từ trước khi provider có dữ liệu phone
	phoneLookups []func(ctx context.Context, uid string) (string, error)
}

// NewEnricher tạo Enricher với chuỗi fallback: override store → identity provider
func NewEnricher(provider IdentityProvider, overrides PhoneOverrideStore) *Enricher {
	e := &Enricher{
		provider:  provider,
		overrides: overrides,
	}
	e.phoneLookups = []func(ctx context.Context, uid string) (string, error){
		e.lookupOverridePhone,
		e.lookupProviderPhone,
	}
	return e
}

// Enrich trả về email và phone của identity
// Mọi lỗi lookup đều trả về field rỗng thay vì propagate
func (e *Enricher) Enrich(ctx context.Context, uid string) Contact {
	return Contact{
		Email: e.lookupEmail(ctx, uid),
		Phone: e.lookupPhone(ctx, uid),
	}
}

// lookupEmail lấy địa chỉ email chính từ identity provider
func (e *Enricher) lookupEmail(ctx context.Context, uid string) string {
	user, err := e.provider.GetUser(ctx, uid)
	if err != nil {
		logger.GetAppLogger().WithError(err).WithFields(map[string]interface{}{
			"userId": uid,
		}).Warn("🔔 [NOTIFICATION] Không lookup được email, gửi không kèm email")
		return ""
	}
	return user.Email
}

// lookupPhone thử lần lượt từng strategy trong chuỗi fallback, lấy kết quả non-empty đầu tiên
func (e *Enricher) lookupPhone(ctx context.Context, uid string) string {
	for _, lookup := range e.phoneLookups {
		phone, err := lookup(ctx, uid)
		if err != nil {
			logger.GetAppLogger().WithError(err).WithFields(map[string]interface{}{
				"userId": uid,
			}).Warn("🔔 [NOTIFICATION] Lỗi lookup số điện thoại, thử nguồn kế tiếp")
			continue
		}
		if phone != "" {
			return phone
		}
	}
	return ""
}

func (e *Enricher) lookupOverridePhone(ctx context.Context, uid string) (string, error) {
	return e.overrides.GetOverridePhone(ctx, uid)
}

func (e *Enricher) lookupProviderPhone(ctx context.Context, uid string) (string, error) {
	user, err := e.provider.GetUser(ctx, uid)
	if err != nil {
		return "", err
	}
	return user.PhoneNumber, nil
}
