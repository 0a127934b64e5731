package notification

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	models "safety_hub/core/api/models/mongodb"
	"safety_hub/core/identity"
)

// Các fake collaborator dùng chung cho test của engine

type fakeRuleStore struct {
	rules []models.NotificationRule
	err   error
}

func (s *fakeRuleStore) ListEnabledRules(ctx context.Context) ([]models.NotificationRule, error) {
	return s.rules, s.err
}

type fakeMembershipStore struct {
	projectMembers map[string][]string // projectID hex → uids
	orgMembers     map[string][]string // orgID hex → uids
	err            error
}

func (s *fakeMembershipStore) ListActiveProjectMembers(ctx context.Context, projectID primitive.ObjectID) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.projectMembers[projectID.Hex()], nil
}

func (s *fakeMembershipStore) ListActiveOrgMembers(ctx context.Context, organizationID primitive.ObjectID) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.orgMembers[organizationID.Hex()], nil
}

type fakeIdentityProvider struct {
	users map[string]*identity.UserInfo
	err   error
}

func (p *fakeIdentityProvider) GetUser(ctx context.Context, uid string) (*identity.UserInfo, error) {
	if p.err != nil {
		return nil, p.err
	}
	user, ok := p.users[uid]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

type fakePhoneOverrideStore struct {
	phones map[string]string
	err    error
}

func (s *fakePhoneOverrideStore) GetOverridePhone(ctx context.Context, uid string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.phones[uid], nil
}

type fakeEmailTransport struct {
	mu         sync.Mutex
	configured bool
	err        error
	panicMsg   string
	sentTo     []string
}

func (t *fakeEmailTransport) IsConfigured() bool {
	return t.configured
}

func (t *fakeEmailTransport) Send(ctx context.Context, to string, subject string, html string, text string) error {
	if t.panicMsg != "" {
		panic(t.panicMsg)
	}
	if t.err != nil {
		return t.err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sentTo = append(t.sentTo, to)
	return nil
}

type fakeWhatsAppTransport struct {
	mu         sync.Mutex
	configured bool
	err        error
	sentTo     []string
}

func (t *fakeWhatsAppTransport) IsConfigured() bool {
	return t.configured
}

func (t *fakeWhatsAppTransport) Send(ctx context.Context, to string, message string) error {
	if t.err != nil {
		return t.err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sentTo = append(t.sentTo, to)
	return nil
}

type fakeNotificationStore struct {
	mu       sync.Mutex
	err      error
	inserted []models.Notification
}

func (s *fakeNotificationStore) Insert(ctx context.Context, n models.Notification) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserted = append(s.inserted, n)
	return nil
}

func (s *fakeNotificationStore) insertedFor(uid string) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.Notification
	for _, n := range s.inserted {
		if n.UserID == uid {
			result = append(result, n)
		}
	}
	return result
}
