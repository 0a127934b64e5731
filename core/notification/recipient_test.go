// Package notification - Test resolve recipient descriptor sang danh sách UID.
package notification

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	models "safety_hub/core/api/models/mongodb"
	"safety_hub/core/identity"
)

func TestResolve_User(t *testing.T) {
	provider := &fakeIdentityProvider{users: map[string]*identity.UserInfo{
		"u1": {UID: "u1"},
	}}
	resolver := NewResolver(&fakeMembershipStore{}, provider)

	ids := resolver.Resolve(context.Background(), models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "u1"})
	if len(ids) != 1 || ids[0] != "u1" {
		t.Errorf("Mong đợi [u1], nhận %v", ids)
	}
}

func TestResolve_UserNotFoundSoftFails(t *testing.T) {
	provider := &fakeIdentityProvider{users: map[string]*identity.UserInfo{}}
	resolver := NewResolver(&fakeMembershipStore{}, provider)

	ids := resolver.Resolve(context.Background(), models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "ghost"})
	if len(ids) != 0 {
		t.Errorf("User không tồn tại phải trả về danh sách rỗng, nhận %v", ids)
	}
}

func TestResolve_Team(t *testing.T) {
	projectID := primitive.NewObjectID()
	memberships := &fakeMembershipStore{
		projectMembers: map[string][]string{projectID.Hex(): {"u1", "u2", "u3"}},
	}
	resolver := NewResolver(memberships, &fakeIdentityProvider{})

	ids := resolver.Resolve(context.Background(), models.RecipientDescriptor{Type: RecipientTypeTeam, ProjectID: oidPtr(projectID)})
	if len(ids) != 3 {
		t.Errorf("Mong đợi 3 thành viên, nhận %v", ids)
	}
}

func TestResolve_Organization(t *testing.T) {
	orgID := primitive.NewObjectID()
	memberships := &fakeMembershipStore{
		orgMembers: map[string][]string{orgID.Hex(): {"u1", "u2"}},
	}
	resolver := NewResolver(memberships, &fakeIdentityProvider{})

	ids := resolver.Resolve(context.Background(), models.RecipientDescriptor{Type: RecipientTypeOrganization, OrganizationID: oidPtr(orgID)})
	if len(ids) != 2 {
		t.Errorf("Mong đợi 2 thành viên, nhận %v", ids)
	}
}

func TestResolve_MembershipErrorSoftFails(t *testing.T) {
	memberships := &fakeMembershipStore{err: errors.New("query timeout")}
	resolver := NewResolver(memberships, &fakeIdentityProvider{})

	projectID := primitive.NewObjectID()
	ids := resolver.Resolve(context.Background(), models.RecipientDescriptor{Type: RecipientTypeTeam, ProjectID: oidPtr(projectID)})
	if len(ids) != 0 {
		t.Errorf("Lỗi query membership phải soft-fail về danh sách rỗng, nhận %v", ids)
	}
}

func TestResolve_MissingIDSoftFails(t *testing.T) {
	resolver := NewResolver(&fakeMembershipStore{}, &fakeIdentityProvider{})

	cases := []models.RecipientDescriptor{
		{Type: RecipientTypeUser},         // thiếu userId
		{Type: RecipientTypeTeam},         // thiếu projectId
		{Type: RecipientTypeOrganization}, // thiếu organizationId
		{Type: "group"},                   // type không xác định
	}

	for _, recipient := range cases {
		if ids := resolver.Resolve(context.Background(), recipient); len(ids) != 0 {
			t.Errorf("Descriptor hỏng type=%s phải trả về rỗng, nhận %v", recipient.Type, ids)
		}
	}
}
