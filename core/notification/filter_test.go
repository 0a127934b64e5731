// Package notification - Test matching logic của rule filter và tenant scope.
package notification

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	models "safety_hub/core/api/models/mongodb"
)

func strPtr(s string) *string {
	return &s
}

func oidPtr(oid primitive.ObjectID) *primitive.ObjectID {
	return &oid
}

func TestMatchesFilter_EmptyFilterMatchesAll(t *testing.T) {
	incidents := []models.Incident{
		{Severity: models.SeverityLow, Category: "graafschade"},
		{Severity: models.SeverityCritical, Category: "valgevaar", Discipline: strPtr("Elektra")},
		{Severity: models.SeverityHigh, Category: "overig", OrganizationID: oidPtr(primitive.NewObjectID())},
	}

	for _, incident := range incidents {
		if !MatchesFilter(incident, models.RuleFilter{}) {
			t.Errorf("Filter rỗng phải match mọi incident, fail với severity=%s category=%s", incident.Severity, incident.Category)
		}
	}
}

func TestMatchesFilter_Severity(t *testing.T) {
	filter := models.RuleFilter{Severities: []string{models.SeverityHigh, models.SeverityCritical}}

	if !MatchesFilter(models.Incident{Severity: models.SeverityHigh, Category: "graafschade"}, filter) {
		t.Error("Incident severity=high phải match filter [high, critical]")
	}
	if MatchesFilter(models.Incident{Severity: models.SeverityLow, Category: "graafschade"}, filter) {
		t.Error("Incident severity=low không được match filter [high, critical]")
	}
}

func TestMatchesFilter_Category(t *testing.T) {
	filter := models.RuleFilter{Categories: []string{"graafschade"}}

	if !MatchesFilter(models.Incident{Severity: models.SeverityLow, Category: "graafschade"}, filter) {
		t.Error("Incident category=graafschade phải match")
	}
	if MatchesFilter(models.Incident{Severity: models.SeverityLow, Category: "valgevaar"}, filter) {
		t.Error("Incident category=valgevaar không được match filter [graafschade]")
	}
}

func TestMatchesFilter_DisciplineNilFailsNonEmptyDimension(t *testing.T) {
	filter := models.RuleFilter{Disciplines: []string{"Elektra"}}

	// Incident không có discipline không match dimension discipline không rỗng
	if MatchesFilter(models.Incident{Severity: models.SeverityHigh, Category: "graafschade"}, filter) {
		t.Error("Incident discipline=nil không được match filter disciplines=[Elektra]")
	}
	if !MatchesFilter(models.Incident{Severity: models.SeverityHigh, Category: "graafschade", Discipline: strPtr("Elektra")}, filter) {
		t.Error("Incident discipline=Elektra phải match")
	}
	if MatchesFilter(models.Incident{Severity: models.SeverityHigh, Category: "graafschade", Discipline: strPtr("Gas")}, filter) {
		t.Error("Incident discipline=Gas không được match filter disciplines=[Elektra]")
	}
}

func TestMatchesFilter_AndSemantics(t *testing.T) {
	orgID := primitive.NewObjectID()
	filter := models.RuleFilter{
		Severities:     []string{models.SeverityCritical},
		Categories:     []string{"graafschade"},
		OrganizationID: oidPtr(orgID),
	}

	// Tất cả dimensions pass
	match := models.Incident{
		Severity:       models.SeverityCritical,
		Category:       "graafschade",
		OrganizationID: oidPtr(orgID),
	}
	if !MatchesFilter(match, filter) {
		t.Error("Incident thỏa mọi dimension phải match")
	}

	// Một dimension fail là cả filter fail
	wrongSeverity := match
	wrongSeverity.Severity = models.SeverityLow
	if MatchesFilter(wrongSeverity, filter) {
		t.Error("Một dimension fail phải làm cả filter fail (AND logic)")
	}

	wrongOrg := match
	wrongOrg.OrganizationID = oidPtr(primitive.NewObjectID())
	if MatchesFilter(wrongOrg, filter) {
		t.Error("OrganizationID sai phải làm filter fail")
	}
}

func TestMatchesFilter_ProjectScope(t *testing.T) {
	projectID := primitive.NewObjectID()
	filter := models.RuleFilter{ProjectID: oidPtr(projectID)}

	if !MatchesFilter(models.Incident{Severity: models.SeverityLow, Category: "overig", ProjectID: oidPtr(projectID)}, filter) {
		t.Error("Incident cùng projectId phải match")
	}
	if MatchesFilter(models.Incident{Severity: models.SeverityLow, Category: "overig"}, filter) {
		t.Error("Incident không có projectId không được match filter có projectId")
	}
}

func TestRuleApplies_InactiveRuleNeverApplies(t *testing.T) {
	incident := models.Incident{Severity: models.SeverityCritical, Category: "graafschade"}
	rule := models.NotificationRule{IsActive: false}

	if RuleApplies(incident, rule) {
		t.Error("Rule inactive không bao giờ được áp dụng, kể cả khi filter match")
	}
}

func TestRuleApplies_TenantScopeCheckedBeforeFilter(t *testing.T) {
	org7 := primitive.NewObjectID()
	org8 := primitive.NewObjectID()

	// Rule thuộc org7 với filter rỗng (match tất cả)
	rule := models.NotificationRule{
		IsActive:       true,
		OrganizationID: oidPtr(org7),
	}

	// Incident của org7: áp dụng
	if !RuleApplies(models.Incident{Severity: models.SeverityHigh, Category: "graafschade", OrganizationID: oidPtr(org7)}, rule) {
		t.Error("Rule của org phải áp dụng cho incident trong cùng org")
	}

	// Incident của org8: tenant boundary chặn, bất kể filter rỗng
	if RuleApplies(models.Incident{Severity: models.SeverityHigh, Category: "graafschade", OrganizationID: oidPtr(org8)}, rule) {
		t.Error("Rule của org7 không được áp dụng cho incident của org8")
	}

	// Incident không thuộc org nào: cũng bị chặn
	if RuleApplies(models.Incident{Severity: models.SeverityHigh, Category: "graafschade"}, rule) {
		t.Error("Rule có tenant scope không được áp dụng cho incident không có organizationId")
	}
}

func TestRuleApplies_SystemRuleAppliesAcrossTenants(t *testing.T) {
	// Rule hệ thống (OrganizationID=nil) áp dụng cho incident của mọi tổ chức
	rule := models.NotificationRule{
		IsActive: true,
		Filter:   models.RuleFilter{Severities: []string{models.SeverityCritical}},
	}

	if !RuleApplies(models.Incident{Severity: models.SeverityCritical, Category: "valgevaar", OrganizationID: oidPtr(primitive.NewObjectID())}, rule) {
		t.Error("Rule hệ thống phải áp dụng cho incident của bất kỳ org nào khi filter match")
	}
	if RuleApplies(models.Incident{Severity: models.SeverityLow, Category: "valgevaar"}, rule) {
		t.Error("Rule hệ thống vẫn phải tôn trọng filter")
	}
}

func TestValidateRuleFilter(t *testing.T) {
	if err := ValidateRuleFilter(models.RuleFilter{}); err != nil {
		t.Errorf("Filter rỗng phải hợp lệ, nhận lỗi: %v", err)
	}
	if err := ValidateRuleFilter(models.RuleFilter{Severities: []string{"high", "critical"}}); err != nil {
		t.Errorf("Severities hợp lệ phải pass, nhận lỗi: %v", err)
	}
	if err := ValidateRuleFilter(models.RuleFilter{Severities: []string{"urgent"}}); err == nil {
		t.Error("Severity không nằm trong enum phải bị chặn")
	}
	if err := ValidateRuleFilter(models.RuleFilter{Categories: []string{""}}); err == nil {
		t.Error("Category rỗng trong filter phải bị chặn")
	}
	if err := ValidateRuleFilter(models.RuleFilter{Disciplines: []string{""}}); err == nil {
		t.Error("Discipline rỗng trong filter phải bị chặn")
	}
}

func TestValidateRecipientDescriptor(t *testing.T) {
	oid := primitive.NewObjectID()

	cases := []struct {
		name      string
		recipient models.RecipientDescriptor
		wantErr   bool
	}{
		{"user hợp lệ", models.RecipientDescriptor{Type: RecipientTypeUser, UserID: "uid-1"}, false},
		{"user thiếu userId", models.RecipientDescriptor{Type: RecipientTypeUser}, true},
		{"team hợp lệ", models.RecipientDescriptor{Type: RecipientTypeTeam, ProjectID: oidPtr(oid)}, false},
		{"team thiếu projectId", models.RecipientDescriptor{Type: RecipientTypeTeam}, true},
		{"organization hợp lệ", models.RecipientDescriptor{Type: RecipientTypeOrganization, OrganizationID: oidPtr(oid)}, false},
		{"organization thiếu organizationId", models.RecipientDescriptor{Type: RecipientTypeOrganization}, true},
		{"type không xác định", models.RecipientDescriptor{Type: "group"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRecipientDescriptor(tc.recipient)
			if tc.wantErr && err == nil {
				t.Errorf("Mong đợi lỗi cho %s nhưng nhận nil", tc.name)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Không mong đợi lỗi cho %s nhưng nhận: %v", tc.name, err)
			}
		})
	}
}

func TestValidateChannels(t *testing.T) {
	if err := ValidateChannels([]string{ChannelEmail, ChannelWhatsApp, ChannelInApp}); err != nil {
		t.Errorf("Danh sách kênh hợp lệ phải pass, nhận lỗi: %v", err)
	}
	if err := ValidateChannels(nil); err == nil {
		t.Error("Rule không có kênh nào phải bị chặn")
	}
	if err := ValidateChannels([]string{"sms"}); err == nil {
		t.Error("Kênh sms không được hỗ trợ phải bị chặn")
	}
}
