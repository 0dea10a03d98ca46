package services

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"fundledger/internal/models"
	"fundledger/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)
	org := testutil.CreateTestOrganization(t, db)

	svc.Log(org.ID, AuditActionRepairFunds, AuditResourceFund, 3, "127.0.0.1", map[string]interface{}{
		"stored":   decimal.NewFromInt(999),
		"computed": "-30.00",
	})
	svc.Log(org.ID, AuditActionLogin, AuditResourceOrganization, org.ID, "127.0.0.1", nil)
	svc.Log(0, AuditActionLogin, AuditResourceOrganization, 0, "127.0.0.1", nil)

	var entries []models.AuditLog
	if err := db.Order("id ASC").Find(&entries).Error; err != nil {
		t.Fatalf("failed to read audit log: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ResourceType != "fund" || entries[0].ResourceID != 3 {
		t.Errorf("unexpected resource %s/%d", entries[0].ResourceType, entries[0].ResourceID)
	}

	var changes map[string]string
	if err := json.Unmarshal([]byte(entries[0].Changes), &changes); err != nil {
		t.Fatalf("changes are not JSON: %v", err)
	}
	if changes["stored"] != "999.00" || changes["computed"] != "-30.00" {
		t.Errorf("unexpected changes: %v", changes)
	}
	if entries[1].Changes != "" {
		t.Errorf("expected empty changes, got %q", entries[1].Changes)
	}
}

func TestEncodeChanges(t *testing.T) {
	if got := encodeChanges(map[string]interface{}{}); got != "" {
		t.Errorf("expected empty changes to encode as \"\", got %q", got)
	}
	if got := encodeChanges(map[string]interface{}{"amount": decimal.RequireFromString("12.5"), "deficit": true}); got != `{"amount":"12.50","deficit":true}` {
		t.Errorf("unexpected encoding %s", got)
	}
	if got := encodeChanges(map[string]interface{}{"bad": make(chan int)}); got != "{}" {
		t.Errorf("expected {} for unencodable changes, got %s", got)
	}
}
