package services

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fundledger/internal/logger"
	"fundledger/internal/models"
)

// Audit actions recorded by the handlers.
const (
	AuditActionPostTransaction = "POST_TRANSACTION"
	AuditActionRepairFunds     = "REPAIR_FUNDS"
	AuditActionLogin           = "LOGIN"
)

// Audit resource types.
const (
	AuditResourceTransaction  = "transaction"
	AuditResourceFund         = "fund"
	AuditResourceOrganization = "organization"
)

// auditService appends to an organization's audit trail. A failed write is
// logged and never fails the request that triggered it.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

func (s *auditService) Log(orgID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{}) {
	log := logger.ForOrg(orgID).With("action", action, "resource_type", resourceType, "resource_id", resourceID)
	if orgID == 0 {
		log.Warn("dropping audit entry without an organization")
		return
	}

	entry := models.AuditLog{
		OrgID:        orgID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      encodeChanges(changes),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Errorw("audit write failed", "error", err)
	}
}

// encodeChanges renders changes as a JSON object. Decimal values are written
// as fixed two-place strings; no changes encode as "".
func encodeChanges(changes map[string]interface{}) string {
	if len(changes) == 0 {
		return ""
	}
	out := make(map[string]interface{}, len(changes))
	for k, v := range changes {
		if d, ok := v.(decimal.Decimal); ok {
			v = d.StringFixed(2)
		}
		out[k] = v
	}
	data, err := json.Marshal(out)
	if err != nil {
		logger.Get().Warnw("audit changes are not encodable", "error", err)
		return "{}"
	}
	return string(data)
}
